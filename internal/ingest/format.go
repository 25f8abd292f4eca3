package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bookcatalog/internal/book"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Record is one book as read from an import file. Ids are ignored; the store
// assigns fresh ones.
type Record struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Price  Price  `json:"price" yaml:"price"`
	Image  string `json:"image" yaml:"image"`
}

// Input converts the record, parsing its price. An unparsable price is
// reported together with any other invalid field.
func (r Record) Input() (book.Input, error) {
	in := book.Input{Title: r.Title, Author: r.Author, Image: r.Image}
	price, err := book.ParsePrice(string(r.Price))
	if err == nil {
		in.Price = price
		return in, nil
	}

	var errs book.ValidationErrors
	if !errors.As(err, &errs) {
		return book.Input{}, err
	}
	in.Price = 1
	var rest book.ValidationErrors
	if errors.As(book.Validate(in.Normalize()), &rest) {
		errs = append(rest, errs...)
	}
	return book.Input{}, errs
}

// Price keeps the raw price text so "25,00" and non-numeric values reach
// book.ParsePrice instead of failing the whole file.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	*p = Price(data)
	return nil
}

func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a scalar", node.Line)
	}
	*p = Price(node.Value)
	return nil
}

// Decode reads a list of records.
func Decode(r io.Reader, format Format) ([]Record, error) {
	var records []Record
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return records, nil
}

// Encode writes books in the given format. The output can be fed back to
// Decode.
func Encode(w io.Writer, books []book.Book, format Format) error {
	if books == nil {
		books = []book.Book{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(books); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
