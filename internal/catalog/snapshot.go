package catalog

import (
	"encoding/json"
	"fmt"

	"bookcatalog/internal/book"
)

// EncodeSnapshot serializes books as an indented JSON array.
func EncodeSnapshot(books []book.Book) ([]byte, error) {
	if books == nil {
		books = []book.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot. Records are
// returned as stored; no invariants are checked here.
func DecodeSnapshot(data []byte) ([]book.Book, error) {
	var books []book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return books, nil
}
