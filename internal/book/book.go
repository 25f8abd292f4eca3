package book

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a single catalog record.
type Book struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Author string  `json:"author" yaml:"author"`
	Price  float64 `json:"price" yaml:"price"`
	Image  string  `json:"image" yaml:"image"`
}

// Input carries the caller supplied fields of a new book.
type Input struct {
	Title  string  `json:"title" yaml:"title" validate:"notblank"`
	Author string  `json:"author" yaml:"author" validate:"notblank"`
	Price  float64 `json:"price" yaml:"price" validate:"finite,gt=0"`
	Image  string  `json:"image" yaml:"image" validate:"notblank"`
}

// Normalize trims surrounding whitespace from the text fields.
func (in Input) Normalize() Input {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Image = strings.TrimSpace(in.Image)
	return in
}

// Patch names the mutable fields of an existing book. Nil fields keep the
// current value.
type Patch struct {
	Title  *string
	Author *string
	Price  *float64
	Image  *string
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Author == nil && p.Price == nil && p.Image == nil
}

// Apply returns the input obtained by overriding b's fields with the patch.
func (p Patch) Apply(b Book) Input {
	in := b.Input()
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Author != nil {
		in.Author = *p.Author
	}
	if p.Price != nil {
		in.Price = *p.Price
	}
	if p.Image != nil {
		in.Image = *p.Image
	}
	return in
}

// Input returns the mutable fields of b.
func (b Book) Input() Input {
	return Input{
		Title:  b.Title,
		Author: b.Author,
		Price:  b.Price,
		Image:  b.Image,
	}
}

// WithInput returns a copy of b carrying the fields of in. The ID is kept.
func (b Book) WithInput(in Input) Book {
	b.Title = in.Title
	b.Author = in.Author
	b.Price = in.Price
	b.Image = in.Image
	return b
}
