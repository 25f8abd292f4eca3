package testutil

import (
	"fmt"
	"sync/atomic"

	"bookcatalog/internal/book"
)

// TestInput is a valid book input for testing
var TestInput = book.Input{
	Title:  "Dom Casmurro",
	Author: "Machado de Assis",
	Price:  29.9,
	Image:  "./img/dom-casmurro.jpg",
}

// SeqIDs returns an id generator yielding prefix-1, prefix-2, ...
func SeqIDs(prefix string) book.IDFunc {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// FixedIDs returns an id generator that replays ids in order, then repeats
// the last one.
func FixedIDs(ids ...string) book.IDFunc {
	var n atomic.Int64
	return func() string {
		i := int(n.Add(1)) - 1
		if i >= len(ids) {
			i = len(ids) - 1
		}
		return ids[i]
	}
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// Titles returns the titles of books in order.
func Titles(books []book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

// IDs returns the ids of books in order.
func IDs(books []book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}
