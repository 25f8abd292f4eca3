package book

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a derived view.
type SortKey string

const (
	SortNone      SortKey = ""
	SortTitle     SortKey = "title"
	SortAuthor    SortKey = "author"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// SortKeys lists the accepted non-empty sort keys.
var SortKeys = []SortKey{SortTitle, SortAuthor, SortPriceAsc, SortPriceDesc}

// ParseSortKey validates a sort key given as text. The empty string selects
// canonical order.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.TrimSpace(strings.ToLower(s)))
	if k == SortNone || slices.Contains(SortKeys, k) {
		return k, nil
	}
	return SortNone, fmt.Errorf("unknown sort %q: want one of title, author, price-asc, price-desc", s)
}

// Query defines the filter and ordering of a derived view.
type Query struct {
	Search string
	Sort   SortKey
}

// Apply returns the derived view of books described by q. The input slice is
// never modified. Title and author orderings collate according to locale.
func Apply(books []Book, q Query, locale language.Tag) []Book {
	out := Filter(books, q.Search)
	sortBooks(out, q.Sort, locale)
	return out
}

// Filter returns the books whose title or author contains search, ignoring
// case. A blank search keeps every book. The result is always a new slice.
func Filter(books []Book, search string) []Book {
	search = strings.TrimSpace(search)
	if search == "" {
		return slices.Clone(books)
	}

	fold := cases.Fold()
	needle := fold.String(search)

	out := make([]Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(fold.String(b.Title), needle) || strings.Contains(fold.String(b.Author), needle) {
			out = append(out, b)
		}
	}
	return out
}

func sortBooks(books []Book, key SortKey, locale language.Tag) {
	switch key {
	case SortTitle:
		c := collate.New(locale)
		slices.SortStableFunc(books, func(a, b Book) int {
			return c.CompareString(a.Title, b.Title)
		})
	case SortAuthor:
		c := collate.New(locale)
		slices.SortStableFunc(books, func(a, b Book) int {
			return c.CompareString(a.Author, b.Author)
		})
	case SortPriceAsc:
		slices.SortStableFunc(books, func(a, b Book) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(books, func(a, b Book) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}
}
