package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var ptBR = language.BrazilianPortuguese

func seeded() []Book {
	inputs := SeedData()
	out := make([]Book, len(inputs))
	for i, in := range inputs {
		out[i] = Book{ID: string(rune('a' + i))}.WithInput(in)
	}
	return out
}

func titles(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func prices(books []Book) []float64 {
	out := make([]float64, len(books))
	for i, b := range books {
		out[i] = b.Price
	}
	return out
}

func TestFilter_CaseInsensitiveTitleOrAuthor(t *testing.T) {
	books := seeded()

	got := Filter(books, "harry")
	require.Len(t, got, 1)
	assert.Equal(t, "Harry Potter e a Pedra Filosofal", got[0].Title)

	got = Filter(books, "MELVILLE")
	require.Len(t, got, 1)
	assert.Equal(t, "Moby Dick, ou A Baleia", got[0].Title)

	got = Filter(books, "DIÁRIO")
	require.Len(t, got, 1)
	assert.Equal(t, "Jeff Kinney", got[0].Author)

	assert.Empty(t, Filter(books, "tolkien"))
	assert.Len(t, Filter(books, "  "), len(books))
}

func TestFilter_TrimsSearchText(t *testing.T) {
	books := seeded()

	assert.Equal(t, titles(Filter(books, "harry")), titles(Filter(books, "  harry\t")))

	// " e " behaves like "e", which every default book contains.
	assert.Equal(t, titles(Filter(books, "e")), titles(Filter(books, " e ")))
	assert.Len(t, Filter(books, " e "), len(books))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	books := seeded()
	before := titles(books)

	_ = Apply(books, Query{Sort: SortTitle}, ptBR)
	_ = Apply(books, Query{Search: "a", Sort: SortPriceDesc}, ptBR)

	assert.Equal(t, before, titles(books))
}

func TestApply_DefaultKeepsCanonicalOrder(t *testing.T) {
	books := seeded()
	assert.Equal(t, books, Apply(books, Query{}, ptBR))
}

func TestApply_PriceOrder(t *testing.T) {
	books := []Book{{ID: "1", Price: 30}, {ID: "2", Price: 10}, {ID: "3", Price: 15}}

	assert.Equal(t, []float64{10, 15, 30}, prices(Apply(books, Query{Sort: SortPriceAsc}, ptBR)))
	assert.Equal(t, []float64{30, 15, 10}, prices(Apply(books, Query{Sort: SortPriceDesc}, ptBR)))
}

func TestApply_PriceTiesAreStable(t *testing.T) {
	got := Apply(seeded(), Query{Sort: SortPriceAsc}, ptBR)
	assert.Equal(t, []string{
		"Diário de um Banana",
		"A Arte da Guerra",
		"Moby Dick, ou A Baleia",
		"Harry Potter e a Pedra Filosofal",
		"Como Fazer Amigos e Influenciar Pessoas",
	}, titles(got))
}

func TestApply_TitleCollatesByLocale(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "Zebra"},
		{ID: "2", Title: "banana"},
		{ID: "3", Title: "Ágata"},
		{ID: "4", Title: "Cereja"},
	}

	got := Apply(books, Query{Sort: SortTitle}, ptBR)
	assert.Equal(t, []string{"Ágata", "banana", "Cereja", "Zebra"}, titles(got))
}

func TestApply_AuthorSortIsStable(t *testing.T) {
	books := []Book{
		{ID: "1", Title: "Second", Author: "Rowling"},
		{ID: "2", Title: "Only", Author: "Kinney"},
		{ID: "3", Title: "Third", Author: "Rowling"},
	}

	got := Apply(books, Query{Sort: SortAuthor}, ptBR)
	assert.Equal(t, []string{"Only", "Second", "Third"}, titles(got))
}

func TestApply_FilterThenSort(t *testing.T) {
	got := Apply(seeded(), Query{Search: "e", Sort: SortPriceDesc}, ptBR)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"", "title", "author", "price-asc", "PRICE-DESC"} {
		_, err := ParseSortKey(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseSortKey("rating")
	assert.Error(t, err)
}

func TestPatchApply(t *testing.T) {
	b := Book{ID: "x", Title: "Old", Author: "A", Price: 10, Image: "i.jpg"}
	title := "New"
	price := 12.5

	got := Patch{Title: &title, Price: &price}.Apply(b)
	assert.Equal(t, Input{Title: "New", Author: "A", Price: 12.5, Image: "i.jpg"}, got)
	assert.True(t, Patch{}.IsZero())
	assert.False(t, Patch{Title: &title}.IsZero())
}

func TestSeedData(t *testing.T) {
	seed := SeedData()
	require.Len(t, seed, 5)
	for _, in := range seed {
		assert.NoError(t, Validate(in), in.Title)
	}
}
