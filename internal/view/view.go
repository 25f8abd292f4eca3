// Package view turns catalog records into a render model. It produces no
// markup; front ends lay the cards out themselves.
package view

import (
	"strings"

	"bookcatalog/internal/book"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PlaceholderImage replaces a blank image reference.
const PlaceholderImage = "https://via.placeholder.com/300x400/cccccc/666666?text=Sem+Imagem"

const (
	bylineKey  = "by %s"
	noBooksKey = "No books found"
	priceKey   = "R$ %.2f"
)

func init() {
	for _, tag := range []language.Tag{language.Portuguese, language.BrazilianPortuguese} {
		_ = message.SetString(tag, bylineKey, "por %s")
		_ = message.SetString(tag, noBooksKey, "Nenhum livro encontrado")
	}
}

// Card is one rendered book.
type Card struct {
	ID     string
	Title  string
	Byline string
	Price  string
	Image  string
}

// Model is what a front end needs to draw a list of books.
type Model struct {
	Cards []Card
	// Empty is set when there is nothing to show; Message then holds the
	// localized notice.
	Empty   bool
	Message string
}

// Render builds the model for books in the given order.
func Render(books []book.Book, locale language.Tag) Model {
	p := message.NewPrinter(locale)

	if len(books) == 0 {
		return Model{Empty: true, Message: p.Sprintf(noBooksKey)}
	}

	cards := make([]Card, len(books))
	for i, b := range books {
		cards[i] = Card{
			ID:     b.ID,
			Title:  b.Title,
			Byline: p.Sprintf(bylineKey, b.Author),
			Price:  p.Sprintf(priceKey, b.Price),
			Image:  imageOrPlaceholder(b.Image),
		}
	}
	return Model{Cards: cards}
}

// FormatPrice formats an amount in reais for the locale, e.g. "R$ 25,00".
func FormatPrice(amount float64, locale language.Tag) string {
	return message.NewPrinter(locale).Sprintf(priceKey, amount)
}

func imageOrPlaceholder(image string) string {
	if strings.TrimSpace(image) == "" {
		return PlaceholderImage
	}
	return image
}
