package main

import (
	"fmt"
	"io"

	"bookcatalog/internal/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	priceStyle  = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(8)
)

const priceCol = 3

// renderCards prints the model as a table, or its notice when empty.
func renderCards(w io.Writer, m view.Model) error {
	if m.Empty {
		_, err := fmt.Fprintln(w, m.Message)
		return err
	}

	rows := make([][]string, len(m.Cards))
	for i, c := range m.Cards {
		rows[i] = []string{c.ID, c.Title, c.Byline, c.Price, c.Image}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "Title", "Author", "Price", "Image").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == priceCol:
				return priceStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// renderCard prints a single book as labelled lines.
func renderCard(w io.Writer, c view.Card) error {
	for _, line := range [][2]string{
		{"ID", c.ID},
		{"Title", c.Title},
		{"Author", c.Byline},
		{"Price", c.Price},
		{"Image", c.Image},
	} {
		if _, err := fmt.Fprintln(w, labelStyle.Render(line[0]), line[1]); err != nil {
			return err
		}
	}
	return nil
}
