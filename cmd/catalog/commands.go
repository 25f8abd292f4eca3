package main

import (
	"errors"
	"fmt"
	"strings"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/view"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var search, sort string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List books, optionally filtered and sorted",
		Example: `  catalog list --search harry
  catalog list --sort price-desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := book.ParseSortKey(sort)
			if err != nil {
				return err
			}
			books := a.store.List(book.Query{Search: search, Sort: key})
			return renderCards(cmd.OutOrStdout(), view.Render(books, a.locale))
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text matched against title and author")
	cmd.Flags().StringVar(&sort, "sort", "", "order: "+sortKeyList())
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a single book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.store.Get(args[0])
			if err != nil {
				return fmt.Errorf("book %s: %w", args[0], err)
			}
			m := view.Render([]book.Book{b}, a.locale)
			return renderCard(cmd.OutOrStdout(), m.Cards[0])
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var title, author, price, image string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book (admin)",
		Example: `  catalog add --title "Dom Casmurro" --author "Machado de Assis" \
    --price 29,90 --image ./img/dom-casmurro.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.login(cmd.Context())
			if err != nil {
				return err
			}

			in := book.Input{Title: title, Author: author, Image: image}
			if in.Price, err = book.ParsePrice(price); err != nil {
				return err
			}

			b, err := a.store.Create(ctx, in)
			if err := saved(err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q as %s\n", b.Title, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "book author")
	cmd.Flags().StringVar(&price, "price", "", "price, e.g. 25.90 or 25,90")
	cmd.Flags().StringVar(&image, "image", "", "cover image URL or path")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var title, author, price, image string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a book (admin)",
		Long:  "Only the flags given on the command line are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch book.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("author") {
				patch.Author = &author
			}
			if flags.Changed("price") {
				p, err := book.ParsePrice(price)
				if err != nil {
					return err
				}
				patch.Price = &p
			}
			if flags.Changed("image") {
				patch.Image = &image
			}
			if patch.IsZero() {
				return errors.New("nothing to update: pass at least one of --title, --author, --price, --image")
			}

			ctx, err := a.login(cmd.Context())
			if err != nil {
				return err
			}

			b, err := a.store.Update(ctx, args[0], patch)
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("book %s: %w", args[0], err)
			}
			if err := saved(err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (%s)\n", b.Title, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&author, "author", "", "new author")
	cmd.Flags().StringVar(&price, "price", "", "new price")
	cmd.Flags().StringVar(&image, "image", "", "new cover image")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a book (admin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}

			ctx, err := a.login(cmd.Context())
			if err != nil {
				return err
			}

			if err := saved(a.store.Delete(ctx, args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty catalog with the default books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded, err := a.store.SeedIfEmpty(cmd.Context())
			if err := saved(err); err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "Catalog already has %d books; nothing seeded.\n", a.store.Len())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d books.\n", a.store.Len())
			return nil
		},
	}
}

// saved passes err through, prefixing persistence failures so the user
// knows the change did not reach the store.
func saved(err error) error {
	if errors.Is(err, catalog.ErrSnapshotUnread) {
		return fmt.Errorf("nothing written: %w", err)
	}
	var perr *catalog.PersistenceError
	if errors.As(err, &perr) {
		return fmt.Errorf("change applied but not saved: %w", err)
	}
	return err
}

func sortKeyList() string {
	keys := make([]string, len(book.SortKeys))
	for i, k := range book.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}
