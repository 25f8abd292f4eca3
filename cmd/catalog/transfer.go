package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"
	"bookcatalog/internal/ingest"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add books from a JSON or YAML file (admin)",
		Long: `Reads a list of books with the fields title, author, price and image.
Ids in the file are ignored. Invalid records are skipped and reported. Use - to
read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f := ingest.FormatFromPath(path)
			if format != "" {
				var err error
				if f, err = ingest.ParseFormat(format); err != nil {
					return err
				}
			}

			ctx, err := a.login(cmd.Context())
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				file, err := os.Open(path)
				if err != nil {
					return err
				}
				defer file.Close()
				r = file
			}

			run, err := ingest.NewService(a.store, a.log).Run(ctx, path, r, f)
			printRun(cmd.OutOrStdout(), run)
			return saved(err)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension)")
	return cmd
}

func printRun(w io.Writer, run *ingest.Run) {
	fmt.Fprintf(w, "Import %s: %d read, %d created, %d skipped\n",
		strings.ToLower(run.Status), run.RecordsRead, run.Created, run.Failed)
	for _, e := range run.Errors {
		fmt.Fprintf(w, "  record %d (%q): %s\n", e.Index+1, e.Title, e.Err)
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every book as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ingest.ParseFormat(format)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			return ingest.Encode(w, a.store.List(book.Query{}), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func newHashPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for CATALOG_ADMIN_PASSWORD_HASH",
		Long: `Hashes the password given with --password, or the first line of standard
input, after checking it is strong enough.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			password := a.password
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := auth.ValidatePasswordStrength(password); err != nil {
				return err
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
