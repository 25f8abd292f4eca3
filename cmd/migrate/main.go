package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/storage"
	"bookcatalog/internal/storage/backend"

	"go.uber.org/zap"
)

// ErrTargetNotEmpty is returned when the destination already holds a
// catalog and -force was not given.
var ErrTargetNotEmpty = errors.New("target already has a catalog snapshot (use -force to overwrite)")

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, err := defaults()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	flag.StringVar(&opts.from, "from", opts.from, "source store as driver:path (bbolt, sqlite)")
	flag.StringVar(&opts.to, "to", "", "target store as driver:path, e.g. sqlite:catalog.sqlite")
	flag.StringVar(&opts.key, "key", opts.key, "snapshot key")
	flag.BoolVar(&opts.force, "force", false, "overwrite an existing snapshot in the target")
	flag.Parse()

	if err := opts.validate(); err != nil {
		logger.Fatal("invalid flags", zap.Error(err))
	}

	src, err := openLocation(opts.from)
	if err != nil {
		logger.Fatal("open source", zap.String("location", opts.from), zap.Error(err))
	}
	defer src.Close()

	dst, err := openLocation(opts.to)
	if err != nil {
		logger.Fatal("open target", zap.String("location", opts.to), zap.Error(err))
	}
	defer dst.Close()

	n, err := copySnapshot(context.Background(), src, dst, opts.key, opts.force)
	if err != nil {
		logger.Fatal("migrate catalog", zap.Error(err))
	}
	logger.Info("catalog migrated",
		zap.String("from", opts.from),
		zap.String("to", opts.to),
		zap.Int("books", n))
}

func openLocation(loc string) (backend.Backend, error) {
	driver, path := backend.ParseLocation(loc)
	return backend.Open(driver, path)
}

// copySnapshot copies the snapshot under key from src to dst and returns the
// number of books in it. The snapshot must decode; stored bytes are copied
// as they are.
func copySnapshot(ctx context.Context, src, dst catalog.Provider, key string, force bool) (int, error) {
	data, err := src.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("read source: %w", err)
	}
	books, err := catalog.DecodeSnapshot(data)
	if err != nil {
		return 0, fmt.Errorf("source snapshot: %w", err)
	}

	if !force {
		existing, err := dst.Get(ctx, key)
		switch {
		case err == nil && len(existing) > 0:
			return 0, ErrTargetNotEmpty
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			return 0, fmt.Errorf("read target: %w", err)
		}
	}

	if err := dst.Set(ctx, key, data); err != nil {
		return 0, fmt.Errorf("write target: %w", err)
	}
	return len(books), nil
}
