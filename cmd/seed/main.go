package main

import (
	"context"
	"fmt"
	"os"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/storage/backend"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	seeded, total, err := seed(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("seed catalog", zap.Error(err))
	}
	if seeded {
		logger.Info("catalog seeded", zap.Int("books", total), zap.String("path", cfg.StorePath))
		return
	}
	logger.Info("catalog not empty, nothing to do", zap.Int("books", total))
}

// seed fills the configured catalog with the default books when it is
// empty. A snapshot that cannot be read is not overwritten.
func seed(ctx context.Context, cfg config.Config, logger *zap.Logger) (bool, int, error) {
	be, err := backend.Open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		return false, 0, err
	}
	defer be.Close()

	locale, err := cfg.Language()
	if err != nil {
		return false, 0, err
	}

	store := catalog.NewStore(be, catalog.Config{Key: cfg.StoreKey, Locale: locale, Logger: logger})
	if err := store.Initialize(ctx); err != nil {
		return false, 0, err
	}

	seeded, err := store.SeedIfEmpty(ctx)
	return seeded, store.Len(), err
}
