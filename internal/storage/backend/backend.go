package backend

import (
	"context"
	"fmt"
	"strings"

	"bookcatalog/internal/storage/bbolt"
	"bookcatalog/internal/storage/memory"
	"bookcatalog/internal/storage/sqlite"
)

// Driver names accepted by Open.
const (
	DriverBolt   = "bbolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Backend is a snapshot provider that owns an underlying resource.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open opens the provider named by driver. path is ignored by the memory
// driver.
func Open(driver, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverBolt, "bolt", "":
		store, err := bbolt.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverSQLite:
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverMemory:
		return memory.New(0), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// ParseLocation splits "driver:path" into its parts. A location without a
// driver prefix uses bbolt.
func ParseLocation(loc string) (driver, path string) {
	if d, p, ok := strings.Cut(loc, ":"); ok {
		switch strings.ToLower(d) {
		case DriverBolt, "bolt", DriverSQLite, DriverMemory:
			return strings.ToLower(d), p
		}
	}
	return DriverBolt, loc
}
