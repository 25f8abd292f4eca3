package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"bookcatalog/internal/storage"
)

// ErrQuotaExceeded is returned by Set when the write would exceed the quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store keeps values in memory. A positive quota bounds the total size of
// keys plus values, the way browser storage does.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int
}

// New creates an empty Store. quota <= 0 means unlimited.
func New(quota int) *Store {
	return &Store{
		values: make(map[string][]byte),
		quota:  quota,
	}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		size := len(key) + len(value)
		for k, v := range s.values {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > s.quota {
			return fmt.Errorf("set %q (%d bytes): %w", key, len(value), ErrQuotaExceeded)
		}
	}

	s.values[key] = slices.Clone(value)
	return nil
}

// Close is a no-op; it lets Store satisfy backend.Backend.
func (s *Store) Close() error {
	return nil
}
