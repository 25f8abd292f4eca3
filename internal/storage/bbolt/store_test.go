package bbolt

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"bookcatalog/internal/storage"
)

func TestStoreSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	payload := []byte(`[{"id":"1","title":"Moby Dick"}]`)
	if err := store.Set(context.Background(), "livraria_aura_books", payload); err != nil {
		t.Fatalf("set: %v", err)
	}

	loaded, err := store.Get(context.Background(), "livraria_aura_books")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(loaded, payload) {
		t.Fatalf("expected %q, got %q", payload, loaded)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	_, err = store.Get(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Set(context.Background(), "k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(context.Background(), "k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(loaded) != "v2" {
		t.Fatalf("expected v2, got %q", loaded)
	}
}

func TestStoreRejectsBadInput(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}

	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), "", []byte("v")); err == nil {
		t.Fatal("expected error for empty key")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestNilStore(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if _, err := store.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error for nil store")
	}
}
