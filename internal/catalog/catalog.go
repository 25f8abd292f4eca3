package catalog

import (
	"errors"
	"fmt"

	"bookcatalog/internal/book"
)

// DefaultKey is the snapshot key used when Config.Key is empty.
const DefaultKey = "livraria_aura_books"

var (
	// ErrNotFound is returned by Get and Update for unknown ids.
	ErrNotFound = book.ErrNotFound
	// ErrUnauthorized is returned when the Authorizer rejects a mutation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSnapshotUnread is wrapped by the PersistenceError returned for
	// writes attempted after Initialize failed to read the snapshot.
	ErrSnapshotUnread = errors.New("stored snapshot could not be read; refusing to overwrite it")
)

// PersistenceError reports a failed snapshot read or write. The in-memory
// catalog stays usable when one is returned.
type PersistenceError struct {
	Op  string // load, encode, save, seed
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s catalog snapshot %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
