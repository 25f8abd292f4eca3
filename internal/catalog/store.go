package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"bookcatalog/internal/book"
	"bookcatalog/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const maxIDAttempts = 8

// Config tunes a Store. The zero value is usable.
type Config struct {
	// Key names the snapshot in the provider. Defaults to DefaultKey.
	Key string
	// Locale drives title and author collation. Defaults to pt-BR.
	Locale language.Tag
	// Authorizer gates Create, Update and Delete. Nil allows everything.
	Authorizer Authorizer
	// NewID generates record ids. Defaults to book.NewID.
	NewID book.IDFunc
	Logger *zap.Logger
}

// Store owns the canonical, insertion-ordered book collection and writes a
// full snapshot to its provider after every mutation.
type Store struct {
	mu       sync.RWMutex
	provider Provider
	cfg      Config
	log      *zap.Logger
	books    []book.Book
	// loadErr is set when the last Initialize could not read the snapshot.
	// Writes are refused while it is set so the unread snapshot survives.
	loadErr error
}

// NewStore creates an empty store. Call Initialize before first use.
func NewStore(provider Provider, cfg Config) *Store {
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.Locale == language.Und {
		cfg.Locale = language.BrazilianPortuguese
	}
	if cfg.NewID == nil {
		cfg.NewID = book.NewID
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Store{
		provider: provider,
		cfg:      cfg,
		log:      cfg.Logger.With(zap.String("key", cfg.Key)),
	}
}

// Initialize loads the snapshot. A missing or unparsable snapshot leaves the
// store empty without error. A provider failure also leaves it empty and is
// reported as a *PersistenceError; until a later Initialize succeeds, every
// write is refused so the unread snapshot is not replaced.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = nil
	s.loadErr = nil

	data, err := s.provider.Get(ctx, s.cfg.Key)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && len(data) == 0) {
		s.log.Debug("no catalog snapshot, starting empty")
		return nil
	}
	if err != nil {
		s.log.Error("load catalog snapshot", zap.Error(err))
		s.loadErr = err
		return &PersistenceError{Op: "load", Key: s.cfg.Key, Err: err}
	}

	books, err := DecodeSnapshot(data)
	if err != nil {
		s.log.Warn("discarding unreadable catalog snapshot", zap.Error(err))
		return nil
	}

	s.books = s.sanitize(books)
	s.log.Info("catalog loaded", zap.Int("books", len(s.books)))
	return nil
}

// sanitize drops stored records that break the collection invariants.
func (s *Store) sanitize(books []book.Book) []book.Book {
	out := make([]book.Book, 0, len(books))
	seen := make(map[string]bool, len(books))
	for _, b := range books {
		in := b.Input().Normalize()
		switch {
		case b.ID == "":
			s.log.Warn("dropping stored book without id", zap.String("title", b.Title))
			continue
		case seen[b.ID]:
			s.log.Warn("dropping stored book with duplicate id", zap.String("id", b.ID))
			continue
		}
		if err := book.Validate(in); err != nil {
			s.log.Warn("dropping invalid stored book", zap.String("id", b.ID), zap.Error(err))
			continue
		}
		seen[b.ID] = true
		out = append(out, b.WithInput(in))
	}
	return out
}

// SeedIfEmpty appends the default books when the catalog is empty and
// persists them. It reports whether seeding happened. Seeding is not subject
// to the Authorizer. After a failed load it does nothing and returns a
// *PersistenceError wrapping ErrSnapshotUnread.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return false, s.unreadError("seed")
	}
	if len(s.books) > 0 {
		return false, nil
	}

	for _, in := range book.SeedData() {
		id, err := s.nextID()
		if err != nil {
			return false, err
		}
		s.books = append(s.books, book.Book{ID: id}.WithInput(in))
	}
	s.log.Info("catalog seeded", zap.Int("books", len(s.books)))

	return true, s.persist(ctx)
}

// List returns the derived view described by q as a new slice.
func (s *Store) List(q book.Query) []book.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return book.Apply(s.books, q, s.cfg.Locale)
}

// Get returns the book with the given id.
func (s *Store) Get(id string) (book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return book.Book{}, ErrNotFound
	}
	return s.books[i], nil
}

// Len returns the number of books in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.books)
}

// Create validates in, appends a new book with a fresh id and persists the
// catalog. When persisting fails the book is still created and returned
// together with a *PersistenceError.
func (s *Store) Create(ctx context.Context, in book.Input) (book.Book, error) {
	if err := s.authorize(ctx); err != nil {
		return book.Book{}, err
	}

	in = in.Normalize()
	if err := book.Validate(in); err != nil {
		return book.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID()
	if err != nil {
		return book.Book{}, err
	}
	b := book.Book{ID: id}.WithInput(in)
	s.books = append(s.books, b)
	s.log.Debug("book created", zap.String("id", id))

	return b, s.persist(ctx)
}

// Update applies patch to the book with the given id, keeping its id and
// position. Unknown ids yield ErrNotFound and invalid results a
// book.ValidationErrors; neither changes the catalog.
func (s *Store) Update(ctx context.Context, id string, patch book.Patch) (book.Book, error) {
	if err := s.authorize(ctx); err != nil {
		return book.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return book.Book{}, ErrNotFound
	}

	in := patch.Apply(s.books[i]).Normalize()
	if err := book.Validate(in); err != nil {
		return book.Book{}, err
	}

	b := s.books[i].WithInput(in)
	s.books[i] = b
	s.log.Debug("book updated", zap.String("id", id))

	return b, s.persist(ctx)
}

// Delete removes the book with the given id and persists the catalog.
// Deleting an unknown id does nothing.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.authorize(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.books = slices.Delete(s.books, i, i+1)
	s.log.Debug("book deleted", zap.String("id", id))

	return s.persist(ctx)
}

func (s *Store) authorize(ctx context.Context) error {
	if s.cfg.Authorizer == nil {
		return nil
	}
	if err := s.cfg.Authorizer.Authorize(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.books, func(b book.Book) bool { return b.ID == id })
}

func (s *Store) nextID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.cfg.NewID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("allocate book id: no unique id after %d attempts", maxIDAttempts)
}

func (s *Store) unreadError(op string) error {
	return &PersistenceError{Op: op, Key: s.cfg.Key, Err: fmt.Errorf("%w: %w", ErrSnapshotUnread, s.loadErr)}
}

// persist writes the full catalog. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if s.loadErr != nil {
		s.log.Warn("not saving over unread catalog snapshot", zap.Int("books", len(s.books)))
		return s.unreadError("save")
	}
	data, err := EncodeSnapshot(s.books)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: s.cfg.Key, Err: err}
	}
	if err := s.provider.Set(ctx, s.cfg.Key, data); err != nil {
		s.log.Error("save catalog snapshot", zap.Error(err), zap.Int("books", len(s.books)))
		return &PersistenceError{Op: "save", Key: s.cfg.Key, Err: err}
	}
	return nil
}
