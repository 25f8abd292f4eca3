package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Creator adds a book to the catalog. *catalog.Store satisfies it.
type Creator interface {
	Create(ctx context.Context, in book.Input) (book.Book, error)
}

type Service struct {
	creator Creator
	log     *zap.Logger
	now     func() time.Time
}

func NewService(creator Creator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		creator: creator,
		log:     log,
		now:     time.Now,
	}
}

// Run imports every record read from r. Records failing validation are
// skipped and listed in the returned Run; any other Create error stops the
// import. The Run is returned even when err is non-nil.
func (s *Service) Run(ctx context.Context, source string, r io.Reader, format Format) (run *Run, err error) {
	run = &Run{
		ID:        uuid.NewString(),
		Source:    source,
		Format:    format,
		Status:    StatusRunning,
		StartedAt: s.now(),
	}
	log := s.log.With(zap.String("run", run.ID), zap.String("source", source))

	defer func() {
		now := s.now()
		run.FinishedAt = &now
		if err != nil && run.Error == "" {
			run.Error = err.Error()
		}

		if run.Error != "" {
			run.Status = StatusFailed
			log.Error("import failed", zap.String("error", run.Error), zap.Int("created", run.Created))
		} else {
			run.Status = StatusCompleted
			log.Info("import finished",
				zap.Int("read", run.RecordsRead),
				zap.Int("created", run.Created),
				zap.Int("failed", run.Failed))
		}
	}()

	records, err := Decode(r, format)
	if err != nil {
		return run, err
	}
	run.RecordsRead = len(records)

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		in, err := rec.Input()
		if err == nil {
			_, err = s.creator.Create(ctx, in)
		}

		switch {
		case err == nil:
			run.Created++
		case errors.Is(err, book.ErrValidation):
			run.Failed++
			run.Errors = append(run.Errors, recordError(i, rec, err))
			log.Debug("skipping invalid record", zap.Int("index", i), zap.Error(err))
		default:
			// The store keeps a book whose snapshot write failed, so it
			// still counts as created.
			var perr *catalog.PersistenceError
			if errors.As(err, &perr) {
				run.Created++
			}
			return run, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return run, nil
}

func recordError(i int, rec Record, err error) RecordError {
	re := RecordError{Index: i, Title: rec.Title, Err: err.Error()}
	var verrs book.ValidationErrors
	if errors.As(err, &verrs) {
		re.Fields = verrs.Fields()
	}
	return re
}
