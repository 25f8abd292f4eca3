package ingest

import (
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run summarizes one import.
type Run struct {
	ID          string
	Source      string
	Format      Format
	StartedAt   time.Time
	FinishedAt  *time.Time
	Status      string // RUNNING, COMPLETED, FAILED
	RecordsRead int
	Created     int
	Failed      int
	Errors      []RecordError
	Error       string
}

// RecordError explains why a single record was skipped.
type RecordError struct {
	Index  int // zero based position in the file
	Title  string
	Fields []string
	Err    string
}
