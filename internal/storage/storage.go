package storage

import "errors"

// ErrNotFound indicates that no value is stored under the requested key.
var ErrNotFound = errors.New("record not found")
