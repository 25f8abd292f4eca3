package book

import "github.com/google/uuid"

// IDFunc produces record identifiers.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}
