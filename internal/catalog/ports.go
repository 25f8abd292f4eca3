package catalog

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=catalog

// Provider persists the catalog snapshot under a single key. Get returns
// storage.ErrNotFound when nothing has been stored yet.
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Authorizer decides whether the caller behind ctx may mutate the catalog.
type Authorizer interface {
	Authorize(ctx context.Context) error
}
