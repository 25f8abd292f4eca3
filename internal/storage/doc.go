// Package storage defines the persistence contract shared by the catalog
// snapshot providers.
//
// Providers are embedded key-value stores holding opaque byte values:
//   - bbolt: a single-file BoltDB database.
//   - sqlite: a single-file SQLite database with one key/value table.
//   - memory: a process-local map with an optional byte quota.
//
// The backend subpackage opens a provider by driver name.
//
// # Error Types
//
//   - ErrNotFound: nothing is stored under the key.
package storage
