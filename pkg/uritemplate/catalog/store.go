// Package catalog keeps named URI template expressions in a persistent store.
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Store persists catalog entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a new entry.
	// Returns ErrDuplicateName if an entry with the same name exists.
	Put(entry Entry) error

	// Get retrieves an entry by name.
	// Returns ErrNotFound if no entry has that name.
	Get(name string) (Entry, error)

	// List returns all entries ordered by name.
	// Returns empty slice (not error) if the store is empty.
	List() ([]Entry, error)

	// Delete removes an entry by name.
	// Returns nil if the entry doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is one named expression.
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Source  string    `json:"source"`
	Level   int       `json:"level"`
	Created time.Time `json:"created"`
}

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates no entry has the requested name.
	ErrNotFound = errors.New("catalog entry not found")

	// ErrDuplicateName indicates an entry with the same name already exists.
	ErrDuplicateName = errors.New("catalog entry name already exists")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("catalog store closed")

	// ErrInvalidName indicates an empty or malformed entry name.
	ErrInvalidName = errors.New("invalid catalog entry name")
)
