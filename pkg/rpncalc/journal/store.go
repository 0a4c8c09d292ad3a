// Package journal records calculation history.
package journal

import (
	"errors"
	"time"
)

// Store persists journal entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores an entry. Overwrites an existing entry with the same ID.
	Save(e Entry) error

	// Load retrieves an entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	Load(id string) (Entry, error)

	// List returns entries newest first. A limit <= 0 returns all entries.
	// Returns an empty slice (not error) if the journal is empty.
	List(limit int) ([]Entry, error)

	// Delete removes an entry. Returns nil if it doesn't exist.
	Delete(id string) error

	// Clear removes every entry.
	Clear() error

	// Close releases any resources (connections, files).
	Close() error
}

// Entry is one recorded calculation.
type Entry struct {
	ID      string
	Tokens  []string
	Postfix []string
	// Value is the formatted result; zero when ErrorKind is set.
	Value     float64
	ErrorKind string
	Error     string
	CreatedAt time.Time
}

// Failed reports whether the calculation ended in an error.
func (e Entry) Failed() bool {
	return e.ErrorKind != ""
}

// Sentinel errors for journal operations.
var (
	// ErrNotFound indicates an entry doesn't exist.
	ErrNotFound = errors.New("journal entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")

	// ErrMissingID indicates an entry was saved without an ID.
	ErrMissingID = errors.New("journal entry has no ID")
)
