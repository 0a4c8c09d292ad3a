package journal

import (
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-memory journal.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]stored
	seq     int
	closed  bool
}

// stored keeps the insertion sequence used for ordering.
type stored struct {
	entry Entry
	seq   int
}

// NewMemoryStore creates a new in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]stored),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(e Entry) error {
	if e.ID == "" {
		return ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	// Copy slices to avoid retaining the caller's backing arrays
	e.Tokens = slices.Clone(e.Tokens)
	e.Postfix = slices.Clone(e.Postfix)

	m.seq++
	m.entries[e.ID] = stored{entry: e, seq: m.seq}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(id string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Entry{}, ErrStoreClosed
	}

	s, ok := m.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return cloneEntry(s.entry), nil
}

// List implements Store.
func (m *MemoryStore) List(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	all := make([]stored, 0, len(m.entries))
	for _, s := range m.entries {
		all = append(all, s)
	}
	slices.SortFunc(all, func(a, b stored) int {
		return b.seq - a.seq
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	entries := make([]Entry, 0, len(all))
	for _, s := range all {
		entries = append(entries, cloneEntry(s.entry))
	}
	return entries, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.entries, id)
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.entries = make(map[string]stored)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.entries = nil
	return nil
}

func cloneEntry(e Entry) Entry {
	e.Tokens = slices.Clone(e.Tokens)
	e.Postfix = slices.Clone(e.Postfix)
	return e
}
