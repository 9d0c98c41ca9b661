package gamedata

import (
	"sync"
	"sync/atomic"
)

var empty = NewTables()

// Store publishes one Tables snapshot at a time. Readers call Load once per
// operation; a reload builds fresh Tables and installs them with Swap.
type Store struct {
	mu      sync.Mutex // serializes Swap so versions stay monotonic
	current atomic.Pointer[Tables]
	version uint64
}

// NewStore returns a store holding t, or empty tables if t is nil.
func NewStore(t *Tables) *Store {
	s := &Store{}
	if t != nil {
		s.Swap(t)
	}
	return s
}

// Load returns the current snapshot. It never returns nil.
func (s *Store) Load() *Tables {
	if t := s.current.Load(); t != nil {
		return t
	}
	return empty
}

// Swap installs t as the current snapshot, stamps its version and returns
// the previous snapshot (nil before the first swap). A nil t installs empty
// tables.
func (s *Store) Swap(t *Tables) *Tables {
	if t == nil {
		t = NewTables()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	t.Version = s.version
	return s.current.Swap(t)
}

// Version is the version of the current snapshot, 0 before the first swap.
func (s *Store) Version() uint64 {
	return s.Load().Version
}
