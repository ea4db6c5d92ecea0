// Package memstore provides an in-process implementation of store.Slots.
// Nothing survives the process; it backs tests and --ephemeral runs.
package memstore

import (
	"sync"

	"github.com/idilsaglam/dash/internal/store"
)

// Store is a map-backed store.Slots.
type Store struct {
	mu      sync.Mutex
	slots   map[string][]byte
	failSet error
	writes  int
}

var _ store.Slots = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// Get returns a copy of the value under key.
func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key, or returns the injected failure.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return s.failSet
	}
	s.slots[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// FailWrites makes every subsequent Set return err. Pass nil to recover.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = err
}

// Writes reports how many Set calls succeeded.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
