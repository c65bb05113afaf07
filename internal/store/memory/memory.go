package memory

import (
	"context"
	"sync"

	"salonpos/backend/internal/store"
)

type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// NewSeeded returns a store preloaded with raw documents, keyed by name.
func NewSeeded(docs map[string]string) *Store {
	s := New()
	for key, value := range docs {
		s.values[key] = []byte(value)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = stored
	s.writes++
	return nil
}

// Writes counts Set calls.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
