// Package memory provides an in-process implementation of storage.Slot.
// It is the fake used by tests and the "memory" storage backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mmynk/zeipilote/internal/storage"
)

var _ storage.Slot = (*Slot)(nil)

// Slot keeps values in a map guarded by a mutex.
type Slot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates an empty Slot.
func New() *Slot {
	return &Slot{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Slot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrEmpty
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key.
func (s *Slot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = slices.Clone(value)
	return nil
}

// Close is a no-op.
func (s *Slot) Close() error { return nil }
