package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/battle/internal/domain/model"
)

// MemoryStore keeps collections in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]model.ScoreEntry
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]model.ScoreEntry)}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, key string) ([]model.ScoreEntry, bool, error) {
	defer observe(DriverMemory, "load", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	entries, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return cloneEntries(entries), true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, key string, entries []model.ScoreEntry) error {
	defer observe(DriverMemory, "save", time.Now())

	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.data[key] = cloneEntries(entries)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
