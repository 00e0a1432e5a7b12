package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/okian/dexkeeper/internal/domain/model"
)

const backendMemory = "memory"

// MemoryStore keeps the collection in memory, preserving insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Pokemon
	index   map[string]int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

// GetAll returns copies of every record in insertion order.
func (s *MemoryStore) GetAll(_ context.Context) ([]model.Pokemon, error) {
	defer observe(backendMemory, "get_all", time.Now(), nil)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Pokemon, len(s.records))
	for i, p := range s.records {
		out[i] = p.Clone()
	}
	return out, nil
}

// Get returns the record with id.
func (s *MemoryStore) Get(_ context.Context, id string) (p model.Pokemon, err error) {
	defer func(start time.Time) { observe(backendMemory, "get", start, err) }(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Pokemon{}, ErrNotFound
	}
	return s.records[i].Clone(), nil
}

// Put inserts p or replaces the record with the same id in place.
func (s *MemoryStore) Put(_ context.Context, p model.Pokemon) (err error) {
	defer func(start time.Time) { observe(backendMemory, "put", start, err) }(time.Now())

	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[p.ID]; ok {
		s.records[i] = p.Clone()
		return nil
	}
	s.index[p.ID] = len(s.records)
	s.records = append(s.records, p.Clone())
	return nil
}

// Delete removes the record with id.
func (s *MemoryStore) Delete(_ context.Context, id string) (err error) {
	defer func(start time.Time) { observe(backendMemory, "delete", start, err) }(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[s.records[j].ID] = j
	}
	return nil
}

// Clear removes every record.
func (s *MemoryStore) Clear(_ context.Context) error {
	defer observe(backendMemory, "clear", time.Now(), nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.index = make(map[string]int)
	return nil
}

// Replace swaps in records under a single lock.
func (s *MemoryStore) Replace(_ context.Context, records []model.Pokemon) (err error) {
	defer func(start time.Time) { observe(backendMemory, "replace", start, err) }(time.Now())

	next := make([]model.Pokemon, 0, len(records))
	index := make(map[string]int, len(records))
	for _, p := range records {
		if strings.TrimSpace(p.ID) == "" {
			return ErrInvalidID
		}
		if i, ok := index[p.ID]; ok {
			next[i] = p.Clone()
			continue
		}
		index[p.ID] = len(next)
		next = append(next, p.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = next
	s.index = index
	return nil
}

// Count returns the number of records.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
