package store

import (
	"context"
	"sync"

	"emend/internal/review/models"
	dErrors "emend/pkg/domain-errors"
)

// MemoryStore is an in-memory record store for tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.Record
}

var _ Store = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string]*models.Record)}
}

// Seed stores a record under its unique id, replacing any existing one.
func (s *MemoryStore) Seed(record *models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UniqueID] = record.Clone()
}

func (s *MemoryStore) Get(_ context.Context, uniqueID string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[uniqueID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "user record not found")
	}
	return record.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, uniqueID string, record *models.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[uniqueID]; !ok {
		return 0, nil
	}
	stored := record.Clone()
	stored.UniqueID = uniqueID
	s.records[uniqueID] = stored
	return 1, nil
}
