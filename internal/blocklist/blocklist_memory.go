package blocklist

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory block list for tests and runs without Redis.
type MemoryStore struct {
	mu      sync.RWMutex
	blocked map[string]struct{}
}

var _ Store = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{blocked: make(map[string]struct{})}
}

// Block marks an account as blocked.
func (s *MemoryStore) Block(uniqueID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked[uniqueID] = struct{}{}
}

func (s *MemoryStore) IsBlocked(_ context.Context, uniqueID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocked[uniqueID]
	return ok, nil
}
