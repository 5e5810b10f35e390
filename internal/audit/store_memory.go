package audit

import (
	"context"
	"sync"
)

// MemoryStore keeps audit entries in memory for tests and local runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	failure error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FailWith makes every subsequent Append return err.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a snapshot of everything appended so far.
func (s *MemoryStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
