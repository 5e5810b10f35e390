package enumerate

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory reference store for tests and local runs.
type MemoryStore struct {
	mu              sync.RWMutex
	activities      map[int64]struct{}
	states          map[string]struct{}
	nationalities   map[int64]struct{}
	countries       map[string]struct{}
	maritalStatuses map[int64]struct{}
	cities          map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		activities:      make(map[int64]struct{}),
		states:          make(map[string]struct{}),
		nationalities:   make(map[int64]struct{}),
		countries:       make(map[string]struct{}),
		maritalStatuses: make(map[int64]struct{}),
		cities:          make(map[string]struct{}),
	}
}

func (s *MemoryStore) SeedActivity(codes ...int64) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range codes {
		s.activities[c] = struct{}{}
	}
	return s
}

func (s *MemoryStore) SeedState(codes ...string) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range codes {
		s.states[c] = struct{}{}
	}
	return s
}

func (s *MemoryStore) SeedNationality(codes ...int64) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range codes {
		s.nationalities[c] = struct{}{}
	}
	return s
}

func (s *MemoryStore) SeedCountry(codes ...string) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range codes {
		s.countries[c] = struct{}{}
	}
	return s
}

func (s *MemoryStore) SeedMaritalStatus(codes ...int64) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range codes {
		s.maritalStatuses[c] = struct{}{}
	}
	return s
}

func (s *MemoryStore) SeedCity(country, state string, city int64) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities[cityKey(country, state, city)] = struct{}{}
	return s
}

func (s *MemoryStore) ActivityExists(_ context.Context, code int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.activities[code]
	return ok, nil
}

func (s *MemoryStore) StateExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.states[code]
	return ok, nil
}

func (s *MemoryStore) NationalityExists(_ context.Context, code int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nationalities[code]
	return ok, nil
}

func (s *MemoryStore) CountryExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.countries[code]
	return ok, nil
}

func (s *MemoryStore) MaritalStatusExists(_ context.Context, code int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.maritalStatuses[code]
	return ok, nil
}

func (s *MemoryStore) CityExists(_ context.Context, country, state string, city int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cities[cityKey(country, state, city)]
	return ok, nil
}

func cityKey(country, state string, city int64) string {
	return fmt.Sprintf("%s/%s/%d", country, state, city)
}
