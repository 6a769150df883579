package aliases

import (
	"context"
	"sync"
)

// MemoryStore is the fallback when no Redis address is configured. State is
// process-local and lost on restart, which only resets display names.
type MemoryStore struct {
	mu      sync.RWMutex
	aliases map[string]map[string]string
	order   map[string]map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		aliases: make(map[string]map[string]string),
		order:   make(map[string]map[string]int),
	}
}

func (s *MemoryStore) Aliases(_ context.Context, userID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.aliases[userID]))
	for k, v := range s.aliases[userID] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) SetAlias(_ context.Context, userID, domainKey, alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if alias == "" {
		delete(s.aliases[userID], domainKey)
		return nil
	}
	if s.aliases[userID] == nil {
		s.aliases[userID] = make(map[string]string)
	}
	s.aliases[userID][domainKey] = alias
	return nil
}

func (s *MemoryStore) Order(_ context.Context, userID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.order[userID]))
	for k, v := range s.order[userID] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) SetOrder(_ context.Context, userID, domainKey string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order[userID] == nil {
		s.order[userID] = make(map[string]int)
	}
	s.order[userID][domainKey] = position
	return nil
}
