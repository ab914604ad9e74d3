package oauth2state

import (
	"context"
	"sync"
	"time"
)

// MemoryStore backs tests and single-process runs without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Handshake
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Handshake)}
}

func (s *MemoryStore) Create(_ context.Context, state string, h Handshake) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	s.entries[state] = h
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, state string) (*Handshake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.entries[state]
	if !ok {
		return nil, nil
	}
	delete(s.entries, state)

	if time.Since(h.CreatedAt) > TTL {
		return nil, nil
	}
	return &h, nil
}
