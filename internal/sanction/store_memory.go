package sanction

import (
	"context"
	"fmt"
	"sync"

	"loanflow/pkg/platform/sentinel"
)

// InMemoryStore keeps sanctions in memory for dev and tests. The bySession
// index enforces the one-sanction-per-session invariant.
type InMemoryStore struct {
	mu        sync.RWMutex
	byID      map[string]*Sanction
	bySession map[string]*Sanction
}

// NewInMemoryStore constructs an empty in-memory sanction store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:      make(map[string]*Sanction),
		bySession: make(map[string]*Sanction),
	}
}

func (s *InMemoryStore) Create(_ context.Context, sanc *Sanction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bySession[sanc.SessionID]; ok {
		return fmt.Errorf("session %s already sanctioned: %w", sanc.SessionID, sentinel.ErrConflict)
	}
	stored := *sanc
	s.byID[stored.ID] = &stored
	s.bySession[stored.SessionID] = &stored
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Sanction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sanc, ok := s.byID[id]; ok {
		copied := *sanc
		return &copied, nil
	}
	return nil, fmt.Errorf("sanction %s: %w", id, sentinel.ErrNotFound)
}

func (s *InMemoryStore) FindBySessionID(_ context.Context, sessionID string) (*Sanction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sanc, ok := s.bySession[sessionID]; ok {
		copied := *sanc
		return &copied, nil
	}
	return nil, fmt.Errorf("sanction for session %s: %w", sessionID, sentinel.ErrNotFound)
}
