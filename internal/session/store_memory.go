package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"loanflow/pkg/platform/sentinel"
)

// InMemoryStore keeps sessions in a map for tests and dev. Reads return
// copies so callers never share mutable state with the store.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*FinancingSession
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*FinancingSession)}
}

func (s *InMemoryStore) Create(_ context.Context, sess *FinancingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; ok {
		return fmt.Errorf("session %s already exists: %w", sess.ID, sentinel.ErrConflict)
	}
	s.sessions[sess.ID] = clone(sess)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*FinancingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return clone(sess), nil
	}
	return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
}

// Update applies a compare-and-swap on Version: the write succeeds only when
// the caller holds the current version, and bumps it.
func (s *InMemoryStore) Update(_ context.Context, sess *FinancingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[sess.ID]
	if !ok {
		return fmt.Errorf("session %s: %w", sess.ID, sentinel.ErrNotFound)
	}
	if current.Version != sess.Version {
		return fmt.Errorf("session %s version %d (have %d): %w",
			sess.ID, sess.Version, current.Version, sentinel.ErrConflict)
	}
	updated := clone(sess)
	updated.Version++
	updated.UpdatedAt = time.Now()
	s.sessions[sess.ID] = updated
	sess.Version = updated.Version
	sess.UpdatedAt = updated.UpdatedAt
	return nil
}

func clone(sess *FinancingSession) *FinancingSession {
	c := *sess
	if sess.DeclaredMonthlyIncome != nil {
		v := *sess.DeclaredMonthlyIncome
		c.DeclaredMonthlyIncome = &v
	}
	if sess.LastDecision != nil {
		d := *sess.LastDecision
		if sess.LastDecision.Terms != nil {
			terms := *sess.LastDecision.Terms
			d.Terms = &terms
		}
		c.LastDecision = &d
	}
	return &c
}
