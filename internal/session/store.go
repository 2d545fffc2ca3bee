package session

import "context"

// Error Contract:
// All store methods follow this pattern:
// - Return sentinel.ErrNotFound (wrapped) when the session does not exist
// - Return sentinel.ErrConflict (wrapped) when Update loses an optimistic-lock race
// - Return wrapped errors with context for infrastructure failures

// Store persists financing sessions. Update enforces compare-and-swap on
// Version so concurrent state transitions for the same session serialize;
// implementations bump Version on success.
type Store interface {
	Create(ctx context.Context, s *FinancingSession) error
	FindByID(ctx context.Context, id string) (*FinancingSession, error)
	Update(ctx context.Context, s *FinancingSession) error
}
