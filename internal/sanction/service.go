package sanction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loanflow/internal/session"
	dErrors "loanflow/pkg/domain-errors"
	"loanflow/pkg/platform/sentinel"
	"loanflow/pkg/requestcontext"
)

// Service is the only writer of sanction records. Issuance is exactly-once
// per session: a duplicate attempt returns the pre-existing sanction.
type Service struct {
	store Store
}

// NewService constructs a sanction issuer over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Issue mints a sanction for an approved session, freezing the terms from its
// last decision. Idempotent: if the session already holds a sanction the
// existing one is returned. The caller owns the session's transition to
// SANCTIONED.
func (s *Service) Issue(ctx context.Context, sess *session.FinancingSession) (*Sanction, error) {
	if sess.Status != session.StatusApproved && sess.Status != session.StatusSanctioned {
		return nil, dErrors.New(dErrors.CodeInvalidState, "session is not approved")
	}
	if sess.LastDecision == nil || sess.LastDecision.Terms == nil {
		return nil, dErrors.New(dErrors.CodeInvalidState, "approved session has no decision terms")
	}

	if existing, err := s.store.FindBySessionID(ctx, sess.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}

	terms := sess.LastDecision.Terms
	sanc := &Sanction{
		ID:              NewID(),
		SessionID:       sess.ID,
		CustomerID:      sess.CustomerID,
		Amount:          terms.Amount,
		TenureMonths:    terms.TenureMonths,
		InterestRatePct: terms.InterestRatePct,
		EMI:             terms.EMI,
		IssuedAt:        requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, sanc); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost the race: a concurrent retry minted first.
			return s.store.FindBySessionID(ctx, sess.ID)
		}
		return nil, err
	}
	return sanc, nil
}

// GetBySessionID fetches the sanction issued for a session, if any.
func (s *Service) GetBySessionID(ctx context.Context, sessionID string) (*Sanction, error) {
	sanc, err := s.store.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "sanction not found")
		}
		return nil, err
	}
	return sanc, nil
}

// Get fetches a sanction by id for download.
func (s *Service) Get(ctx context.Context, sanctionID string) (*Sanction, error) {
	sanc, err := s.store.FindByID(ctx, sanctionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "sanction not found")
		}
		return nil, err
	}
	return sanc, nil
}

// RenderLetter produces the plain-text sanction letter served for download.
func RenderLetter(sanc *Sanction, customerName string) string {
	name := customerName
	if name == "" {
		name = sanc.CustomerID
	}
	return fmt.Sprintf(`LOAN SANCTION LETTER

Sanction ID: %s
Date: %s

Dear %s,

We are pleased to confirm the sanction of your consumer loan on the following terms:

    Loan Amount:    Rs. %d
    Tenure:         %d months
    Interest Rate:  %.2f%% p.a.
    Monthly EMI:    Rs. %d

This sanction is binding on the terms stated above and is linked to financing
session %s.
`,
		sanc.ID,
		sanc.IssuedAt.Format(time.DateOnly),
		name,
		sanc.Amount,
		sanc.TenureMonths,
		sanc.InterestRatePct,
		sanc.EMI,
		sanc.SessionID,
	)
}
