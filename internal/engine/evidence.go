package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"loanflow/internal/session"
	"loanflow/internal/underwriting"
	dErrors "loanflow/pkg/domain-errors"
)

const evidenceTimeout = 5 * time.Second

// evidence is everything the evaluator needs beyond the session itself.
type evidence struct {
	profile underwriting.RiskProfile
}

// gatherEvidence fetches the risk profile and, when the session carries an
// uploaded proof, confirms the artifact is still retrievable. Fetches run in
// parallel with shared cancellation.
func (s *Service) gatherEvidence(ctx context.Context, sess *session.FinancingSession) (*evidence, error) {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	ev := &evidence{}

	g.Go(func() error {
		start := time.Now()
		customer, err := s.lookupCustomer(ctx, sess.CustomerID, "")
		s.metrics.ObserveEvidenceLatency("profile", time.Since(start))
		if err != nil {
			return err
		}
		ev.profile = customer.RiskProfile()
		return nil
	})

	if sess.ProofRef != "" {
		g.Go(func() error {
			start := time.Now()
			_, err := s.documents.Get(ctx, sess.ProofRef)
			s.metrics.ObserveEvidenceLatency("proof", time.Since(start))
			if err != nil {
				return dErrors.New(dErrors.CodeUnavailable, "income proof unavailable, try again")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ev, nil
}
