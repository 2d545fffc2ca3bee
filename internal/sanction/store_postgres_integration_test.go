//go:build integration

package sanction_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"loanflow/internal/sanction"
	"loanflow/pkg/platform/sentinel"
	"loanflow/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *sanction.PostgresStore
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T(), sanction.Schema)
	s.store = sanction.NewPostgresStore(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx, "sanctions"))
}

func newSanction(sessionID string) *sanction.Sanction {
	return &sanction.Sanction{
		ID:              sanction.NewID(),
		SessionID:       sessionID,
		CustomerID:      "CUST001",
		Amount:          50000,
		TenureMonths:    12,
		InterestRatePct: 12,
		EMI:             4442,
		IssuedAt:        time.Now().UTC(),
	}
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	sanc := newSanction("sess_abc")
	s.Require().NoError(s.store.Create(s.ctx, sanc))

	byID, err := s.store.FindByID(s.ctx, sanc.ID)
	s.Require().NoError(err)
	s.Equal(sanc.SessionID, byID.SessionID)
	s.Equal(sanc.Amount, byID.Amount)
	s.Equal(sanc.InterestRatePct, byID.InterestRatePct)
	s.Equal(sanc.EMI, byID.EMI)
	s.WithinDuration(sanc.IssuedAt, byID.IssuedAt, time.Millisecond)

	bySession, err := s.store.FindBySessionID(s.ctx, sanc.SessionID)
	s.Require().NoError(err)
	s.Equal(sanc.ID, bySession.ID)
}

func (s *PostgresStoreSuite) TestFindUnknown() {
	_, err := s.store.FindByID(s.ctx, "sanc_missing")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindBySessionID(s.ctx, "sess_missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// The unique session_id index converts duplicate issuance into ErrConflict.
func (s *PostgresStoreSuite) TestDuplicateSessionConflicts() {
	s.Require().NoError(s.store.Create(s.ctx, newSanction("sess_abc")))
	err := s.store.Create(s.ctx, newSanction("sess_abc"))
	s.ErrorIs(err, sentinel.ErrConflict)
}

// Exactly one writer wins a concurrent issuance race for the same session.
func (s *PostgresStoreSuite) TestConcurrentCreate() {
	const racers = 8
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.store.Create(s.ctx, newSanction("sess_race"))
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		if err == nil {
			won++
		} else {
			s.ErrorIs(err, sentinel.ErrConflict)
			lost++
		}
	}
	s.Equal(1, won)
	s.Equal(racers-1, lost)
}
