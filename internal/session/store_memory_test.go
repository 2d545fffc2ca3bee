package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"loanflow/internal/underwriting"
	"loanflow/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) newSession() *FinancingSession {
	return New("CUST001", 50000, 12, time.Now())
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	sess := s.newSession()
	s.Require().NoError(s.store.Create(s.ctx, sess))

	found, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.ID, found.ID)
	s.Equal(StatusCreated, found.Status)
	s.Equal(int64(50000), found.RequestedAmount)
}

func (s *InMemoryStoreSuite) TestCreateDuplicate() {
	sess := s.newSession()
	s.Require().NoError(s.store.Create(s.ctx, sess))
	err := s.store.Create(s.ctx, sess)
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *InMemoryStoreSuite) TestFindUnknown() {
	_, err := s.store.FindByID(s.ctx, "sess_missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestUpdateBumpsVersion() {
	sess := s.newSession()
	s.Require().NoError(s.store.Create(s.ctx, sess))

	sess.Status = StatusEvaluating
	s.Require().NoError(s.store.Update(s.ctx, sess))
	s.Equal(int64(2), sess.Version)

	found, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StatusEvaluating, found.Status)
	s.Equal(int64(2), found.Version)
}

func (s *InMemoryStoreSuite) TestUpdateStaleVersionConflicts() {
	sess := s.newSession()
	s.Require().NoError(s.store.Create(s.ctx, sess))

	stale, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)

	sess.Status = StatusEvaluating
	s.Require().NoError(s.store.Update(s.ctx, sess))

	stale.Status = StatusRejected
	err = s.store.Update(s.ctx, stale)
	s.ErrorIs(err, sentinel.ErrConflict)

	found, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StatusEvaluating, found.Status)
}

func (s *InMemoryStoreSuite) TestUpdateUnknown() {
	sess := s.newSession()
	err := s.store.Update(s.ctx, sess)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// Reads return copies: mutating a found session must not leak into the store.
func (s *InMemoryStoreSuite) TestFindReturnsCopy() {
	sess := s.newSession()
	income := int64(45000)
	sess.DeclaredMonthlyIncome = &income
	sess.LastDecision = &underwriting.Outcome{
		Status: underwriting.StatusApproved,
		Terms:  &underwriting.Terms{Amount: 50000, TenureMonths: 12, InterestRatePct: 12, EMI: 4442},
	}
	s.Require().NoError(s.store.Create(s.ctx, sess))

	found, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	*found.DeclaredMonthlyIncome = 1
	found.LastDecision.Terms.EMI = 1
	found.Status = StatusRejected

	again, err := s.store.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(int64(45000), *again.DeclaredMonthlyIncome)
	s.Equal(int64(4442), again.LastDecision.Terms.EMI)
	s.Equal(StatusCreated, again.Status)
}

// Exactly one of N racing writers holding the same version may win. The rest
// must observe a conflict.
func (s *InMemoryStoreSuite) TestConcurrentUpdates() {
	sess := s.newSession()
	s.Require().NoError(s.store.Create(s.ctx, sess))

	const racers = 8
	var wg sync.WaitGroup
	conflicts := make(chan error, racers)
	for range racers {
		copy, err := s.store.FindByID(s.ctx, sess.ID)
		s.Require().NoError(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			copy.Status = StatusEvaluating
			conflicts <- s.store.Update(s.ctx, copy)
		}()
	}
	wg.Wait()
	close(conflicts)

	var won, lost int
	for err := range conflicts {
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
