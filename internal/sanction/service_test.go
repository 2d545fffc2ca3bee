package sanction

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"loanflow/internal/session"
	"loanflow/internal/underwriting"
	dErrors "loanflow/pkg/domain-errors"
	"loanflow/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = NewService(NewInMemoryStore())
	s.ctx = context.Background()
}

func approvedSession() *session.FinancingSession {
	sess := session.New("CUST001", 50000, 12, time.Now())
	sess.Status = session.StatusApproved
	sess.LastDecision = &underwriting.Outcome{
		Status: underwriting.StatusApproved,
		Terms:  &underwriting.Terms{Amount: 50000, TenureMonths: 12, InterestRatePct: 12, EMI: 4442},
	}
	return sess
}

func (s *ServiceSuite) TestIssueFreezesTerms() {
	issuedAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(s.ctx, issuedAt)

	sanc, err := s.service.Issue(ctx, approvedSession())
	s.Require().NoError(err)
	s.True(strings.HasPrefix(sanc.ID, "sanc_"))
	s.Equal("CUST001", sanc.CustomerID)
	s.Equal(int64(50000), sanc.Amount)
	s.Equal(12, sanc.TenureMonths)
	s.Equal(float64(12), sanc.InterestRatePct)
	s.Equal(int64(4442), sanc.EMI)
	s.True(sanc.IssuedAt.Equal(issuedAt))
}

func (s *ServiceSuite) TestIssueIdempotent() {
	sess := approvedSession()
	first, err := s.service.Issue(s.ctx, sess)
	s.Require().NoError(err)

	second, err := s.service.Issue(s.ctx, sess)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
}

// Concurrent issuance for the same session must converge on one sanction.
func (s *ServiceSuite) TestIssueConcurrent() {
	sess := approvedSession()

	const racers = 8
	var wg sync.WaitGroup
	results := make(chan *Sanction, racers)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sanc, err := s.service.Issue(s.ctx, sess)
			s.NoError(err)
			results <- sanc
		}()
	}
	wg.Wait()
	close(results)

	ids := map[string]bool{}
	for sanc := range results {
		ids[sanc.ID] = true
	}
	s.Len(ids, 1)
}

func (s *ServiceSuite) TestIssueRequiresApproval() {
	for _, status := range []session.Status{
		session.StatusCreated,
		session.StatusEvaluating,
		session.StatusDocumentsRequired,
		session.StatusRejected,
	} {
		sess := approvedSession()
		sess.Status = status
		_, err := s.service.Issue(s.ctx, sess)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState), "status %s", status)
	}
}

func (s *ServiceSuite) TestIssueRequiresDecisionTerms() {
	sess := approvedSession()
	sess.LastDecision = nil
	_, err := s.service.Issue(s.ctx, sess)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
}

// A SANCTIONED session re-issuing returns the existing record, supporting
// checkout retries after the state transition landed.
func (s *ServiceSuite) TestIssueOnSanctionedSession() {
	sess := approvedSession()
	first, err := s.service.Issue(s.ctx, sess)
	s.Require().NoError(err)

	sess.Status = session.StatusSanctioned
	second, err := s.service.Issue(s.ctx, sess)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
}

func (s *ServiceSuite) TestGetAndGetBySessionID() {
	sess := approvedSession()
	issued, err := s.service.Issue(s.ctx, sess)
	s.Require().NoError(err)

	byID, err := s.service.Get(s.ctx, issued.ID)
	s.Require().NoError(err)
	s.Equal(issued.ID, byID.ID)

	bySession, err := s.service.GetBySessionID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(issued.ID, bySession.ID)

	_, err = s.service.Get(s.ctx, "sanc_missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.GetBySessionID(s.ctx, "sess_missing")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestRenderLetter() {
	sess := approvedSession()
	sanc, err := s.service.Issue(requestcontext.WithTime(s.ctx, time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)), sess)
	s.Require().NoError(err)

	letter := RenderLetter(sanc, "Rajesh Kumar")
	s.Contains(letter, "LOAN SANCTION LETTER")
	s.Contains(letter, sanc.ID)
	s.Contains(letter, "Rajesh Kumar")
	s.Contains(letter, "Rs. 50000")
	s.Contains(letter, "12 months")
	s.Contains(letter, "Rs. 4442")
	s.Contains(letter, "2026-02-10")
	s.Contains(letter, sess.ID)

	// Empty name falls back to the customer id.
	s.Contains(RenderLetter(sanc, ""), "CUST001")
}
