package underwriting

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EvaluateSuite struct {
	suite.Suite
	policy Policy
}

func TestEvaluateSuite(t *testing.T) {
	suite.Run(t, new(EvaluateSuite))
}

func (s *EvaluateSuite) SetupTest() {
	s.policy = DefaultPolicy()
}

func profile(score int, limit int64) RiskProfile {
	return RiskProfile{
		CustomerID:       "CUST001",
		CreditScore:      score,
		PreApprovedLimit: limit,
	}
}

func income(v int64) *int64 { return &v }

func (s *EvaluateSuite) TestWithinPreApprovedLimit() {
	outcome, err := Evaluate(s.policy, profile(780, 50000), 50000, 12, nil)
	s.Require().NoError(err)
	s.Equal(StatusApproved, outcome.Status)
	s.True(outcome.Approved())
	s.Require().NotNil(outcome.Terms)
	s.Equal(int64(50000), outcome.Terms.Amount)
	s.Equal(float64(12), outcome.Terms.InterestRatePct)
	s.Equal(int64(4442), outcome.Terms.EMI)
}

func (s *EvaluateSuite) TestScoreBelowFloor() {
	outcome, err := Evaluate(s.policy, profile(650, 30000), 10000, 12, nil)
	s.Require().NoError(err)
	s.Equal(StatusRejected, outcome.Status)
	s.Equal(ReasonScoreBelowMinimum, outcome.Reason)
	s.Nil(outcome.Terms)
}

// A low score rejects even when the amount is comfortably inside the limit;
// the score rule runs first.
func (s *EvaluateSuite) TestScoreRuleRunsBeforeAmountRules() {
	outcome, err := Evaluate(s.policy, profile(600, 100000), 1000, 3, income(500000))
	s.Require().NoError(err)
	s.Equal(StatusRejected, outcome.Status)
	s.Equal(ReasonScoreBelowMinimum, outcome.Reason)
}

func (s *EvaluateSuite) TestAmountAboveMultiplierCap() {
	// cap = 50000 * 3.0 = 150000
	outcome, err := Evaluate(s.policy, profile(780, 50000), 150001, 12, income(500000))
	s.Require().NoError(err)
	s.Equal(StatusRejected, outcome.Status)
	s.Equal(ReasonAmountExceedsLimit, outcome.Reason)
}

func (s *EvaluateSuite) TestAmountExactlyAtCap() {
	outcome, err := Evaluate(s.policy, profile(820, 50000), 150000, 12, income(500000))
	s.Require().NoError(err)
	s.Equal(StatusApproved, outcome.Status)
}

func (s *EvaluateSuite) TestAboveLimitWithoutIncomeNeedsProof() {
	outcome, err := Evaluate(s.policy, profile(820, 75000), 130000, 12, nil)
	s.Require().NoError(err)
	s.Equal(StatusDocumentsRequired, outcome.Status)
	s.Equal(ReasonSalaryProofNeeded, outcome.Reason)
	s.False(outcome.Approved())
}

func (s *EvaluateSuite) TestAboveLimitWithSufficientIncome() {
	outcome, err := Evaluate(s.policy, profile(820, 75000), 130000, 12, income(60000))
	s.Require().NoError(err)
	s.Equal(StatusApproved, outcome.Status)
	s.Require().NotNil(outcome.Terms)
	s.Equal(float64(10), outcome.Terms.InterestRatePct)
	s.Equal(int64(11429), outcome.Terms.EMI)
}

func (s *EvaluateSuite) TestAboveLimitWithInsufficientIncome() {
	// affordable = 20000 * 0.5 = 10000, below the 11429 installment
	outcome, err := Evaluate(s.policy, profile(820, 75000), 130000, 12, income(20000))
	s.Require().NoError(err)
	s.Equal(StatusRejected, outcome.Status)
	s.Equal(ReasonInsufficientIncome, outcome.Reason)
}

func (s *EvaluateSuite) TestEMIExactlyAtAffordabilityBound() {
	// installment 11429 == 22858 * 0.5
	outcome, err := Evaluate(s.policy, profile(820, 75000), 130000, 12, income(22858))
	s.Require().NoError(err)
	s.Equal(StatusApproved, outcome.Status)
}

func (s *EvaluateSuite) TestRateTierSelection() {
	tests := []struct {
		score    int
		wantRate float64
	}{
		{820, 10},
		{800, 10},
		{799, 12},
		{750, 12},
		{749, 14},
		{700, 14},
		{699, 16},
		{680, 16},
	}
	for _, tt := range tests {
		outcome, err := Evaluate(s.policy, profile(tt.score, 50000), 10000, 6, nil)
		s.Require().NoError(err)
		s.Require().NotNil(outcome.Terms, "score %d", tt.score)
		s.Equal(tt.wantRate, outcome.Terms.InterestRatePct, "score %d", tt.score)
	}
}

// Scores below every tier floor never reach rate selection through Evaluate,
// but RateFor itself falls back to the most expensive tier.
func (s *EvaluateSuite) TestRateForBelowAllTiers() {
	s.Equal(float64(16), s.policy.RateFor(650))
}

func (s *EvaluateSuite) TestInvalidTenureSurfacesError() {
	_, err := Evaluate(s.policy, profile(780, 50000), 10000, 7, nil)
	s.Error(err)
}

// Evaluation is pure: the same inputs always produce the same outcome.
func (s *EvaluateSuite) TestDeterministic() {
	p := profile(780, 50000)
	first, err := Evaluate(s.policy, p, 120000, 24, income(40000))
	s.Require().NoError(err)
	second, err := Evaluate(s.policy, p, 120000, 24, income(40000))
	s.Require().NoError(err)
	s.Equal(first, second)
}
