package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanflow/pkg/platform/sentinel"
)

func TestFindByIDAndPhone(t *testing.T) {
	dir := NewInMemoryDirectory(Seed()...)
	ctx := context.Background()

	byID, err := dir.FindByID(ctx, "CUST001")
	require.NoError(t, err)
	assert.Equal(t, "Rajesh Kumar", byID.Name)

	byPhone, err := dir.FindByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "CUST001", byPhone.CustomerID)

	_, err = dir.FindByID(ctx, "CUST999")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	_, err = dir.FindByPhone(ctx, "0000000000")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

// The projection must not leak the directory's self-reported income into the
// evaluator; only proof-backed income counts as declared.
func TestRiskProfileOmitsDirectoryIncome(t *testing.T) {
	c := Customer{
		CustomerID:       "CUST001",
		CreditScore:      780,
		PreApprovedLimit: 50000,
		MonthlyIncome:    45000,
		CurrentLoan:      10000,
	}
	profile := c.RiskProfile()
	assert.Equal(t, 780, profile.CreditScore)
	assert.Equal(t, int64(50000), profile.PreApprovedLimit)
	assert.Equal(t, int64(10000), profile.ExistingLoanBalance)
	assert.Nil(t, profile.MonthlyIncome)
}
