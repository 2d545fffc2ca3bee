// Package directory is the engine's view of the external customer directory.
// Lookup is a simple synchronous key-value call; NotFound is its only
// interesting failure.
package directory

import (
	"context"

	"loanflow/internal/underwriting"
)

// Customer is a directory record: identity plus the risk attributes
// underwriting reads.
type Customer struct {
	CustomerID       string
	Name             string
	Phone            string
	City             string
	CreditScore      int
	PreApprovedLimit int64
	MonthlyIncome    int64
	CurrentLoan      int64
}

// RiskProfile projects the directory record into the evaluator's input shape.
// The directory's stored income is deliberately NOT passed as declared income:
// underwriting only trusts income backed by an uploaded proof.
func (c Customer) RiskProfile() underwriting.RiskProfile {
	return underwriting.RiskProfile{
		CustomerID:          c.CustomerID,
		CreditScore:         c.CreditScore,
		PreApprovedLimit:    c.PreApprovedLimit,
		ExistingLoanBalance: c.CurrentLoan,
	}
}

// Directory looks up customers by id or phone.
type Directory interface {
	FindByID(ctx context.Context, customerID string) (Customer, error)
	FindByPhone(ctx context.Context, phone string) (Customer, error)
}
