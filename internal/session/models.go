// Package session holds the durable record of an in-progress financing
// request and its state machine.
package session

import (
	"time"

	"github.com/google/uuid"

	"loanflow/internal/underwriting"
)

// Status is the session state machine position.
//
//	CREATED → EVALUATING → {APPROVED, DOCUMENTS_REQUIRED, REJECTED}
//	DOCUMENTS_REQUIRED → EVALUATING (proof submitted, loops back)
//	APPROVED → SANCTIONED (terminal)
//	REJECTED (terminal)
type Status string

const (
	StatusCreated           Status = "CREATED"
	StatusEvaluating        Status = "EVALUATING"
	StatusApproved          Status = "APPROVED"
	StatusDocumentsRequired Status = "DOCUMENTS_REQUIRED"
	StatusRejected          Status = "REJECTED"
	StatusSanctioned        Status = "SANCTIONED"
)

// Terminal reports whether the state accepts no further mutation.
func (s Status) Terminal() bool {
	return s == StatusSanctioned || s == StatusRejected
}

// FinancingSession is one shopper's financing request. Mutated only by the
// engine; never deleted, retained as an audit trail after terminal states.
type FinancingSession struct {
	ID                    string
	CustomerID            string
	RequestedAmount       int64
	TenureMonths          int
	Status                Status
	DeclaredMonthlyIncome *int64
	ProofRef              string
	LastDecision          *underwriting.Outcome
	Version               int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewID mints an opaque session token.
func NewID() string {
	return "sess_" + uuid.NewString()
}

// New creates a CREATED session for the given request.
func New(customerID string, requestedAmount int64, tenureMonths int, now time.Time) *FinancingSession {
	return &FinancingSession{
		ID:              NewID(),
		CustomerID:      customerID,
		RequestedAmount: requestedAmount,
		TenureMonths:    tenureMonths,
		Status:          StatusCreated,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
