// Package sanction issues and serves binding loan-offer records. A sanction
// freezes approved terms; it is immutable once created and unique per
// session.
package sanction

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sanction is the binding record that a loan offer was approved and its terms
// locked.
type Sanction struct {
	ID              string    `json:"sanction_id"`
	SessionID       string    `json:"session_id"`
	CustomerID      string    `json:"customer_id"`
	Amount          int64     `json:"amount"`
	TenureMonths    int       `json:"tenure_months"`
	InterestRatePct float64   `json:"interest_rate_pct"`
	EMI             int64     `json:"emi"`
	IssuedAt        time.Time `json:"issued_at"`
}

// NewID mints a sanction identifier. IDs are never reused.
func NewID() string {
	return "sanc_" + uuid.NewString()
}

// Error Contract:
// - Create returns sentinel.ErrConflict (wrapped) when the session already
//   has a sanction; the caller re-reads to get the winner.
// - Find methods return sentinel.ErrNotFound (wrapped) for unknown ids.

// Store persists sanctions. Implementations must enforce at most one sanction
// per session.
type Store interface {
	Create(ctx context.Context, s *Sanction) error
	FindByID(ctx context.Context, id string) (*Sanction, error)
	FindBySessionID(ctx context.Context, sessionID string) (*Sanction, error)
}
