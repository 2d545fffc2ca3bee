// Package ledger records completed purchases and their financing terms. Pure
// append, no decision logic.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is one purchased product line.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// FinancingDetails are the final loan terms attached to an order.
type FinancingDetails struct {
	LoanAmount   int64   `json:"loan_amount"`
	TenureMonths int     `json:"tenure_months"`
	InterestPct  float64 `json:"interest_rate_pct"`
	EMI          int64   `json:"emi"`
	SanctionID   string  `json:"sanction_id"`
}

// Order is an append-only purchase record.
type Order struct {
	OrderID     string
	CustomerID  string
	Items       []Item
	TotalAmount int64
	Financing   *FinancingDetails
	CreatedAt   time.Time
}

// NewOrderID mints an order identifier.
func NewOrderID() string {
	return "ord_" + uuid.NewString()
}

// Ledger appends orders and lists them per customer.
type Ledger interface {
	Append(ctx context.Context, order Order) error
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
}

// InMemoryLedger keeps orders in memory for dev and tests.
type InMemoryLedger struct {
	mu     sync.RWMutex
	orders map[string][]Order
}

// NewInMemoryLedger constructs an empty ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{orders: make(map[string][]Order)}
}

func (l *InMemoryLedger) Append(_ context.Context, order Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders[order.CustomerID] = append(l.orders[order.CustomerID], order)
	return nil
}

func (l *InMemoryLedger) ListByCustomer(_ context.Context, customerID string) ([]Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Order{}, l.orders[customerID]...), nil
}
