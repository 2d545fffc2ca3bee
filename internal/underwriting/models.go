package underwriting

// RiskProfile is the customer directory's view of a borrower. Read-only to
// the engine; treated as immutable for the duration of one evaluation.
type RiskProfile struct {
	CustomerID          string
	CreditScore         int
	PreApprovedLimit    int64
	MonthlyIncome       *int64
	ExistingLoanBalance int64
}

// Status is the outcome variant of one policy evaluation.
type Status string

const (
	StatusApproved          Status = "approved"
	StatusDocumentsRequired Status = "documents_required"
	StatusRejected          Status = "rejected"
)

// Terms carries the frozen loan terms of an approval.
type Terms struct {
	Amount          int64   `json:"amount"`
	TenureMonths    int     `json:"tenure_months"`
	InterestRatePct float64 `json:"interest_rate_pct"`
	EMI             int64   `json:"emi"`
}

// Outcome is the result of one policy evaluation. Exactly one variant applies:
// approvals carry Terms, the other two carry only a reason.
type Outcome struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	Terms  *Terms `json:"terms,omitempty"`
}

// Approved reports whether the outcome is an approval.
func (o Outcome) Approved() bool {
	return o.Status == StatusApproved
}
