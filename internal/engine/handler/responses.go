package handler

import (
	"time"

	"loanflow/internal/engine"
	"loanflow/internal/sanction"
	"loanflow/internal/session"
	"loanflow/internal/underwriting"
)

// StartSessionResponse is the HTTP response for POST /start-session.
type StartSessionResponse struct {
	SessionID        string `json:"session_id"`
	Status           string `json:"status"`
	CreditScore      int    `json:"credit_score"`
	PreApprovedLimit int64  `json:"pre_approved_limit"`
}

// TermsResponse carries approved loan terms.
type TermsResponse struct {
	Amount          int64   `json:"amount"`
	TenureMonths    int     `json:"tenure_months"`
	InterestRatePct float64 `json:"interest_rate_pct"`
	EMI             int64   `json:"emi"`
}

// OutcomeResponse is the evaluation outcome shape shared by the evaluate and
// income-proof endpoints. Sanction fields appear once the session is
// sanctioned.
type OutcomeResponse struct {
	SessionID          string         `json:"session_id"`
	Status             string         `json:"status"`
	Approved           bool           `json:"approved"`
	Reason             string         `json:"reason,omitempty"`
	RequiresSalarySlip bool           `json:"requires_salary_slip,omitempty"`
	Terms              *TermsResponse `json:"terms,omitempty"`
	SanctionID         string         `json:"sanction_id,omitempty"`
	DownloadURL        string         `json:"download_url,omitempty"`
}

// SessionResponse is the read-only session snapshot for GET /sessions/{id}.
type SessionResponse struct {
	SessionID             string         `json:"session_id"`
	CustomerID            string         `json:"customer_id"`
	RequestedAmount       int64          `json:"requested_amount"`
	TenureMonths          int            `json:"tenure_months"`
	Status                string         `json:"status"`
	DeclaredMonthlyIncome *int64         `json:"declared_monthly_income,omitempty"`
	LastDecision          *OutcomeDetail `json:"last_decision,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

// OutcomeDetail is the stored decision embedded in a session snapshot.
type OutcomeDetail struct {
	Status string         `json:"status"`
	Reason string         `json:"reason,omitempty"`
	Terms  *TermsResponse `json:"terms,omitempty"`
}

// CheckoutFinanceResponse mirrors the original checkout payload.
type CheckoutFinanceResponse struct {
	Success            bool           `json:"success"`
	Approved           bool           `json:"approved"`
	Reason             string         `json:"reason,omitempty"`
	RequiresSalarySlip bool           `json:"requires_salary_slip,omitempty"`
	SessionID          string         `json:"session_id"`
	OrderID            string         `json:"order_id,omitempty"`
	SanctionID         string         `json:"sanction_id,omitempty"`
	DownloadURL        string         `json:"download_url,omitempty"`
	FinancingDetails   *TermsResponse `json:"financing_details,omitempty"`
}

// SanctionResponse is the sanction document for GET /sanctions/{id}.
type SanctionResponse struct {
	SanctionID      string    `json:"sanction_id"`
	SessionID       string    `json:"session_id"`
	CustomerID      string    `json:"customer_id"`
	Amount          int64     `json:"amount"`
	TenureMonths    int       `json:"tenure_months"`
	InterestRatePct float64   `json:"interest_rate_pct"`
	EMI             int64     `json:"emi"`
	IssuedAt        time.Time `json:"issued_at"`
	DownloadURL     string    `json:"download_url"`
}

func termsResponse(t *underwriting.Terms) *TermsResponse {
	if t == nil {
		return nil
	}
	return &TermsResponse{
		Amount:          t.Amount,
		TenureMonths:    t.TenureMonths,
		InterestRatePct: t.InterestRatePct,
		EMI:             t.EMI,
	}
}

func letterURL(sanctionID string) string {
	return "/api/loanflow/sanctions/" + sanctionID + "/letter"
}

// FromSession converts an evaluated session (plus its sanction, when one
// exists) into the outcome response.
func FromSession(sess *session.FinancingSession, sanc *sanction.Sanction) *OutcomeResponse {
	resp := &OutcomeResponse{
		SessionID: sess.ID,
		Status:    string(sess.Status),
	}
	if d := sess.LastDecision; d != nil {
		resp.Approved = d.Approved()
		resp.Reason = d.Reason
		resp.RequiresSalarySlip = d.Status == underwriting.StatusDocumentsRequired
		resp.Terms = termsResponse(d.Terms)
	}
	if sanc != nil {
		resp.SanctionID = sanc.ID
		resp.DownloadURL = letterURL(sanc.ID)
	}
	return resp
}

// FromSessionSnapshot converts a session into the read-only snapshot shape.
func FromSessionSnapshot(sess *session.FinancingSession) *SessionResponse {
	resp := &SessionResponse{
		SessionID:             sess.ID,
		CustomerID:            sess.CustomerID,
		RequestedAmount:       sess.RequestedAmount,
		TenureMonths:          sess.TenureMonths,
		Status:                string(sess.Status),
		DeclaredMonthlyIncome: sess.DeclaredMonthlyIncome,
		CreatedAt:             sess.CreatedAt,
		UpdatedAt:             sess.UpdatedAt,
	}
	if d := sess.LastDecision; d != nil {
		resp.LastDecision = &OutcomeDetail{
			Status: string(d.Status),
			Reason: d.Reason,
			Terms:  termsResponse(d.Terms),
		}
	}
	return resp
}

// FromCheckoutResult converts the engine's combined checkout outcome.
func FromCheckoutResult(result *engine.CheckoutResult) *CheckoutFinanceResponse {
	resp := &CheckoutFinanceResponse{
		Success:            true,
		Approved:           result.Approved,
		Reason:             result.Reason,
		RequiresSalarySlip: result.RequiresSalarySlip,
		SessionID:          result.SessionID,
		OrderID:            result.OrderID,
		SanctionID:         result.SanctionID,
		FinancingDetails:   termsResponse(result.Terms),
	}
	if result.SanctionID != "" {
		resp.DownloadURL = letterURL(result.SanctionID)
	}
	return resp
}

// FromSanction converts a sanction record into its document response.
func FromSanction(sanc *sanction.Sanction) *SanctionResponse {
	return &SanctionResponse{
		SanctionID:      sanc.ID,
		SessionID:       sanc.SessionID,
		CustomerID:      sanc.CustomerID,
		Amount:          sanc.Amount,
		TenureMonths:    sanc.TenureMonths,
		InterestRatePct: sanc.InterestRatePct,
		EMI:             sanc.EMI,
		IssuedAt:        sanc.IssuedAt,
		DownloadURL:     letterURL(sanc.ID),
	}
}
