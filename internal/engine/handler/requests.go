package handler

import (
	"encoding/base64"
	"strings"

	"loanflow/internal/documents"
	"loanflow/internal/emi"
	"loanflow/internal/ledger"
	dErrors "loanflow/pkg/domain-errors"
)

// StartSessionRequest is the HTTP request body for POST /start-session.
type StartSessionRequest struct {
	Phone           string `json:"phone"`
	CustomerID      string `json:"customer_id"`
	RequestedAmount int64  `json:"requested_amount"`
	Tenure          int    `json:"tenure"`
}

// Validate implements httputil.Validatable.
func (r *StartSessionRequest) Validate() error {
	r.Phone = strings.TrimSpace(r.Phone)
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	if r.Phone == "" && r.CustomerID == "" {
		return dErrors.New(dErrors.CodeValidation, "phone or customer_id is required")
	}
	if r.RequestedAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "requested_amount must be positive")
	}
	if !emi.ValidTenure(r.Tenure) {
		return dErrors.New(dErrors.CodeValidation, "tenure must be one of the offered durations")
	}
	return nil
}

// CheckoutFinanceRequest is the HTTP request body for POST /checkout-finance.
type CheckoutFinanceRequest struct {
	Phone       string      `json:"phone"`
	SessionID   string      `json:"session_id,omitempty"`
	TotalAmount int64       `json:"total_amount"`
	Tenure      int         `json:"tenure"`
	Products    []OrderItem `json:"products,omitempty"`
}

// OrderItem is one purchased product line in a checkout request.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Validate implements httputil.Validatable.
func (r *CheckoutFinanceRequest) Validate() error {
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	}
	if r.TotalAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "total_amount must be positive")
	}
	if r.Tenure == 0 {
		r.Tenure = 12
	}
	if !emi.ValidTenure(r.Tenure) {
		return dErrors.New(dErrors.CodeValidation, "tenure must be one of the offered durations")
	}
	return nil
}

// LedgerItems converts the request products into ledger items.
func (r *CheckoutFinanceRequest) LedgerItems() []ledger.Item {
	items := make([]ledger.Item, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, ledger.Item{
			ProductID: p.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  p.Quantity,
		})
	}
	return items
}

// IncomeProofRequest is the HTTP request body for POST
// /sessions/{id}/income-proof. The artifact travels base64-encoded.
type IncomeProofRequest struct {
	DeclaredMonthlyIncome int64  `json:"declared_monthly_income"`
	ContentType           string `json:"content_type"`
	Artifact              string `json:"artifact"`

	parsedArtifact documents.ProofArtifact
}

// Validate implements httputil.Validatable.
func (r *IncomeProofRequest) Validate() error {
	if r.DeclaredMonthlyIncome <= 0 {
		return dErrors.New(dErrors.CodeValidation, "declared_monthly_income must be positive")
	}
	data, err := base64.StdEncoding.DecodeString(r.Artifact)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "artifact must be base64 encoded")
	}
	r.parsedArtifact = documents.ProofArtifact{
		ContentType: strings.TrimSpace(r.ContentType),
		Data:        data,
	}
	return r.parsedArtifact.Validate()
}

// ParsedArtifact returns the decoded, validated proof artifact.
func (r *IncomeProofRequest) ParsedArtifact() documents.ProofArtifact {
	return r.parsedArtifact
}
