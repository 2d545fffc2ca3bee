package engine

import (
	"context"

	"loanflow/internal/audit"
	"loanflow/internal/ledger"
	"loanflow/internal/session"
	"loanflow/internal/underwriting"
	dErrors "loanflow/pkg/domain-errors"
	"loanflow/pkg/requestcontext"
)

// CheckoutRequest is the one-shot checkout flow: identify the shopper,
// evaluate, and on approval sanction the loan and record the order.
type CheckoutRequest struct {
	Phone        string
	SessionID    string // optional: reuse a session started earlier
	TotalAmount  int64
	TenureMonths int
	Items        []ledger.Item
}

// CheckoutResult is the combined outcome payload. Rejections and
// documents-required are legitimate business outcomes, not errors.
type CheckoutResult struct {
	SessionID          string
	Approved           bool
	Reason             string
	RequiresSalarySlip bool
	OrderID            string
	SanctionID         string
	Terms              *underwriting.Terms
}

// CheckoutFinance drives the original point-of-sale flow end to end: resolve
// or create the session, evaluate, and on approval issue the sanction and
// append the financed order to the ledger. Re-running checkout on an
// already-sanctioned session returns the existing sanction without recording
// a second order.
func (s *Service) CheckoutFinance(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	customer, err := s.lookupCustomer(ctx, "", req.Phone)
	if err != nil {
		return nil, err
	}

	sess, err := s.resolveCheckoutSession(ctx, customer.CustomerID, req)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sess.ID)
	defer unlock()

	// Re-read under the lock; resolve ran outside it.
	sess, err = s.sessions.FindByID(ctx, sess.ID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	// Refresh the requested terms before evaluating; carts change between
	// start-session and checkout.
	if (sess.Status == session.StatusCreated || sess.Status == session.StatusDocumentsRequired) &&
		(sess.RequestedAmount != req.TotalAmount || sess.TenureMonths != req.TenureMonths) {
		sess.RequestedAmount = req.TotalAmount
		sess.TenureMonths = req.TenureMonths
		if err := s.sessions.Update(ctx, sess); err != nil {
			return nil, translateStoreErr(err)
		}
	}

	alreadySanctioned := sess.Status == session.StatusSanctioned

	sess, err = s.evaluateLocked(ctx, sess)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{SessionID: sess.ID}
	decision := sess.LastDecision
	if decision == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "evaluated session has no decision")
	}

	switch decision.Status {
	case underwriting.StatusApproved:
		sanc, err := s.issueSanctionLocked(ctx, sess)
		if err != nil {
			return nil, err
		}
		result.Approved = true
		result.SanctionID = sanc.ID
		result.Terms = decision.Terms
		if !alreadySanctioned {
			if err := s.recordOrder(ctx, sess, result, req.Items); err != nil {
				return nil, err
			}
		}
	case underwriting.StatusDocumentsRequired:
		result.Reason = decision.Reason
		result.RequiresSalarySlip = true
	default:
		result.Reason = decision.Reason
	}
	return result, nil
}

// resolveCheckoutSession reuses the caller's session or starts a fresh one.
func (s *Service) resolveCheckoutSession(ctx context.Context, customerID string, req CheckoutRequest) (*session.FinancingSession, error) {
	if req.SessionID == "" {
		started, err := s.StartSession(ctx, StartRequest{
			CustomerID:      customerID,
			RequestedAmount: req.TotalAmount,
			TenureMonths:    req.TenureMonths,
		})
		if err != nil {
			return nil, err
		}
		return started.Session, nil
	}

	sess, err := s.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if sess.CustomerID != customerID {
		return nil, dErrors.New(dErrors.CodeInvalidState, "session belongs to a different customer")
	}
	return sess, nil
}

func (s *Service) recordOrder(ctx context.Context, sess *session.FinancingSession, result *CheckoutResult, items []ledger.Item) error {
	order := ledger.Order{
		OrderID:     ledger.NewOrderID(),
		CustomerID:  sess.CustomerID,
		Items:       items,
		TotalAmount: sess.RequestedAmount,
		Financing: &ledger.FinancingDetails{
			LoanAmount:   result.Terms.Amount,
			TenureMonths: result.Terms.TenureMonths,
			InterestPct:  result.Terms.InterestRatePct,
			EMI:          result.Terms.EMI,
			SanctionID:   result.SanctionID,
		},
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.orders.Append(ctx, order); err != nil {
		return translateStoreErr(err)
	}
	result.OrderID = order.OrderID

	s.app.IncOrdersRecorded()
	s.emit(ctx, audit.Event{
		SessionID:  sess.ID,
		CustomerID: sess.CustomerID,
		Action:     audit.ActionOrderRecorded,
		Decision:   order.OrderID,
	})
	return nil
}
