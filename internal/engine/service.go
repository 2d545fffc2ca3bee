// Package engine orchestrates the loan origination state machine: it creates
// sessions, invokes the underwriting evaluator, persists outcomes, and hands
// approved sessions to the sanction issuer. It is the only writer of session
// state.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"loanflow/internal/audit"
	"loanflow/internal/directory"
	"loanflow/internal/documents"
	"loanflow/internal/emi"
	"loanflow/internal/engine/metrics"
	"loanflow/internal/ledger"
	platformmetrics "loanflow/internal/platform/metrics"
	"loanflow/internal/sanction"
	"loanflow/internal/session"
	"loanflow/internal/underwriting"
	dErrors "loanflow/pkg/domain-errors"
	"loanflow/pkg/platform/sentinel"
	"loanflow/pkg/requestcontext"
)

// Service drives one financing request through its lifecycle. All mutations
// of a session funnel through here under a per-session lock.
type Service struct {
	policy    underwriting.Policy
	sessions  session.Store
	directory directory.Directory
	documents documents.Store
	sanctions *sanction.Service
	orders    ledger.Ledger
	audit     *audit.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	app       *platformmetrics.Metrics
	locks     *sessionLocks
}

// Deps bundles the engine's collaborators.
type Deps struct {
	Policy    underwriting.Policy
	Sessions  session.Store
	Directory directory.Directory
	Documents documents.Store
	Sanctions *sanction.Service
	Orders    ledger.Ledger
	Audit     *audit.Publisher
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	App       *platformmetrics.Metrics
}

// NewService constructs the origination engine.
func NewService(deps Deps) *Service {
	return &Service{
		policy:    deps.Policy,
		sessions:  deps.Sessions,
		directory: deps.Directory,
		documents: deps.Documents,
		sanctions: deps.Sanctions,
		orders:    deps.Orders,
		audit:     deps.Audit,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		app:       deps.App,
		locks:     newSessionLocks(),
	}
}

// StartRequest identifies the shopper and the requested terms. Exactly one of
// CustomerID or Phone must be set.
type StartRequest struct {
	CustomerID      string
	Phone           string
	RequestedAmount int64
	TenureMonths    int
}

// StartResult is the created session plus the directory facts the checkout UI
// shows up front.
type StartResult struct {
	Session          *session.FinancingSession
	CreditScore      int
	PreApprovedLimit int64
}

// StartSession creates a CREATED session for the customer, or fails with
// not_found when the directory has no matching record.
func (s *Service) StartSession(ctx context.Context, req StartRequest) (*StartResult, error) {
	if req.RequestedAmount <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "requested amount must be positive")
	}
	if !emi.ValidTenure(req.TenureMonths) {
		return nil, dErrors.New(dErrors.CodeValidation, "tenure is not an offered duration")
	}

	customer, err := s.lookupCustomer(ctx, req.CustomerID, req.Phone)
	if err != nil {
		return nil, err
	}

	sess := session.New(customer.CustomerID, req.RequestedAmount, req.TenureMonths, requestcontext.Now(ctx))
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, translateStoreErr(err)
	}

	s.app.IncSessionsStarted()
	s.emit(ctx, audit.Event{
		SessionID:  sess.ID,
		CustomerID: sess.CustomerID,
		Action:     audit.ActionSessionStarted,
	})
	s.logger.InfoContext(ctx, "financing session started",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", sess.ID,
		"customer_id", sess.CustomerID,
		"requested_amount", sess.RequestedAmount,
		"tenure_months", sess.TenureMonths,
	)

	return &StartResult{
		Session:          sess,
		CreditScore:      customer.CreditScore,
		PreApprovedLimit: customer.PreApprovedLimit,
	}, nil
}

// GetSession returns a read-only snapshot of the session.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*session.FinancingSession, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return sess, nil
}

// Evaluate runs the underwriting policy against the session's current facts
// and persists the outcome. Terminal sessions return the stored decision
// without re-running policy; the same applies to APPROVED sessions, whose
// decision stands until sanctioned.
func (s *Service) Evaluate(ctx context.Context, sessionID string) (*session.FinancingSession, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return s.evaluateLocked(ctx, sess)
}

// evaluateLocked assumes the caller holds the session lock.
func (s *Service) evaluateLocked(ctx context.Context, sess *session.FinancingSession) (*session.FinancingSession, error) {
	start := time.Now()

	switch sess.Status {
	case session.StatusSanctioned, session.StatusRejected, session.StatusApproved:
		// Idempotent read of the stored decision.
		return sess, nil
	case session.StatusCreated, session.StatusDocumentsRequired, session.StatusEvaluating:
		// StatusEvaluating means a previous run died mid-flight; resume.
	default:
		return nil, dErrors.New(dErrors.CodeInvalidState, "session does not permit evaluation")
	}

	if sess.Status != session.StatusEvaluating {
		sess.Status = session.StatusEvaluating
		if err := s.sessions.Update(ctx, sess); err != nil {
			return nil, translateStoreErr(err)
		}
	}

	ev, err := s.gatherEvidence(ctx, sess)
	if err != nil {
		return nil, err
	}

	outcome, err := underwriting.Evaluate(s.policy, ev.profile, sess.RequestedAmount, sess.TenureMonths, sess.DeclaredMonthlyIncome)
	if err != nil {
		return nil, err
	}

	sess.LastDecision = &outcome
	sess.Status = statusFor(outcome)
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, translateStoreErr(err)
	}

	s.metrics.IncrementOutcome(string(outcome.Status))
	s.metrics.ObserveEvaluateLatency(time.Since(start))
	s.emit(ctx, audit.Event{
		SessionID:  sess.ID,
		CustomerID: sess.CustomerID,
		Action:     audit.ActionSessionEvaluated,
		Decision:   string(outcome.Status),
		Reason:     outcome.Reason,
	})
	s.logger.InfoContext(ctx, "session evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", sess.ID,
		"status", sess.Status,
		"reason", outcome.Reason,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return sess, nil
}

// SubmitIncomeProof stores the proof artifact, records the declared income on
// the session, and immediately re-evaluates. Valid only from
// DOCUMENTS_REQUIRED.
func (s *Service) SubmitIncomeProof(ctx context.Context, sessionID string, declaredMonthlyIncome int64, artifact documents.ProofArtifact) (*session.FinancingSession, error) {
	if declaredMonthlyIncome <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "declared monthly income must be positive")
	}
	if err := artifact.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if sess.Status != session.StatusDocumentsRequired {
		return nil, dErrors.New(dErrors.CodeInvalidState, "session is not awaiting documents")
	}

	ref, err := s.documents.Put(ctx, sess.ID, artifact)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	sess.DeclaredMonthlyIncome = &declaredMonthlyIncome
	sess.ProofRef = ref
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, translateStoreErr(err)
	}

	s.emit(ctx, audit.Event{
		SessionID:  sess.ID,
		CustomerID: sess.CustomerID,
		Action:     audit.ActionIncomeProofSubmitted,
	})

	return s.evaluateLocked(ctx, sess)
}

// IssueSanction freezes the approved terms into a sanction and moves the
// session to SANCTIONED. Exactly-once per session: concurrent retries all
// receive the same sanction.
func (s *Service) IssueSanction(ctx context.Context, sessionID string) (*sanction.Sanction, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return s.issueSanctionLocked(ctx, sess)
}

func (s *Service) issueSanctionLocked(ctx context.Context, sess *session.FinancingSession) (*sanction.Sanction, error) {
	sanc, err := s.sanctions.Issue(ctx, sess)
	if err != nil {
		return nil, err
	}

	if sess.Status == session.StatusApproved {
		sess.Status = session.StatusSanctioned
		if err := s.sessions.Update(ctx, sess); err != nil {
			return nil, translateStoreErr(err)
		}
		s.app.IncSanctionsIssued()
		s.emit(ctx, audit.Event{
			SessionID:  sess.ID,
			CustomerID: sess.CustomerID,
			Action:     audit.ActionSanctionIssued,
			Decision:   sanc.ID,
		})
		s.logger.InfoContext(ctx, "sanction issued",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", sess.ID,
			"sanction_id", sanc.ID,
		)
	}

	return sanc, nil
}

func statusFor(outcome underwriting.Outcome) session.Status {
	switch outcome.Status {
	case underwriting.StatusApproved:
		return session.StatusApproved
	case underwriting.StatusDocumentsRequired:
		return session.StatusDocumentsRequired
	default:
		return session.StatusRejected
	}
}

func (s *Service) lookupCustomer(ctx context.Context, customerID, phone string) (directory.Customer, error) {
	var (
		customer directory.Customer
		err      error
	)
	switch {
	case customerID != "":
		customer, err = s.directory.FindByID(ctx, customerID)
	case phone != "":
		customer, err = s.directory.FindByPhone(ctx, phone)
	default:
		return directory.Customer{}, dErrors.New(dErrors.CodeValidation, "customer id or phone is required")
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return directory.Customer{}, dErrors.New(dErrors.CodeNotFound, "customer not found")
		}
		return directory.Customer{}, dErrors.New(dErrors.CodeUnavailable, "customer directory unavailable")
	}
	return customer, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"session_id", event.SessionID,
			"action", event.Action,
			"error", err,
		)
	}
}

// translateStoreErr converts sentinel store errors into domain errors without
// leaking infrastructure detail.
func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "session was modified concurrently, retry")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.New(dErrors.CodeUnavailable, "storage temporarily unavailable, try again")
	default:
		return err
	}
}
