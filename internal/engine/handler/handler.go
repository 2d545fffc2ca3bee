package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"loanflow/internal/documents"
	"loanflow/internal/engine"
	"loanflow/internal/sanction"
	"loanflow/internal/session"
	dErrors "loanflow/pkg/domain-errors"
	"loanflow/pkg/platform/httputil"
	"loanflow/pkg/requestcontext"
)

// Service defines the interface for origination operations.
type Service interface {
	StartSession(ctx context.Context, req engine.StartRequest) (*engine.StartResult, error)
	GetSession(ctx context.Context, sessionID string) (*session.FinancingSession, error)
	Evaluate(ctx context.Context, sessionID string) (*session.FinancingSession, error)
	SubmitIncomeProof(ctx context.Context, sessionID string, declaredMonthlyIncome int64, artifact documents.ProofArtifact) (*session.FinancingSession, error)
	IssueSanction(ctx context.Context, sessionID string) (*sanction.Sanction, error)
	CheckoutFinance(ctx context.Context, req engine.CheckoutRequest) (*engine.CheckoutResult, error)
}

// Sanctions defines the sanction read operations the handler serves.
type Sanctions interface {
	Get(ctx context.Context, sanctionID string) (*sanction.Sanction, error)
	GetBySessionID(ctx context.Context, sessionID string) (*sanction.Sanction, error)
}

// Handler wires the loanflow endpoints to the origination engine.
type Handler struct {
	service   Service
	sanctions Sanctions
	logger    *slog.Logger
}

// New constructs a loanflow handler with its dependencies.
func New(service Service, sanctions Sanctions, logger *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		sanctions: sanctions,
		logger:    logger,
	}
}

// Register mounts the loanflow endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/loanflow/start-session", h.HandleStartSession)
	r.Post("/api/loanflow/checkout-finance", h.HandleCheckoutFinance)
	r.Post("/api/loanflow/sessions/{sessionID}/evaluate", h.HandleEvaluate)
	r.Post("/api/loanflow/sessions/{sessionID}/income-proof", h.HandleIncomeProof)
	r.Post("/api/loanflow/sessions/{sessionID}/sanction", h.HandleIssueSanction)
	r.Get("/api/loanflow/sessions/{sessionID}", h.HandleGetSession)
	r.Get("/api/loanflow/sanctions/{sanctionID}", h.HandleGetSanction)
	r.Get("/api/loanflow/sanctions/{sanctionID}/letter", h.HandleSanctionLetter)
}

// HandleStartSession handles POST /api/loanflow/start-session.
func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[StartSessionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.StartSession(ctx, engine.StartRequest{
		CustomerID:      req.CustomerID,
		Phone:           req.Phone,
		RequestedAmount: req.RequestedAmount,
		TenureMonths:    req.Tenure,
	})
	if err != nil {
		h.logError(ctx, "start session failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, StartSessionResponse{
		SessionID:        result.Session.ID,
		Status:           string(result.Session.Status),
		CreditScore:      result.CreditScore,
		PreApprovedLimit: result.PreApprovedLimit,
	})
}

// HandleEvaluate handles POST /api/loanflow/sessions/{sessionID}/evaluate.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := chi.URLParam(r, "sessionID")
	start := time.Now()

	sess, err := h.service.Evaluate(ctx, sessionID)
	if err != nil {
		h.logError(ctx, "evaluation failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "session evaluated",
		"request_id", requestID,
		"session_id", sessionID,
		"status", sess.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromSession(sess, h.sanctionFor(ctx, sess)))
}

// HandleIncomeProof handles POST /api/loanflow/sessions/{sessionID}/income-proof.
func (h *Handler) HandleIncomeProof(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	req, ok := httputil.DecodeAndPrepare[IncomeProofRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	sess, err := h.service.SubmitIncomeProof(ctx, sessionID, req.DeclaredMonthlyIncome, req.ParsedArtifact())
	if err != nil {
		h.logError(ctx, "income proof submission failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSession(sess, h.sanctionFor(ctx, sess)))
}

// HandleIssueSanction handles POST /api/loanflow/sessions/{sessionID}/sanction.
func (h *Handler) HandleIssueSanction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := chi.URLParam(r, "sessionID")

	sanc, err := h.service.IssueSanction(ctx, sessionID)
	if err != nil {
		h.logError(ctx, "sanction issuance failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSanction(sanc))
}

// HandleGetSession handles GET /api/loanflow/sessions/{sessionID}.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.service.GetSession(ctx, sessionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSessionSnapshot(sess))
}

// HandleCheckoutFinance handles POST /api/loanflow/checkout-finance.
func (h *Handler) HandleCheckoutFinance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CheckoutFinanceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CheckoutFinance(ctx, engine.CheckoutRequest{
		Phone:        req.Phone,
		SessionID:    req.SessionID,
		TotalAmount:  req.TotalAmount,
		TenureMonths: req.Tenure,
		Items:        req.LedgerItems(),
	})
	if err != nil {
		h.logError(ctx, "checkout finance failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checkout finance completed",
		"request_id", requestID,
		"session_id", result.SessionID,
		"approved", result.Approved,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromCheckoutResult(result))
}

// HandleGetSanction handles GET /api/loanflow/sanctions/{sanctionID}.
func (h *Handler) HandleGetSanction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sanctionID := chi.URLParam(r, "sanctionID")

	sanc, err := h.sanctions.Get(ctx, sanctionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromSanction(sanc))
}

// HandleSanctionLetter handles GET /api/loanflow/sanctions/{sanctionID}/letter.
func (h *Handler) HandleSanctionLetter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sanctionID := chi.URLParam(r, "sanctionID")

	sanc, err := h.sanctions.Get(ctx, sanctionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sanction-`+sanc.ID+`.txt"`)
	_, _ = w.Write([]byte(sanction.RenderLetter(sanc, "")))
}

// sanctionFor enriches evaluation responses with the issued sanction once the
// session is sanctioned. Best-effort: a lookup failure leaves the fields
// empty rather than failing the response.
func (h *Handler) sanctionFor(ctx context.Context, sess *session.FinancingSession) *sanction.Sanction {
	if sess.Status != session.StatusSanctioned {
		return nil
	}
	sanc, err := h.sanctions.GetBySessionID(ctx, sess.ID)
	if err != nil {
		return nil
	}
	return sanc
}

func (h *Handler) logError(ctx context.Context, msg, requestID string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}
