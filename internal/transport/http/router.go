// Package httptransport assembles the HTTP surface: middleware chain, the
// loanflow endpoints, and the operational routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loanflow/internal/engine/handler"
	"loanflow/internal/platform/metrics"
	"loanflow/internal/platform/middleware"
	"loanflow/pkg/platform/httputil"
)

const requestTimeout = 30 * time.Second

// NewRouter wires the public endpoints behind the shared middleware chain.
func NewRouter(h *handler.Handler, logger *slog.Logger, app *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Instrument(app))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Register(r)

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
