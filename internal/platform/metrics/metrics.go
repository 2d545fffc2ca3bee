package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics. Feature-specific metrics
// live next to their feature (see internal/engine/metrics).
type Metrics struct {
	SessionsStarted prometheus.Counter
	SanctionsIssued prometheus.Counter
	OrdersRecorded  prometheus.Counter
	RequestLatency  *prometheus.HistogramVec
}

// New creates and registers all process-level metrics.
func New() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanflow_sessions_started_total",
			Help: "Total number of financing sessions started",
		}),
		SanctionsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanflow_sanctions_issued_total",
			Help: "Total number of sanctions issued",
		}),
		OrdersRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanflow_orders_recorded_total",
			Help: "Total number of financed orders appended to the ledger",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loanflow_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
	}
}

// IncSessionsStarted increments the sessions started counter by 1.
func (m *Metrics) IncSessionsStarted() {
	if m != nil {
		m.SessionsStarted.Inc()
	}
}

// IncSanctionsIssued increments the sanctions issued counter by 1.
func (m *Metrics) IncSanctionsIssued() {
	if m != nil {
		m.SanctionsIssued.Inc()
	}
}

// IncOrdersRecorded increments the orders recorded counter by 1.
func (m *Metrics) IncOrdersRecorded() {
	if m != nil {
		m.OrdersRecorded.Inc()
	}
}

// ObserveRequestLatency records one request's duration under its route
// pattern.
func (m *Metrics) ObserveRequestLatency(route string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}
