package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Registration metrics
	RegistrationsTotal   *prometheus.CounterVec
	RegisteredTeams      prometheus.Gauge
	DraftSessionsActive  prometheus.Gauge
	ConfirmationsTotal   *prometheus.CounterVec

	// Roster metrics
	RosterRefreshesTotal *prometheus.CounterVec
	RosterExportsTotal   *prometheus.CounterVec

	// Auth metrics
	AuthEventsTotal *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "hackathon"
	}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		RegistrationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registration",
				Name:      "submissions_total",
				Help:      "Total number of registration submissions",
			},
			[]string{"category", "status"}, // status: accepted, rejected, failed
		),
		RegisteredTeams: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "registration",
				Name:      "teams",
				Help:      "Number of registered teams",
			},
		),
		DraftSessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "registration",
				Name:      "draft_sessions_active",
				Help:      "Number of active draft sessions",
			},
		),
		ConfirmationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registration",
				Name:      "confirmation_emails_total",
				Help:      "Total number of confirmation email attempts",
			},
			[]string{"status"}, // sent, failed, skipped
		),

		RosterRefreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "roster",
				Name:      "refreshes_total",
				Help:      "Total number of roster refreshes",
			},
			[]string{"status"}, // ok, error
		),
		RosterExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "roster",
				Name:      "exports_total",
				Help:      "Total number of CSV exports",
			},
			[]string{"status"}, // ok, empty, error
		),

		AuthEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "events_total",
				Help:      "Total number of auth events",
			},
			[]string{"event"}, // sign_in, sign_in_failed, sign_out
		),
		ActiveSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "active_sessions",
				Help:      "Number of active admin sessions",
			},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRegistration records a registration submission outcome.
func (m *Metrics) RecordRegistration(category, status string) {
	if category == "" {
		category = "unknown"
	}
	m.RegistrationsTotal.WithLabelValues(category, status).Inc()
}

// RecordConfirmation records a confirmation email attempt.
func (m *Metrics) RecordConfirmation(status string) {
	m.ConfirmationsTotal.WithLabelValues(status).Inc()
}

// RecordRosterRefresh records a roster refresh.
func (m *Metrics) RecordRosterRefresh(status string) {
	m.RosterRefreshesTotal.WithLabelValues(status).Inc()
}

// RecordRosterExport records a CSV export.
func (m *Metrics) RecordRosterExport(status string) {
	m.RosterExportsTotal.WithLabelValues(status).Inc()
}

// RecordAuthEvent records an auth event.
func (m *Metrics) RecordAuthEvent(event string) {
	m.AuthEventsTotal.WithLabelValues(event).Inc()
}
