package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes recorded on SubmissionsTotal.
const (
	OutcomeAccepted       = "accepted"
	OutcomeInvalid        = "invalid"
	OutcomeNotConfigured  = "not_configured"
	OutcomeDispatchFailed = "dispatch_failed"
	OutcomeRateLimited    = "rate_limited"
	OutcomeError          = "error"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// SubmissionsTotal counts form submissions by outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Number of form submissions by form and outcome",
		},
		[]string{"form", "outcome"},
	)

	// EmailDispatch counts notification emails handed to a provider
	EmailDispatch = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_email_dispatch_total",
			Help: "Number of notification emails sent by provider and status",
		},
		[]string{"provider", "status"},
	)

	// RateLimited counts submissions refused by the rate limiter
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_rate_limited_total",
			Help: "Number of submissions rejected by the rate limiter",
		},
		[]string{"form"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intake_active_connections",
			Help: "Number of active connections",
		},
	)
)
