// Package metrics defines all custom Prometheus metrics for the noty
// back-office gateway. It is the single source of truth for metric names,
// labels, and help strings; collectors register themselves on import through
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "noty"

// ── Backend round-trips ───────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the billing backend.
// Labels:
//   - op: facade operation, e.g. "payments.charge"
//   - outcome: "ok", "api_error", "unauthorized", "transport_error", "bad_envelope"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of billing-backend calls, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// BackendRequestDuration measures the latency of a single backend round-trip.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of billing-backend calls from send to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)

// ── Sessions ──────────────────────────────────────────────────────────────────

// SessionPurgesTotal counts tokens purged by the global 401 policy.
var SessionPurgesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_purges_total",
		Help:      "Total number of sessions invalidated after a backend 401.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of operator login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDenialsTotal counts requests stopped by the route guard.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests denied by the route guard, by reason.",
	},
	[]string{"reason"},
)
