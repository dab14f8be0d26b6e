// Package metrics defines and registers the custom Prometheus metrics of the
// clientes admin site. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; the HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clientes"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login form submissions.
// Label:
//   - result: "success", "invalid_credentials", "missing_fields" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests.
// Label:
//   - result: "success" or "error"
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests, by result.",
	},
	[]string{"result"},
)

// GuardRejectionsTotal counts protected requests turned away by the auth guard.
// Label:
//   - reason: "unauthenticated" or "unauthorized"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the auth guard.",
	},
	[]string{"reason"},
)

// ── Cliente metrics ───────────────────────────────────────────────────────────

// ClienteOperationsTotal counts repository-backed customer actions.
// Labels:
//   - operation: "list", "get", "create", "update" or "delete"
//   - result: "success", "invalid", "not_found" or "error"
var ClienteOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of cliente operations, by operation and result.",
	},
	[]string{"operation", "result"},
)
