// Package metrics defines and registers all custom Prometheus metrics for
// the exam prediction backend. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "examprediction"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "duplicate_username", "duplicate_email", "duplicate", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "denied", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthDenialsTotal counts requests rejected by the authorization gate.
// Label:
//   - reason: "unauthorized" (no/invalid session) or "forbidden" (wrong role)
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests rejected by session or role checks.",
	},
	[]string{"reason"},
)

// ActiveSessions tracks the number of live sessions in the registry.
// Sessions live until process exit, so within one process this only grows.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of sessions held in the in-process registry.",
	},
)

// PredictionsTotal counts exam predictions served.
// Label:
//   - result: "ok", "no_data", "error"
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of exam-success predictions, by result.",
	},
	[]string{"result"},
)
