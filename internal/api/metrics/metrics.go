// Package metrics defines and registers all custom Prometheus metrics for the
// VoltGrid market platform. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voltgrid"

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "invalid"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignUpsTotal counts provisioned identities.
var SignUpsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of identities provisioned via sign-up.",
	},
)

// RoleSwitchesTotal counts demo role switches.
// Label:
//   - role: the target role ("producer", "consumer", "operator")
var RoleSwitchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_switches_total",
		Help:      "Total number of demo user-type switches, by target role.",
	},
	[]string{"role"},
)

// HealthCheckDuration measures one full status-feed fetch.
var HealthCheckDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "health_check_duration_seconds",
		Help:      "Duration of grid status feed checks, successful or not.",
		Buckets:   prometheus.DefBuckets,
	},
)

// HealthCheckFailuresTotal counts checks that fell back to the all-down snapshot.
var HealthCheckFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "health_check_failures_total",
		Help:      "Total number of grid status checks that failed and served the fallback.",
	},
)
