// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package extension

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for action metrics.
const (
	StatusSuccess = "success"
	StatusNoop    = "noop"
	StatusError   = "error"
)

// Actions counts lifecycle actions by unit, verb, and outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var Actions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "glyphbot_extension_actions_total",
		Help: "Total number of extension lifecycle actions",
	},
	[]string{"unit", "verb", "status"},
)

// BatchDuration observes how long batch invocations take per verb.
var BatchDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "glyphbot_extension_batch_duration_seconds",
		Help:    "Extension batch processing duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"verb"},
)

// RegisterMetrics registers extension metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Actions)
	reg.MustRegister(BatchDuration)
}

// RecordAction increments the action counter.
func RecordAction(unit, verb, status string) {
	Actions.WithLabelValues(unit, verb, status).Inc()
}

// ObserveBatch records the duration of one batch invocation.
func ObserveBatch(verb string, d time.Duration) {
	BatchDuration.WithLabelValues(verb).Observe(d.Seconds())
}
