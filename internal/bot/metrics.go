// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package bot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for interaction metrics.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusNotFound = "not_found"
)

// Interactions counts application command interactions by command and status.
// Use RegisterMetrics to register this with a Prometheus registry.
var Interactions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "glyphbot_interactions_total",
		Help: "Total number of application command interactions",
	},
	[]string{"command", "status"},
)

// InteractionDuration is the histogram for interaction handling duration.
var InteractionDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "glyphbot_interaction_duration_seconds",
		Help:    "Interaction handling duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"command"},
)

// RegisterMetrics registers bot metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Interactions)
	reg.MustRegister(InteractionDuration)
}

// RecordInteraction increments the interaction counter.
func RecordInteraction(command, status string) {
	Interactions.WithLabelValues(command, status).Inc()
}

// ObserveInteraction records the handling duration of one interaction.
func ObserveInteraction(command string, d time.Duration) {
	InteractionDuration.WithLabelValues(command).Observe(d.Seconds())
}
