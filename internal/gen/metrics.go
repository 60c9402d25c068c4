// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GeneratedEntities is the counter for generated entities by kind.
// Use RegisterMetrics to register this with a Prometheus registry.
var GeneratedEntities = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shadowgrid_generated_entities_total",
		Help: "Total number of generated entities by kind",
	},
	[]string{"kind"},
)

// GenerationFailures is the counter for failed generation runs by phase.
// Use RegisterMetrics to register this with a Prometheus registry.
var GenerationFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shadowgrid_generation_failures_total",
		Help: "Total number of failed generation runs by phase",
	},
	[]string{"phase"},
)

// GenerationDuration is the histogram for per-phase generation duration.
// Use RegisterMetrics to register this with a Prometheus registry.
var GenerationDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "shadowgrid_generation_duration_seconds",
		Help:    "World generation phase duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"phase"},
)

// WorldsGenerated is the counter for completed generation runs.
// Use RegisterMetrics to register this with a Prometheus registry.
var WorldsGenerated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "shadowgrid_worlds_generated_total",
		Help: "Total number of successfully generated worlds",
	},
)

// RegisterMetrics registers generation metrics with the given Prometheus
// registry. This must be called at startup to make metrics available on
// /metrics. Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(GeneratedEntities)
	reg.MustRegister(GenerationFailures)
	reg.MustRegister(GenerationDuration)
	reg.MustRegister(WorldsGenerated)
}

// Metrics records generation observations. A nil *Metrics is valid and
// records nothing, which keeps unit tests free of registry state.
type Metrics struct{}

// NewMetrics returns a recorder backed by the package-level collectors.
func NewMetrics() *Metrics { return &Metrics{} }

// EntityGenerated counts one generated entity of the given kind.
func (m *Metrics) EntityGenerated(kind string) {
	if m == nil {
		return
	}
	GeneratedEntities.WithLabelValues(kind).Inc()
}

// PhaseFailed counts one failed generation run attributed to a phase.
func (m *Metrics) PhaseFailed(phase string) {
	if m == nil {
		return
	}
	GenerationFailures.WithLabelValues(phase).Inc()
}

// ObservePhase records how long a generation phase took.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	if m == nil {
		return
	}
	GenerationDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// WorldGenerated counts one completed generation run.
func (m *Metrics) WorldGenerated() {
	if m == nil {
		return
	}
	WorldsGenerated.Inc()
}
