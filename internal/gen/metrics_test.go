// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package gen

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterMetrics(reg)

	// All four collectors must be gatherable once observed.
	GeneratedEntities.WithLabelValues("location").Add(0)
	GenerationFailures.WithLabelValues("locations").Add(0)
	GenerationDuration.WithLabelValues("locations").Observe(0)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"shadowgrid_generated_entities_total",
		"shadowgrid_generation_failures_total",
		"shadowgrid_generation_duration_seconds",
		"shadowgrid_worlds_generated_total",
	} {
		assert.True(t, names[want], "registry missing %s", want)
	}
}

func TestMetrics_NilRecorderIsNoOp(t *testing.T) {
	var m *Metrics
	m.EntityGenerated("location")
	m.PhaseFailed("locations")
	m.ObservePhase("locations", time.Second)
	m.WorldGenerated()
}

func TestMetrics_RecorderIncrements(t *testing.T) {
	m := NewMetrics()

	before := testutil.ToFloat64(GeneratedEntities.WithLabelValues("test_kind"))
	m.EntityGenerated("test_kind")
	m.EntityGenerated("test_kind")
	after := testutil.ToFloat64(GeneratedEntities.WithLabelValues("test_kind"))
	assert.InDelta(t, 2, after-before, 0.001)

	beforeFail := testutil.ToFloat64(GenerationFailures.WithLabelValues("test_phase"))
	m.PhaseFailed("test_phase")
	afterFail := testutil.ToFloat64(GenerationFailures.WithLabelValues("test_phase"))
	assert.InDelta(t, 1, afterFail-beforeFail, 0.001)

	beforeWorlds := testutil.ToFloat64(WorldsGenerated)
	m.WorldGenerated()
	afterWorlds := testutil.ToFloat64(WorldsGenerated)
	assert.InDelta(t, 1, afterWorlds-beforeWorlds, 0.001)
}

func TestGenerateWorld_CountsEntities(t *testing.T) {
	mem, st := newMemStore()
	g, err := NewGenerator(st, memTransactor{}, WithMetrics(NewMetrics()))
	require.NoError(t, err)

	beforeWorlds := testutil.ToFloat64(WorldsGenerated)
	beforeLocations := testutil.ToFloat64(GeneratedEntities.WithLabelValues("location"))

	seed := int64(99)
	_, err = g.GenerateWorld(context.Background(), GenerateRequest{
		Name:       "Metrics World",
		Complexity: 1,
		Seed:       &seed,
	})
	require.NoError(t, err)

	afterWorlds := testutil.ToFloat64(WorldsGenerated)
	assert.InDelta(t, 1, afterWorlds-beforeWorlds, 0.001)

	afterLocations := testutil.ToFloat64(GeneratedEntities.WithLabelValues("location"))
	assert.InDelta(t, float64(len(mem.locations)), afterLocations-beforeLocations, 0.001,
		"location counter should grow by the number of generated locations")
}
