package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/metrics"
)

func histogram(t *testing.T, reg *prometheus.Registry, name, kind string) *dto.Histogram {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "kind" && lp.GetValue() == kind {
					return m.GetHistogram()
				}
			}
		}
	}
	t.Fatalf("no %s{kind=%q}", name, kind)
	return nil
}

func TestCollector_FieldAttempts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.FieldAttempt(invariant.TraceField, invariant.Coordinate{Precision: 1000, Degree: 20}, false, 10*time.Millisecond)
	c.FieldAttempt(invariant.TraceField, invariant.Coordinate{Precision: 6000, Degree: 25}, true, 30*time.Millisecond)
	c.FieldAttempt(invariant.InvariantTraceField, invariant.Coordinate{Precision: 1000, Degree: 20}, true, time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(c.FieldAttempts.WithLabelValues("tf", metrics.OutcomeNotFound)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.FieldAttempts.WithLabelValues("tf", metrics.OutcomeFound)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.FieldAttempts.WithLabelValues("itf", metrics.OutcomeFound)))

	h := histogram(t, reg, "hypinv_attempt_precision", "tf")
	require.Equal(t, uint64(2), h.GetSampleCount())
	require.Equal(t, 7000.0, h.GetSampleSum())
	require.Equal(t, uint64(2), histogram(t, reg, "hypinv_field_search_seconds", "tf").GetSampleCount())
}

func TestCollector_AlgebraAndEpsilon(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.AlgebraAttempt(invariant.QuaternionAlgebra, 1000, true, time.Second)
	c.EpsilonRounds(invariant.QuaternionAlgebra, 3, false)
	c.EpsilonRounds(invariant.InvariantQuaternionAlgebra, 8, true)

	require.Equal(t, 1.0, testutil.ToFloat64(c.AlgebraAttempts.WithLabelValues("qa", metrics.OutcomeFound)))
	require.Equal(t, 0.0, testutil.ToFloat64(c.EpsilonExhausted.WithLabelValues("qa")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.EpsilonExhausted.WithLabelValues("iqa")))
	require.Equal(t, 3.0, histogram(t, reg, "hypinv_epsilon_rounds", "qa").GetSampleSum())
	require.Equal(t, 1, testutil.CollectAndCount(c.AlgebraSeconds))
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	require.Panics(t, func() { metrics.New(reg) })
}

func TestCollector_EpsilonBucketsFollowRoundCap(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg, metrics.WithMaxEpsilonRounds(64))
	c.EpsilonRounds(invariant.QuaternionAlgebra, 40, false)

	h := histogram(t, reg, "hypinv_epsilon_rounds", "qa")
	require.Len(t, h.GetBucket(), 64)
	require.Equal(t, uint64(0), h.GetBucket()[38].GetCumulativeCount())
	require.Equal(t, uint64(1), h.GetBucket()[39].GetCumulativeCount())

	def := prometheus.NewRegistry()
	metrics.New(def).EpsilonRounds(invariant.QuaternionAlgebra, 1, false)
	require.Len(t, histogram(t, def, "hypinv_epsilon_rounds", "qa").GetBucket(), 8)

	require.Panics(t, func() { metrics.WithMaxEpsilonRounds(0) })
}
