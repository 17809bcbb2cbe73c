package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/resolve"
)

// Namespace prefixes every metric.
const Namespace = "hypinv"

// Outcome label values.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)

// Collector holds the metric vectors.
type Collector struct {
	FieldAttempts    *prometheus.CounterVec
	FieldSeconds     *prometheus.HistogramVec
	AlgebraAttempts  *prometheus.CounterVec
	AlgebraSeconds   *prometheus.HistogramVec
	Rounds           *prometheus.HistogramVec
	EpsilonExhausted *prometheus.CounterVec
	Precision        *prometheus.HistogramVec
}

var _ resolve.Observer = (*Collector)(nil)

// Options configures a Collector.
type Options struct {
	// MaxEpsilonRounds sizes the epsilon_rounds buckets, one per round.
	MaxEpsilonRounds int
}

// Option represents a functional option for configuring a Collector.
type Option func(*Options)

// WithMaxEpsilonRounds matches the epsilon_rounds buckets to the resolver's
// round cap. Panics if n <= 0.
func WithMaxEpsilonRounds(n int) Option {
	if n <= 0 {
		panic("metrics: WithMaxEpsilonRounds(n): n must be > 0")
	}
	return func(o *Options) { o.MaxEpsilonRounds = n }
}

// DefaultOptions sizes the buckets for resolve.DefaultMaxEpsilonRounds.
func DefaultOptions() Options {
	return Options{MaxEpsilonRounds: resolve.DefaultMaxEpsilonRounds}
}

// New registers a Collector with reg. A nil reg registers with
// prometheus.DefaultRegisterer; registering twice with the same registry
// panics, as with promauto.
func New(reg prometheus.Registerer, opts ...Option) *Collector {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Collector{
		FieldAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "field_attempts_total",
			Help:      "Field searches by kind and outcome",
		}, []string{"kind", "outcome"}),
		FieldSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "field_search_seconds",
			Help:      "Duration of one field search",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"kind"}),
		AlgebraAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "algebra_attempts_total",
			Help:      "Quaternion algebra searches by kind and outcome",
		}, []string{"kind", "outcome"}),
		AlgebraSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "algebra_search_seconds",
			Help:      "Duration of one quaternion algebra search",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"kind"}),
		Rounds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "epsilon_rounds",
			Help:      "Word searches used by one Hilbert symbol search",
			Buckets:   prometheus.LinearBuckets(1, 1, cfg.MaxEpsilonRounds),
		}, []string{"kind"}),
		EpsilonExhausted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "epsilon_exhausted_total",
			Help:      "Hilbert symbol searches that ran out of epsilon rounds or time",
		}, []string{"kind"}),
		Precision: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "attempt_precision",
			Help:      "Precision of every attempt",
			Buckets:   prometheus.LinearBuckets(1000, 5000, 8),
		}, []string{"kind"}),
	}
}

func outcome(ok bool) string {
	if ok {
		return OutcomeFound
	}
	return OutcomeNotFound
}

// FieldAttempt implements resolve.Observer.
func (c *Collector) FieldAttempt(k invariant.Kind, at invariant.Coordinate, ok bool, elapsed time.Duration) {
	c.FieldAttempts.WithLabelValues(k.Short(), outcome(ok)).Inc()
	c.FieldSeconds.WithLabelValues(k.Short()).Observe(elapsed.Seconds())
	c.Precision.WithLabelValues(k.Short()).Observe(float64(at.Precision))
}

// AlgebraAttempt implements resolve.Observer.
func (c *Collector) AlgebraAttempt(k invariant.Kind, precision int, ok bool, elapsed time.Duration) {
	c.AlgebraAttempts.WithLabelValues(k.Short(), outcome(ok)).Inc()
	c.AlgebraSeconds.WithLabelValues(k.Short()).Observe(elapsed.Seconds())
	c.Precision.WithLabelValues(k.Short()).Observe(float64(precision))
}

// EpsilonRounds implements resolve.Observer.
func (c *Collector) EpsilonRounds(k invariant.Kind, rounds int, exhausted bool) {
	c.Rounds.WithLabelValues(k.Short()).Observe(float64(rounds))
	if exhausted {
		c.EpsilonExhausted.WithLabelValues(k.Short()).Inc()
	}
}
