package planner

import (
	"errors"

	"github.com/katalvlaran/hypinv/invariant"
)

// Sentinel errors returned (or panicked, for option constructors) by the planner.
var (
	// ErrBadStartPrecision indicates a non-positive starting precision.
	ErrBadStartPrecision = errors.New("planner: start precision must be positive")

	// ErrBadStartDegree indicates a non-positive starting degree.
	ErrBadStartDegree = errors.New("planner: start degree must be positive")

	// ErrBadPrecisionIncrement indicates a non-positive precision increment.
	ErrBadPrecisionIncrement = errors.New("planner: precision increment must be positive")

	// ErrBadDegreeIncrement indicates a non-positive degree increment.
	ErrBadDegreeIncrement = errors.New("planner: degree increment must be positive")
)

// Defaults used by DefaultOptions.
const (
	DefaultStartPrecision     = 1000
	DefaultStartDegree        = 20
	DefaultPrecisionIncrement = 5000
	DefaultDegreeIncrement    = 5
)

// History is the read-only view of a manifold's attempt state the planner
// consumes. state.State implements it.
type History interface {
	// FieldAttempts returns the record of a field kind.
	FieldAttempts(k invariant.Kind) invariant.FieldAttempts
	// AlgebraAttempts returns the record of an algebra kind.
	AlgebraAttempts(k invariant.Kind) invariant.AlgebraAttempts
	// FieldDegree returns the degree of a resolved field kind.
	FieldDegree(k invariant.Kind) (int, bool)
	// ModTwoHomologySphere reports whether H_1 has no even-order divisors.
	ModTwoHomologySphere() bool
}

// Options configures the planner.
//
// StartPrecision     – precision (bits) tried on an empty history.
// StartDegree        – polynomial degree bound tried on an empty history.
// PrecisionIncrement – added to the largest failed precision.
// DegreeIncrement    – added to the largest failed degree.
type Options struct {
	StartPrecision     int
	StartDegree        int
	PrecisionIncrement int
	DegreeIncrement    int
}

// Option represents a functional option for configuring the planner.
type Option func(*Options)

// WithStartPrecision sets the precision tried first. Panics if p <= 0.
func WithStartPrecision(p int) Option {
	return func(o *Options) {
		if p <= 0 {
			panic(ErrBadStartPrecision.Error())
		}
		o.StartPrecision = p
	}
}

// WithStartDegree sets the degree tried first. Panics if d <= 0.
func WithStartDegree(d int) Option {
	return func(o *Options) {
		if d <= 0 {
			panic(ErrBadStartDegree.Error())
		}
		o.StartDegree = d
	}
}

// WithPrecisionIncrement sets the precision escalation step. Panics if inc <= 0.
func WithPrecisionIncrement(inc int) Option {
	return func(o *Options) {
		if inc <= 0 {
			panic(ErrBadPrecisionIncrement.Error())
		}
		o.PrecisionIncrement = inc
	}
}

// WithDegreeIncrement sets the degree escalation step. Panics if inc <= 0.
func WithDegreeIncrement(inc int) Option {
	return func(o *Options) {
		if inc <= 0 {
			panic(ErrBadDegreeIncrement.Error())
		}
		o.DegreeIncrement = inc
	}
}

// DefaultOptions returns the planner defaults:
//   - StartPrecision:     1000
//   - StartDegree:        20
//   - PrecisionIncrement: 5000
//   - DegreeIncrement:    5
func DefaultOptions() Options {
	return Options{
		StartPrecision:     DefaultStartPrecision,
		StartDegree:        DefaultStartDegree,
		PrecisionIncrement: DefaultPrecisionIncrement,
		DegreeIncrement:    DefaultDegreeIncrement,
	}
}
