package compare

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/planner"
	"github.com/katalvlaran/hypinv/state"
)

// Sentinel errors returned by the comparator.
var (
	// ErrUnresolved indicates that some invariant is unresolved on one side.
	// Comparison never resolves anything itself.
	ErrUnresolved = errors.New("compare: all invariants and denominators must be resolved on both sides")

	// ErrAnchor indicates that a generator could not be expressed in a field's
	// numerical root while building an explicit field isomorphism.
	ErrAnchor = errors.New("compare: generator not expressible in numerical root")

	// ErrConjugate indicates that the conjugate generator sequence did not
	// yield a field at the coordinate the original field was found at.
	ErrConjugate = errors.New("compare: conjugate field not found")

	// ErrNilCollaborator indicates a nil field or algebra library.
	ErrNilCollaborator = errors.New("compare: collaborator is nil")
)

// Side is one manifold taking part in a comparison.
type Side struct {
	State   *state.State
	Planner planner.Planner
}

func (s Side) plannedPrecision(k invariant.Kind) int {
	c, err := s.Planner.Next(k, s.State)
	if err != nil {
		return 0
	}
	return c.Precision
}

// DenominatorPolicy decides how denominators of distinct trace field
// representations are compared.
type DenominatorPolicy int

const (
	// DenominatorsStrict reports false whenever the two trace fields are not
	// the identical representation, even if both denominator sets are empty.
	DenominatorsStrict DenominatorPolicy = iota
	// DenominatorsTransport pushes the second set through the special
	// isomorphism between isomorphic trace fields before comparing.
	DenominatorsTransport
)

// String returns "strict" or "transport".
func (p DenominatorPolicy) String() string {
	if p == DenominatorsTransport {
		return "transport"
	}
	return "strict"
}

// Result holds one equivalence verdict per invariant.
type Result struct {
	TraceField                 bool `yaml:"trace_field" json:"trace_field"`
	InvariantTraceField        bool `yaml:"invariant_trace_field" json:"invariant_trace_field"`
	QuaternionAlgebra          bool `yaml:"quaternion_algebra" json:"quaternion_algebra"`
	InvariantQuaternionAlgebra bool `yaml:"invariant_quaternion_algebra" json:"invariant_quaternion_algebra"`
	Denominators               bool `yaml:"denominators" json:"denominators"`
}

// Same reports whether every verdict is true.
func (r Result) Same() bool {
	return r.TraceField && r.InvariantTraceField && r.QuaternionAlgebra &&
		r.InvariantQuaternionAlgebra && r.Denominators
}

// Kind returns the verdict for one invariant kind.
func (r Result) Kind(k invariant.Kind) bool {
	switch k {
	case invariant.TraceField:
		return r.TraceField
	case invariant.InvariantTraceField:
		return r.InvariantTraceField
	case invariant.QuaternionAlgebra:
		return r.QuaternionAlgebra
	case invariant.InvariantQuaternionAlgebra:
		return r.InvariantQuaternionAlgebra
	}
	return false
}

// Options configures a Comparator.
type Options struct {
	Denominators DenominatorPolicy
	Logger       *slog.Logger
}

// Option represents a functional option for configuring a Comparator.
type Option func(*Options)

// WithDenominatorPolicy selects how denominators of distinct trace field
// representations compare.
func WithDenominatorPolicy(p DenominatorPolicy) Option {
	return func(o *Options) {
		o.Denominators = p
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns strict denominators and slog.Default().
func DefaultOptions() Options {
	return Options{Denominators: DenominatorsStrict, Logger: slog.Default()}
}
