package resolve

import (
	"errors"
	"log/slog"
	"time"

	"github.com/katalvlaran/hypinv/invariant"
)

// Sentinel errors returned by the resolvers.
var (
	// ErrNilState indicates that a resolver was built without a state.
	ErrNilState = errors.New("resolve: state is nil")

	// ErrNilCollaborator indicates that a required collaborator is nil.
	ErrNilCollaborator = errors.New("resolve: collaborator is nil")

	// ErrInsufficientSeparation indicates that the Hilbert symbol search kept
	// producing entries indistinguishable from zero until the round or time
	// budget ran out. The attempt is recorded as a failure, so the next
	// planned precision is higher.
	ErrInsufficientSeparation = errors.New("resolve: insufficient precision/separation for Hilbert symbol")

	// ErrBadEpsilon indicates a non-positive initial epsilon or a factor ≤ 1.
	ErrBadEpsilon = errors.New("resolve: epsilon coefficient must be positive and factor > 1")

	// ErrBadRounds indicates a non-positive round cap.
	ErrBadRounds = errors.New("resolve: max epsilon rounds must be positive")

	// ErrBadPrecision indicates a non-positive precision.
	ErrBadPrecision = errors.New("resolve: precision must be positive")

	// ErrBadDegree indicates a non-positive degree.
	ErrBadDegree = errors.New("resolve: degree must be positive")
)

// Defaults used by DefaultOptions.
const (
	DefaultWordSearchPrecision = 5000
	DefaultInitialEpsilon      = 10.0
	DefaultEpsilonFactor       = 10.0
	DefaultMaxEpsilonRounds    = 8
)

// Observer receives one callback per attempt. Implementations must be cheap;
// they run on the resolving goroutine.
type Observer interface {
	FieldAttempt(k invariant.Kind, at invariant.Coordinate, ok bool, elapsed time.Duration)
	AlgebraAttempt(k invariant.Kind, precision int, ok bool, elapsed time.Duration)
	// EpsilonRounds reports how many word searches one algebra attempt used
	// and whether the cap was hit.
	EpsilonRounds(k invariant.Kind, rounds int, exhausted bool)
}

// NopObserver ignores every callback.
type NopObserver struct{}

func (NopObserver) FieldAttempt(invariant.Kind, invariant.Coordinate, bool, time.Duration) {}
func (NopObserver) AlgebraAttempt(invariant.Kind, int, bool, time.Duration)                {}
func (NopObserver) EpsilonRounds(invariant.Kind, int, bool)                                {}

// Options configures the resolvers.
//
// Logger              – receives Debug records per attempt; default slog.Default().
// Observer            – attempt callbacks; default NopObserver.
// PropagateTraceField – copy a trace field success into an unresolved
// invariant trace field slot when H_1 has even torsion; default true.
// WordSearchPrecision – precision of the holonomy handed to the word search.
// InitialEpsilon      – first epsilon-separation coefficient.
// EpsilonFactor       – multiplier applied after each zero expression.
// MaxEpsilonRounds    – cap on word searches per algebra attempt.
// EpsilonBudget       – optional wall-clock cap on one algebra attempt (0 = none).
type Options struct {
	Logger              *slog.Logger
	Observer            Observer
	PropagateTraceField bool
	WordSearchPrecision int
	InitialEpsilon      float64
	EpsilonFactor       float64
	MaxEpsilonRounds    int
	EpsilonBudget       time.Duration
}

// Option represents a functional option for configuring resolvers.
type Option func(*Options)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver sets the attempt observer. A nil observer keeps the default.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// WithTraceFieldPropagation toggles copying trace field results into the
// invariant trace field slot.
func WithTraceFieldPropagation(on bool) Option {
	return func(o *Options) {
		o.PropagateTraceField = on
	}
}

// WithWordSearchPrecision sets the holonomy precision for word searches.
// Panics if p <= 0.
func WithWordSearchPrecision(p int) Option {
	return func(o *Options) {
		if p <= 0 {
			panic(ErrBadPrecision.Error())
		}
		o.WordSearchPrecision = p
	}
}

// WithEpsilon sets the initial epsilon coefficient and the escalation
// factor. Panics if initial <= 0 or factor <= 1.
func WithEpsilon(initial, factor float64) Option {
	return func(o *Options) {
		if initial <= 0 || factor <= 1 {
			panic(ErrBadEpsilon.Error())
		}
		o.InitialEpsilon = initial
		o.EpsilonFactor = factor
	}
}

// WithMaxEpsilonRounds caps word searches per algebra attempt. Panics if n <= 0.
func WithMaxEpsilonRounds(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadRounds.Error())
		}
		o.MaxEpsilonRounds = n
	}
}

// WithEpsilonBudget caps the wall-clock time of one algebra attempt.
// Zero or negative disables the time cap.
func WithEpsilonBudget(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			d = 0
		}
		o.EpsilonBudget = d
	}
}

// DefaultOptions returns the resolver defaults.
func DefaultOptions() Options {
	return Options{
		Logger:              slog.Default(),
		Observer:            NopObserver{},
		PropagateTraceField: true,
		WordSearchPrecision: DefaultWordSearchPrecision,
		InitialEpsilon:      DefaultInitialEpsilon,
		EpsilonFactor:       DefaultEpsilonFactor,
		MaxEpsilonRounds:    DefaultMaxEpsilonRounds,
	}
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// call holds per-call overrides; zero means "ask the planner".
type call struct {
	precision int
	degree    int
}

// CallOption overrides the planned coordinate of a single resolve call.
type CallOption func(*call)

// AtPrecision forces the precision of one call. Panics if p <= 0.
func AtPrecision(p int) CallOption {
	return func(c *call) {
		if p <= 0 {
			panic(ErrBadPrecision.Error())
		}
		c.precision = p
	}
}

// AtDegree forces the degree of one field call. Panics if d <= 0.
func AtDegree(d int) CallOption {
	return func(c *call) {
		if d <= 0 {
			panic(ErrBadDegree.Error())
		}
		c.degree = d
	}
}

// At forces both components of one field call.
func At(c invariant.Coordinate) CallOption {
	return func(x *call) {
		AtPrecision(c.Precision)(x)
		AtDegree(c.Degree)(x)
	}
}

func buildCall(opts []CallOption) call {
	var c call
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c call) overridden() bool { return c.precision != 0 || c.degree != 0 }
