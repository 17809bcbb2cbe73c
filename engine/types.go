package engine

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/hypinv/compare"
	"github.com/katalvlaran/hypinv/nt"
	"github.com/katalvlaran/hypinv/planner"
	"github.com/katalvlaran/hypinv/resolve"
)

// ErrNilDependency indicates that a required collaborator is missing.
var ErrNilDependency = errors.New("engine: field library, algebra library and word searcher are required")

// Dependencies are the number-theoretic collaborators of one engine.
type Dependencies struct {
	Fields   nt.FieldLibrary
	Algebras nt.AlgebraLibrary
	Words    nt.WordSearcher
}

func (d Dependencies) validate() error {
	if d.Fields == nil || d.Algebras == nil || d.Words == nil {
		return ErrNilDependency
	}
	return nil
}

// Options configures a Manifold. Planner, Resolve and Compare options are
// forwarded to the respective components.
type Options struct {
	Logger   *slog.Logger
	Planner  []planner.Option
	Resolve  []resolve.Option
	Compare  []compare.Option
	Observer resolve.Observer
}

// Option represents a functional option for configuring a Manifold.
type Option func(*Options)

// WithLogger sets the logger of the manifold and all its components.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPlanner appends planner options.
func WithPlanner(opts ...planner.Option) Option {
	return func(o *Options) {
		o.Planner = append(o.Planner, opts...)
	}
}

// WithResolve appends resolver options.
func WithResolve(opts ...resolve.Option) Option {
	return func(o *Options) {
		o.Resolve = append(o.Resolve, opts...)
	}
}

// WithCompare appends comparator options.
func WithCompare(opts ...compare.Option) Option {
	return func(o *Options) {
		o.Compare = append(o.Compare, opts...)
	}
}

// WithObserver installs an attempt observer (see package metrics).
func WithObserver(obs resolve.Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// DefaultOptions returns slog.Default() and component defaults.
func DefaultOptions() Options {
	return Options{Logger: slog.Default()}
}
