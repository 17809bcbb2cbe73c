package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/hypinv/classify"
	"github.com/katalvlaran/hypinv/compare"
	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
	"github.com/katalvlaran/hypinv/planner"
	"github.com/katalvlaran/hypinv/report"
	"github.com/katalvlaran/hypinv/resolve"
	"github.com/katalvlaran/hypinv/state"
)

// Manifold is a host manifold together with its arithmetic invariants.
type Manifold struct {
	host         nt.Manifold
	st           *state.State
	planner      planner.Planner
	fields       *resolve.FieldResolver
	algebras     *resolve.AlgebraResolver
	denominators *resolve.DenominatorAnalyzer
	comparator   *compare.Comparator
	logger       *slog.Logger
}

// New wraps host. It pulls the approximate generator sequences immediately;
// no invariant is resolved yet.
func New(host nt.Manifold, deps Dependencies, opts ...Option) (*Manifold, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := state.New(host)
	if err != nil {
		return nil, err
	}

	ropts := append([]resolve.Option{resolve.WithLogger(cfg.Logger), resolve.WithObserver(cfg.Observer)}, cfg.Resolve...)
	copts := append([]compare.Option{compare.WithLogger(cfg.Logger)}, cfg.Compare...)

	m := &Manifold{
		host:    host,
		st:      st,
		planner: planner.New(cfg.Planner...),
		logger:  cfg.Logger.With("manifold", host.Name()),
	}
	if m.fields, err = resolve.NewFieldResolver(st, m.planner, ropts...); err != nil {
		return nil, err
	}
	if m.algebras, err = resolve.NewAlgebraResolver(st, m.planner, m.fields, deps.Words, deps.Algebras, ropts...); err != nil {
		return nil, err
	}
	if m.denominators, err = resolve.NewDenominatorAnalyzer(st, deps.Fields); err != nil {
		return nil, err
	}
	if m.comparator, err = compare.New(deps.Fields, deps.Algebras, copts...); err != nil {
		return nil, err
	}
	return m, nil
}

// Name returns the host's name.
func (m *Manifold) Name() string { return m.host.Name() }

// Volume returns the host's volume.
func (m *Manifold) Volume() float64 { return m.host.Volume() }

// State exposes the invariant store for inspection.
func (m *Manifold) State() *state.State { return m.st }

// Planner returns the configured planner.
func (m *Manifold) Planner() planner.Planner { return m.planner }

// Side returns m as a comparison participant.
func (m *Manifold) Side() compare.Side { return compare.Side{State: m.st, Planner: m.planner} }

// NextCoordinate returns where the next search for k would run.
func (m *Manifold) NextCoordinate(k invariant.Kind) (invariant.Coordinate, error) {
	return m.planner.Next(k, m.st)
}

// TraceField resolves (or returns the cached) trace field.
func (m *Manifold) TraceField(ctx context.Context, opts ...resolve.CallOption) (*invariant.ResolvedField, error) {
	return m.fields.Resolve(ctx, invariant.TraceField, opts...)
}

// InvariantTraceField resolves (or returns the cached) invariant trace field.
func (m *Manifold) InvariantTraceField(ctx context.Context, opts ...resolve.CallOption) (*invariant.ResolvedField, error) {
	return m.fields.Resolve(ctx, invariant.InvariantTraceField, opts...)
}

// QuaternionAlgebra resolves (or returns the cached) quaternion algebra.
func (m *Manifold) QuaternionAlgebra(ctx context.Context, opts ...resolve.CallOption) (nt.QuaternionAlgebra, error) {
	return m.algebras.Resolve(ctx, invariant.QuaternionAlgebra, opts...)
}

// InvariantQuaternionAlgebra resolves (or returns the cached) invariant
// quaternion algebra.
func (m *Manifold) InvariantQuaternionAlgebra(ctx context.Context, opts ...resolve.CallOption) (nt.QuaternionAlgebra, error) {
	return m.algebras.Resolve(ctx, invariant.InvariantQuaternionAlgebra, opts...)
}

// Resolve resolves kind k and reports whether it is now known.
func (m *Manifold) Resolve(ctx context.Context, k invariant.Kind, opts ...resolve.CallOption) (bool, error) {
	switch {
	case k.IsField():
		f, err := m.fields.Resolve(ctx, k, opts...)
		return f != nil, err
	case k.IsAlgebra():
		q, err := m.algebras.Resolve(ctx, k, opts...)
		return q != nil, err
	default:
		return false, fmt.Errorf("%w: %d", invariant.ErrUnknownKind, int(k))
	}
}

// ResolveNamed is Resolve with the kind given by name ("tf", "invariant
// trace field", ...). Unknown names fail with invariant.ErrUnknownKind.
func (m *Manifold) ResolveNamed(ctx context.Context, name string, opts ...resolve.CallOption) (bool, error) {
	k, err := invariant.ParseKind(name)
	if err != nil {
		return false, err
	}
	return m.Resolve(ctx, k, opts...)
}

// Denominators returns the denominator primes, computing them if the trace
// field generators are known; nil otherwise.
func (m *Manifold) Denominators() *invariant.IdealSet { return m.denominators.Analyze() }

// DenominatorResidueCharacteristics returns the rational primes under the
// denominators; nil while they are unknown.
func (m *Manifold) DenominatorResidueCharacteristics() invariant.PrimeSet {
	return m.denominators.ResidueCharacteristics()
}

// ComputeArithmeticInvariants tries every invariant once, in dependency
// order, then the denominators. Overrides apply to every kind. Failures to
// find an invariant are not errors; errors from individual kinds are joined
// and the remaining kinds are still attempted.
func (m *Manifold) ComputeArithmeticInvariants(ctx context.Context, opts ...resolve.CallOption) error {
	var errs []error
	for _, k := range invariant.Kinds {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		ok, err := m.Resolve(ctx, k, opts...)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			continue
		}
		m.logger.Info("invariant attempt", "kind", k.Short(), "resolved", ok)
	}
	if d := m.denominators.Analyze(); d.Known() {
		m.logger.Info("denominators", "count", d.Len())
	}
	return errors.Join(errs...)
}

// ArithmeticInvariantsKnown reports whether all four invariants and the
// denominators are cached.
func (m *Manifold) ArithmeticInvariantsKnown() bool { return m.st.Known() }

// IsArithmetic classifies m from cached invariants only; it fails with
// classify.ErrUnresolved when something is missing.
func (m *Manifold) IsArithmetic() (bool, error) {
	return classify.IsArithmetic(m.fieldOrNil(invariant.InvariantTraceField),
		m.st.Algebra(invariant.InvariantQuaternionAlgebra), m.st.Denominators())
}

// Verdict is IsArithmetic as a tri-state.
func (m *Manifold) Verdict() classify.Verdict {
	return classify.Classify(m.fieldOrNil(invariant.InvariantTraceField),
		m.st.Algebra(invariant.InvariantQuaternionAlgebra), m.st.Denominators())
}

func (m *Manifold) fieldOrNil(k invariant.Kind) nt.Field {
	if f := m.st.Field(k); f != nil {
		return f.Field
	}
	return nil
}

// DehnFill changes the host's filling and discards every invariant, attempt
// record and denominator, since all of them depend on the filling.
func (m *Manifold) DehnFill(fillings ...nt.Filling) error {
	if err := m.host.DehnFill(fillings...); err != nil {
		return fmt.Errorf("engine: dehn fill %s: %w", m.Name(), err)
	}
	if err := m.st.Reset(); err != nil {
		return err
	}
	m.logger.Info("filling changed; invariants reset", "generation", m.st.Generation())
	return nil
}

// Compare compares m with other. Both must have all invariants resolved.
func (m *Manifold) Compare(ctx context.Context, other *Manifold) (compare.Result, error) {
	return m.comparator.Compare(ctx, m.Side(), other.Side())
}

// SameInvariants reports whether m and other agree on every invariant.
func (m *Manifold) SameInvariants(ctx context.Context, other *Manifold) (bool, error) {
	return m.comparator.SameInvariants(ctx, m.Side(), other.Side())
}

// ConjugateInvariants returns m's invariants for the opposite orientation.
func (m *Manifold) ConjugateInvariants(ctx context.Context) (*compare.Conjugated, error) {
	return m.comparator.Conjugate(ctx, m.Side())
}

// Report snapshots the cached invariants; it resolves nothing.
func (m *Manifold) Report() report.Report { return report.Build(m) }
