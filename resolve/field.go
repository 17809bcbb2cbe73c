package resolve

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/planner"
	"github.com/katalvlaran/hypinv/state"
)

// FieldResolver resolves the trace field and the invariant trace field.
type FieldResolver struct {
	st      *state.State
	planner planner.Planner
	opts    Options
}

// NewFieldResolver binds a resolver to st.
func NewFieldResolver(st *state.State, p planner.Planner, opts ...Option) (*FieldResolver, error) {
	if st == nil {
		return nil, ErrNilState
	}
	return &FieldResolver{st: st, planner: p, opts: buildOptions(opts)}, nil
}

// Resolve returns the field of kind k.
//
// Without overrides, or with overrides naming the coordinate the cached field
// was found at, a cached field is returned immediately. Otherwise the
// coordinate comes from the overrides, completed by the planner, and the
// generator sequence is searched once. The outcome is recorded at that
// coordinate (overwriting any earlier outcome there). A nil field with a nil
// error means the search found nothing.
//
// When a trace field search succeeds on a manifold that is not a mod-2
// homology sphere and the invariant trace field is still unresolved, the same
// result is also stored as the invariant trace field and recorded as a
// success at the same coordinate. WithTraceFieldPropagation(false) disables it.
func (r *FieldResolver) Resolve(ctx context.Context, k invariant.Kind, opts ...CallOption) (*invariant.ResolvedField, error) {
	if !k.IsField() {
		return nil, fmt.Errorf("%w: %s", invariant.ErrNotFieldKind, k)
	}
	c := buildCall(opts)

	// 1) Cache hit.
	cached := r.st.Field(k)
	if cached != nil && !c.overridden() {
		return cached, nil
	}

	// 2) Complete the coordinate from the planner. An override naming the
	//    coordinate the cached field was found at is still a cache hit.
	at, err := r.coordinate(k, c)
	if err != nil {
		return nil, err
	}
	if cached != nil && cached.Coordinate == at {
		return cached, nil
	}

	// 3) One external search.
	gens := r.st.Generators(k)
	if gens == nil {
		return nil, fmt.Errorf("resolve: %s of %s: %w", k, r.st.Host().Name(), state.ErrNoGenerators)
	}
	start := time.Now()
	data, err := gens.FindField(ctx, at.Precision, at.Degree, true)
	if err != nil {
		return nil, fmt.Errorf("resolve: %s search at %s: %w", k, at, err)
	}
	elapsed := time.Since(start)
	ok := data != nil

	// 4) Record.
	r.st.FieldAttempts(k).Record(at, ok)
	r.opts.Observer.FieldAttempt(k, at, ok, elapsed)
	r.opts.Logger.Debug("field search",
		"manifold", r.st.Host().Name(),
		"generation", r.st.Generation(),
		"kind", k.Short(),
		"precision", at.Precision,
		"degree", at.Degree,
		"found", ok,
		"elapsed", elapsed)

	if !ok {
		return nil, nil
	}

	// 5) Cache and propagate.
	field := invariant.NewResolvedField(data, at)
	r.st.SetField(k, field)
	if k == invariant.TraceField && r.opts.PropagateTraceField &&
		!r.st.ModTwoHomologySphere() && r.st.Field(invariant.InvariantTraceField) == nil {
		r.st.FieldAttempts(invariant.InvariantTraceField).Record(at, true)
		r.st.SetField(invariant.InvariantTraceField, field)
	}
	return field, nil
}

func (r *FieldResolver) coordinate(k invariant.Kind, c call) (invariant.Coordinate, error) {
	at := invariant.Coordinate{Precision: c.precision, Degree: c.degree}
	if at.Precision != 0 && at.Degree != 0 {
		return at, nil
	}
	planned, err := r.planner.Next(k, r.st)
	if err != nil {
		return invariant.Coordinate{}, err
	}
	if at.Precision == 0 {
		at.Precision = planned.Precision
	}
	if at.Degree == 0 {
		at.Degree = planned.Degree
	}
	return at, nil
}
