package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
	"github.com/katalvlaran/hypinv/planner"
	"github.com/katalvlaran/hypinv/state"
)

// AlgebraResolver resolves the quaternion algebra and the invariant
// quaternion algebra from a Hilbert symbol found numerically.
type AlgebraResolver struct {
	st       *state.State
	planner  planner.Planner
	fields   *FieldResolver
	words    nt.WordSearcher
	algebras nt.AlgebraLibrary
	opts     Options
}

// NewAlgebraResolver binds a resolver to st. fields resolves the underlying
// field when it is not yet known.
func NewAlgebraResolver(st *state.State, p planner.Planner, fields *FieldResolver,
	words nt.WordSearcher, algebras nt.AlgebraLibrary, opts ...Option) (*AlgebraResolver, error) {
	if st == nil {
		return nil, ErrNilState
	}
	if fields == nil || words == nil || algebras == nil {
		return nil, ErrNilCollaborator
	}
	return &AlgebraResolver{
		st:       st,
		planner:  p,
		fields:   fields,
		words:    words,
		algebras: algebras,
		opts:     buildOptions(opts),
	}, nil
}

// hilbertEntries is one candidate Hilbert symbol.
type hilbertEntries struct {
	first, second     nt.Expression
	firstOK, secondOK bool
}

// Resolve returns the algebra of kind k, searching at the planned precision
// unless AtPrecision overrides it.
//
// Steps:
//  1. Return the cached algebra when no precision is forced.
//  2. Resolve the underlying field at that precision if it is unknown; give up
//     (nil, nil) if it cannot be found.
//  3. Find words w1, w2 and express tr(w1)²−4 and tr([w1,w2])−2 in the
//     field's numerical root.
//  4. While either expression is zero, multiply epsilon and search again, at
//     most MaxEpsilonRounds times and within EpsilonBudget; past either cap
//     record a failure at the precision and fail with
//     ErrInsufficientSeparation, so the planner moves on to a higher one.
//  5. Record the outcome at the precision, build the algebra from the
//     expressions evaluated at the field generator, and cache it.
func (r *AlgebraResolver) Resolve(ctx context.Context, k invariant.Kind, opts ...CallOption) (nt.QuaternionAlgebra, error) {
	if !k.IsAlgebra() {
		return nil, fmt.Errorf("%w: %s", invariant.ErrNotAlgebraKind, k)
	}
	c := buildCall(opts)

	// 1) Cache hit.
	if cached := r.st.Algebra(k); cached != nil && c.precision == 0 {
		return cached, nil
	}
	prec := c.precision
	if prec == 0 {
		planned, err := r.planner.Next(k, r.st)
		if err != nil {
			return nil, err
		}
		prec = planned.Precision
	}

	// 2) Underlying field.
	fk := k.FieldOf()
	field := r.st.Field(fk)
	if field == nil {
		var err error
		if field, err = r.fields.Resolve(ctx, fk, AtPrecision(prec)); err != nil {
			return nil, err
		}
		if field == nil {
			return nil, nil
		}
	}

	// 3–4) Bounded epsilon escalation.
	start := time.Now()
	entries, err := r.search(ctx, k, field, prec)
	if errors.Is(err, ErrInsufficientSeparation) {
		r.record(k, prec, false, start)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	// 5) Record and build.
	ok := entries.firstOK && entries.secondOK
	if !ok {
		r.record(k, prec, false, start)
		return nil, nil
	}
	a := entries.first.Eval(field.Field)
	b := entries.second.Eval(field.Field)
	q, err := r.algebras.NewAlgebra(field.Field, a, b)
	if err != nil {
		return nil, fmt.Errorf("resolve: build %s over %s: %w", k, field.Field.Polynomial(), err)
	}
	r.record(k, prec, true, start)
	r.st.SetAlgebra(k, q)
	return q, nil
}

func (r *AlgebraResolver) search(ctx context.Context, k invariant.Kind, field *invariant.ResolvedField, prec int) (hilbertEntries, error) {
	host := r.st.Host()
	holonomy, err := host.Holonomy(r.opts.WordSearchPrecision)
	if err != nil {
		return hilbertEntries{}, fmt.Errorf("resolve: holonomy of %s: %w", host.Name(), err)
	}

	var deadline time.Time
	if r.opts.EpsilonBudget > 0 {
		deadline = time.Now().Add(r.opts.EpsilonBudget)
	}
	epsilon := r.opts.InitialEpsilon
	four, two := host.Constant(4), host.Constant(2)

	for round := 1; round <= r.opts.MaxEpsilonRounds; round++ {
		if err = ctx.Err(); err != nil {
			return hilbertEntries{}, err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			r.opts.Observer.EpsilonRounds(k, round-1, true)
			return hilbertEntries{}, fmt.Errorf("%w: %s after %s (%d rounds, epsilon %g)",
				ErrInsufficientSeparation, k, r.opts.EpsilonBudget, round-1, epsilon)
		}

		w1, w2, err := r.words.FindHilbertSymbolWords(ctx, holonomy, k.Power(), epsilon)
		if err != nil {
			return hilbertEntries{}, fmt.Errorf("resolve: word search for %s: %w", k, err)
		}
		approxFirst := host.ApproximateTrace(w1).Pow(2).Sub(four)
		approxSecond := host.ApproximateTrace(Commutator(w1, w2)).Sub(two)

		var e hilbertEntries
		e.first, e.firstOK = field.Root.Express(approxFirst, prec)
		e.second, e.secondOK = field.Root.Express(approxSecond, prec)
		if (e.firstOK && e.first.IsZero()) || (e.secondOK && e.second.IsZero()) {
			r.opts.Logger.Debug("hilbert symbol entry indistinguishable from zero",
				"manifold", host.Name(), "kind", k.Short(), "round", round, "epsilon", epsilon)
			epsilon *= r.opts.EpsilonFactor
			continue
		}
		r.opts.Observer.EpsilonRounds(k, round, false)
		return e, nil
	}

	r.opts.Observer.EpsilonRounds(k, r.opts.MaxEpsilonRounds, true)
	return hilbertEntries{}, fmt.Errorf("%w: %s after %d rounds (epsilon %g)",
		ErrInsufficientSeparation, k, r.opts.MaxEpsilonRounds, epsilon)
}

func (r *AlgebraResolver) record(k invariant.Kind, prec int, ok bool, start time.Time) {
	elapsed := time.Since(start)
	r.st.AlgebraAttempts(k).Record(prec, ok)
	r.opts.Observer.AlgebraAttempt(k, prec, ok, elapsed)
	r.opts.Logger.Debug("algebra search",
		"manifold", r.st.Host().Name(),
		"generation", r.st.Generation(),
		"kind", k.Short(),
		"precision", prec,
		"found", ok,
		"elapsed", elapsed)
}

// Commutator returns the word w1·w2·w1⁻¹·w2⁻¹. Generators are lower case
// letters and their inverses the matching upper case letters.
func Commutator(w1, w2 string) string {
	var b strings.Builder
	b.Grow(2 * (len(w1) + len(w2)))
	b.WriteString(w1)
	b.WriteString(w2)
	b.WriteString(InverseWord(w1))
	b.WriteString(InverseWord(w2))
	return b.String()
}

// InverseWord reverses w and swaps the case of every letter.
func InverseWord(w string) string {
	rs := []rune(w)
	out := make([]rune, len(rs))
	for i, r := range rs {
		switch {
		case unicode.IsUpper(r):
			r = unicode.ToLower(r)
		case unicode.IsLower(r):
			r = unicode.ToUpper(r)
		}
		out[len(rs)-1-i] = r
	}
	return string(out)
}
