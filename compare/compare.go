package compare

import (
	"context"
	"fmt"
	"maps"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
)

// Comparator compares the invariants of two manifolds.
type Comparator struct {
	fields   nt.FieldLibrary
	algebras nt.AlgebraLibrary
	opts     Options
}

// New returns a Comparator using the given collaborators.
func New(fields nt.FieldLibrary, algebras nt.AlgebraLibrary, opts ...Option) (*Comparator, error) {
	if fields == nil || algebras == nil {
		return nil, ErrNilCollaborator
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Comparator{fields: fields, algebras: algebras, opts: cfg}, nil
}

// Compare returns one verdict per invariant. Both sides must have all four
// invariants and their denominators resolved.
func (c *Comparator) Compare(ctx context.Context, a, b Side) (Result, error) {
	if a.State == nil || b.State == nil || !a.State.Known() || !b.State.Known() {
		return Result{}, ErrUnresolved
	}

	var (
		res Result
		err error
	)
	res.TraceField = c.sameField(a, b, invariant.TraceField)
	res.InvariantTraceField = c.sameField(a, b, invariant.InvariantTraceField)
	if res.QuaternionAlgebra, err = c.sameAlgebra(ctx, a, b, invariant.QuaternionAlgebra); err != nil {
		return Result{}, err
	}
	if res.InvariantQuaternionAlgebra, err = c.sameAlgebra(ctx, a, b, invariant.InvariantQuaternionAlgebra); err != nil {
		return Result{}, err
	}
	if res.Denominators, err = c.sameDenominators(a, b); err != nil {
		return Result{}, err
	}

	c.opts.Logger.Debug("compared invariants",
		"a", a.State.Host().Name(), "b", b.State.Host().Name(), "same", res.Same())
	return res, nil
}

// SameInvariants reports whether all five verdicts of Compare are true.
func (c *Comparator) SameInvariants(ctx context.Context, a, b Side) (bool, error) {
	res, err := c.Compare(ctx, a, b)
	if err != nil {
		return false, err
	}
	return res.Same(), nil
}

func (c *Comparator) sameField(a, b Side, k invariant.Kind) bool {
	return c.fields.SameSubfield(a.State.Field(k).Field, b.State.Field(k).Field, false)
}

func (c *Comparator) sameAlgebra(ctx context.Context, a, b Side, k invariant.Kind) (bool, error) {
	fk := k.FieldOf()
	af, bf := a.State.Field(fk), b.State.Field(fk)
	aq, bq := a.State.Algebra(k), b.State.Algebra(k)

	// 1) Identical representations: no translation needed.
	if af.Field.Identical(bf.Field) {
		return aq.IsIsomorphic(bq), nil
	}

	// 2) Orientation does not matter for the algebra.
	if !c.fields.SameSubfield(af.Field, bf.Field, true) {
		return false, nil
	}

	// 3) Cheap ramification checks.
	if aq.RamifiedRealPlaces() != bq.RamifiedRealPlaces() {
		return false, nil
	}
	if !maps.Equal(nt.RamifiedResidueCharacteristics(aq), nt.RamifiedResidueCharacteristics(bq)) {
		return false, nil
	}

	// 4) Anchor b's generators in both roots. When the fields agree only up
	//    to conjugation, anchor b's conjugate instead.
	prec := max(a.plannedPrecision(k), b.plannedPrecision(k))
	sourceRoot, gens := bf.Root, b.State.Generators(fk)
	if !c.fields.SameSubfield(af.Field, bf.Field, false) {
		conj, err := c.conjugateField(ctx, b, fk)
		if err != nil {
			return false, err
		}
		sourceRoot, gens = conj.Root, conj.Sequence
	}
	iso, err := c.isomorphism(bf.Field, af.Field, sourceRoot, af.Root, gens, prec)
	if err != nil {
		return false, err
	}

	// 5) Transport and test.
	return aq.IsIsomorphic(bq.Transport(iso)), nil
}

func (c *Comparator) sameDenominators(a, b Side) (bool, error) {
	if !a.State.ResidueCharacteristics().Equal(b.State.ResidueCharacteristics()) {
		return false, nil
	}
	ta, tb := a.State.Field(invariant.TraceField), b.State.Field(invariant.TraceField)
	if ta.Field.Identical(tb.Field) {
		return a.State.Denominators().Equal(b.State.Denominators()), nil
	}
	if c.opts.Denominators == DenominatorsStrict {
		return false, nil
	}
	if !c.fields.IsIsomorphic(ta.Field, tb.Field) {
		return false, nil
	}

	prec := max(a.plannedPrecision(invariant.TraceField), b.plannedPrecision(invariant.TraceField))
	iso, err := c.isomorphism(tb.Field, ta.Field, tb.Root, ta.Root, b.State.Generators(invariant.TraceField), prec)
	if err != nil {
		return false, err
	}
	moved, err := b.State.Denominators().Map(func(i nt.Ideal) (nt.Ideal, error) {
		return iso.MapIdeal(i), nil
	})
	if err != nil {
		return false, err
	}
	return a.State.Denominators().Equal(moved), nil
}

// isomorphism builds source -> target by expressing every generator of gens
// in both numerical roots.
func (c *Comparator) isomorphism(source, target nt.Field, sourceRoot, targetRoot nt.ApproxNumber,
	gens nt.GeneratorSequence, prec int) (nt.FieldIsomorphism, error) {
	approx := gens.Generators()
	sourceAnchor := make([]nt.Expression, len(approx))
	targetAnchor := make([]nt.Expression, len(approx))
	for i, g := range approx {
		var ok bool
		if sourceAnchor[i], ok = sourceRoot.Express(g, prec); !ok {
			return nil, fmt.Errorf("%w: generator %d in %s at precision %d", ErrAnchor, i, source.Polynomial(), prec)
		}
		if targetAnchor[i], ok = targetRoot.Express(g, prec); !ok {
			return nil, fmt.Errorf("%w: generator %d in %s at precision %d", ErrAnchor, i, target.Polynomial(), prec)
		}
	}
	iso, err := c.fields.SpecialIsomorphism(source, target, sourceAnchor, targetAnchor)
	if err != nil {
		return nil, fmt.Errorf("compare: special isomorphism %s -> %s: %w", source.Polynomial(), target.Polynomial(), err)
	}
	return iso, nil
}
