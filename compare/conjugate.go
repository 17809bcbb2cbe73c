package compare

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
)

// ConjugateField is a field resolved from a conjugated generator sequence.
type ConjugateField struct {
	*invariant.ResolvedField
	Sequence nt.GeneratorSequence
}

// Conjugated holds a manifold's invariants under the complex-conjugate
// embedding, i.e. the same manifold with the opposite orientation.
// Entries whose original counterpart is unresolved stay nil.
type Conjugated struct {
	TraceField                 *ConjugateField
	InvariantTraceField        *ConjugateField
	QuaternionAlgebra          nt.QuaternionAlgebra
	InvariantQuaternionAlgebra nt.QuaternionAlgebra
	Denominators               *invariant.IdealSet
}

// Field returns the conjugate field of a field kind.
func (c *Conjugated) Field(k invariant.Kind) *ConjugateField {
	if k == invariant.InvariantTraceField {
		return c.InvariantTraceField
	}
	return c.TraceField
}

// Conjugate derives the conjugate invariants of side without changing it.
// Each resolved field is searched again from the conjugated generators at the
// coordinate it was originally found at; algebras and denominators are
// reinterpreted in the conjugate fields.
func (c *Comparator) Conjugate(ctx context.Context, side Side) (*Conjugated, error) {
	if side.State == nil {
		return nil, ErrUnresolved
	}
	out := &Conjugated{}
	for _, fk := range []invariant.Kind{invariant.TraceField, invariant.InvariantTraceField} {
		if !side.State.Resolved(fk) {
			continue
		}
		f, err := c.conjugateField(ctx, side, fk)
		if err != nil {
			return nil, err
		}
		if fk == invariant.TraceField {
			out.TraceField = f
		} else {
			out.InvariantTraceField = f
		}
	}

	for _, k := range []invariant.Kind{invariant.QuaternionAlgebra, invariant.InvariantQuaternionAlgebra} {
		q := side.State.Algebra(k)
		f := out.Field(k.FieldOf())
		if q == nil || f == nil {
			continue
		}
		cq, err := c.conjugateAlgebra(q, f.Field)
		if err != nil {
			return nil, fmt.Errorf("compare: conjugate %s: %w", k, err)
		}
		if k == invariant.QuaternionAlgebra {
			out.QuaternionAlgebra = cq
		} else {
			out.InvariantQuaternionAlgebra = cq
		}
	}

	if d := side.State.Denominators(); d.Known() && out.TraceField != nil {
		moved, err := d.Map(func(i nt.Ideal) (nt.Ideal, error) {
			return c.fields.CoerceIdeal(i, out.TraceField.Field)
		})
		if err != nil {
			return nil, fmt.Errorf("compare: conjugate denominators: %w", err)
		}
		out.Denominators = moved
	}
	return out, nil
}

func (c *Comparator) conjugateField(ctx context.Context, side Side, fk invariant.Kind) (*ConjugateField, error) {
	orig := side.State.Field(fk)
	if orig == nil {
		return nil, ErrUnresolved
	}
	gens := side.State.Generators(fk).Conjugate()
	at := orig.Coordinate
	data, err := gens.FindField(ctx, at.Precision, at.Degree, true)
	if err != nil {
		return nil, fmt.Errorf("compare: conjugate %s search at %s: %w", fk, at, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s at %s", ErrConjugate, fk, at)
	}
	return &ConjugateField{ResolvedField: invariant.NewResolvedField(data, at), Sequence: gens}, nil
}

func (c *Comparator) conjugateAlgebra(q nt.QuaternionAlgebra, f nt.Field) (nt.QuaternionAlgebra, error) {
	a, b := q.Invariants()
	ca, err := c.fields.Coerce(a, f)
	if err != nil {
		return nil, err
	}
	cb, err := c.fields.Coerce(b, f)
	if err != nil {
		return nil, err
	}
	return c.algebras.NewAlgebra(f, ca, cb)
}
