package planner

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hypinv/invariant"
)

// Planner computes next coordinates. The zero value is not usable; call New.
type Planner struct {
	opts Options
}

// New returns a Planner configured by opts applied over DefaultOptions.
func New(opts ...Option) Planner {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Planner{opts: cfg}
}

// Options returns the effective configuration.
func (p Planner) Options() Options { return p.opts }

// Next returns the coordinate to try next for kind k.
// For algebra kinds only Precision is meaningful; Degree carries the
// associated field's planned degree.
func (p Planner) Next(k invariant.Kind, h History) (invariant.Coordinate, error) {
	switch {
	case k.IsField():
		return p.nextField(k, h), nil
	case k.IsAlgebra():
		field := p.nextField(k.FieldOf(), h)
		return invariant.Coordinate{Precision: p.nextAlgebraPrecision(k, h, field.Precision), Degree: field.Degree}, nil
	default:
		return invariant.Coordinate{}, fmt.Errorf("%w: %d", invariant.ErrUnknownKind, int(k))
	}
}

func (p Planner) nextField(k invariant.Kind, h History) invariant.Coordinate {
	record := h.FieldAttempts(k)

	// 1) Nothing tried yet.
	if len(record) == 0 {
		return invariant.Coordinate{Precision: p.opts.StartPrecision, Degree: p.opts.StartDegree}
	}

	// 2) Cheapest known-sufficient components.
	if c, ok := record.MinSuccess(); ok {
		return c
	}

	// 3) Escalate past the largest failures.
	failed, _ := record.MaxFailure()
	next := invariant.Coordinate{
		Precision: failed.Precision + p.opts.PrecisionIncrement,
		Degree:    failed.Degree + p.opts.DegreeIncrement,
	}

	// 4) Sibling correction.
	siblingDegree, known := h.FieldDegree(k.Sibling())
	if !known {
		return next
	}
	if k == invariant.InvariantTraceField {
		next.Degree = siblingDegree
		return next
	}
	if h.ModTwoHomologySphere() {
		next.Degree = siblingDegree
		return next
	}
	next.Degree = p.scaledDegree(next.Precision, siblingDegree)
	return next
}

// scaledDegree keeps the degree guess proportional to precision, rounded up
// to a multiple of the invariant trace field degree d2:
//
//	ceil(log2(precision·DegreeIncrement/PrecisionIncrement / d2) + 1) · d2
//
// The multiplier is at least 1, since the trace field contains the invariant
// trace field.
func (p Planner) scaledDegree(precision, d2 int) int {
	ratio := float64(p.opts.DegreeIncrement) / float64(p.opts.PrecisionIncrement)
	implied := float64(precision) * ratio
	mult := int(math.Ceil(math.Log2(implied/float64(d2)) + 1))
	if mult < 1 {
		mult = 1
	}
	return mult * d2
}

func (p Planner) nextAlgebraPrecision(k invariant.Kind, h History, fieldPrecision int) int {
	record := h.AlgebraAttempts(k)
	if len(record) == 0 {
		return fieldPrecision
	}
	if prec, ok := record.MinSuccess(); ok {
		return prec
	}
	failed, _ := record.MaxFailure()
	return max(failed+p.opts.PrecisionIncrement, fieldPrecision)
}
