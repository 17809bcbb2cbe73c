package hypinvtest

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hypinv/nt"
)

// Number is a labelled approximate number. Arithmetic builds new labels, so
// tr(a)^2-4 is the label of ApproximateTrace("a").Pow(2).Sub(Constant(4)).
type Number struct {
	Label string
	// Table overrides what Express returns for a given label; unlisted labels
	// are expressible as a non-zero expression carrying the same label.
	Table map[string]Expression
	// MinPrecision makes every Express below it fail.
	MinPrecision int
}

var _ nt.ApproxNumber = (*Number)(nil)

func label(n nt.ApproxNumber) string { return n.(*Number).Label }

func (n *Number) Add(o nt.ApproxNumber) nt.ApproxNumber {
	return &Number{Label: n.Label + "+" + label(o)}
}

func (n *Number) Sub(o nt.ApproxNumber) nt.ApproxNumber {
	return &Number{Label: n.Label + "-" + label(o)}
}

func (n *Number) Pow(k int) nt.ApproxNumber {
	return &Number{Label: fmt.Sprintf("%s^%d", n.Label, k)}
}

// Express looks other up in Table.
func (n *Number) Express(other nt.ApproxNumber, precision int) (nt.Expression, bool) {
	if precision < n.MinPrecision {
		return nil, false
	}
	l := label(other)
	if e, ok := n.Table[l]; ok {
		if e.Absent {
			return nil, false
		}
		return &e, true
	}
	return &Expression{Label: l}, true
}

// Expression is a labelled polynomial.
type Expression struct {
	Label string
	Zero  bool
	// Absent marks a Table entry that Express cannot find.
	Absent bool
}

var _ nt.Expression = (*Expression)(nil)

func (e *Expression) IsZero() bool { return e.Zero }

// Eval returns an element labelled after the expression.
func (e *Expression) Eval(nt.Field) nt.Element { return &Element{Label: e.Label} }

// SearchLog counts searches shared by a sequence and its conjugates.
type SearchLog struct {
	Calls       int
	Coordinates [][2]int
}

// Sequence is a generator sequence whose field is found at any coordinate
// component-wise above (MinPrecision, MinDegree).
type Sequence struct {
	Label         string
	Conjugated    bool
	MinPrecision  int
	MinDegree     int
	Data          *nt.FieldData
	ConjugateData *nt.FieldData
	Gens          []nt.ApproxNumber
	Err           error
	Log           *SearchLog
}

var _ nt.GeneratorSequence = (*Sequence)(nil)

// NewSequence returns a sequence finding data at or above (minPrec, minDeg).
func NewSequence(label string, data, conj *nt.FieldData, minPrec, minDeg int, gens ...nt.ApproxNumber) *Sequence {
	return &Sequence{
		Label:         label,
		MinPrecision:  minPrec,
		MinDegree:     minDeg,
		Data:          data,
		ConjugateData: conj,
		Gens:          gens,
		Log:           &SearchLog{},
	}
}

func (s *Sequence) FindField(ctx context.Context, precision, degree int, optimize bool) (*nt.FieldData, error) {
	s.Log.Calls++
	s.Log.Coordinates = append(s.Log.Coordinates, [2]int{precision, degree})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if precision < s.MinPrecision || degree < s.MinDegree {
		return nil, nil
	}
	if s.Conjugated {
		return s.ConjugateData, nil
	}
	return s.Data, nil
}

// Conjugate flips the conjugation flag; the search log is shared.
func (s *Sequence) Conjugate() nt.GeneratorSequence {
	c := *s
	c.Conjugated = !s.Conjugated
	return &c
}

func (s *Sequence) Generators() []nt.ApproxNumber { return s.Gens }

// Algebra is a labelled quaternion algebra. Two algebras are isomorphic when
// their fields share a class and their Class labels agree.
type Algebra struct {
	F            *Field
	A, B         nt.Element
	RealRamified int
	Dyadic       map[int64]int
	Nondyadic    map[int64]int
	Class        string
}

var _ nt.QuaternionAlgebra = (*Algebra)(nil)

func (q *Algebra) Field() nt.Field                  { return q.F }
func (q *Algebra) Invariants() (nt.Element, nt.Element) { return q.A, q.B }
func (q *Algebra) RamifiedRealPlaces() int          { return q.RealRamified }

func (q *Algebra) RamifiedDyadicResidueCharacteristics() map[int64]int    { return q.Dyadic }
func (q *Algebra) RamifiedNondyadicResidueCharacteristics() map[int64]int { return q.Nondyadic }

func (q *Algebra) IsIsomorphic(o nt.QuaternionAlgebra) bool {
	p := o.(*Algebra)
	return q.F.Class == p.F.Class && q.Class == p.Class
}

// Transport moves q onto the isomorphism's target field.
func (q *Algebra) Transport(iso nt.FieldIsomorphism) nt.QuaternionAlgebra {
	out := *q
	out.F = iso.(*Iso).Target
	return &out
}

// AlgebraLibrary builds algebras from per-polynomial templates.
type AlgebraLibrary struct {
	// Templates maps a field polynomial to the ramification of algebras
	// built over it. Class, when empty, becomes "a|b".
	Templates map[string]Algebra
	Built     int
	Err       error
}

var _ nt.AlgebraLibrary = (*AlgebraLibrary)(nil)

func (l *AlgebraLibrary) NewAlgebra(f nt.Field, a, b nt.Element) (nt.QuaternionAlgebra, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	l.Built++
	field := f.(*Field)
	out := l.Templates[field.Poly]
	out.F, out.A, out.B = field, a, b
	if out.Class == "" {
		out.Class = a.String() + "|" + b.String()
	}
	return &out, nil
}

// WordSearcher returns the degenerate pair ("z", "b") for the first
// DegenerateRounds calls and ("a", "b") afterwards.
type WordSearcher struct {
	DegenerateRounds int
	Epsilons         []float64
	Powers           []int
	Err              error
}

var _ nt.WordSearcher = (*WordSearcher)(nil)

func (w *WordSearcher) FindHilbertSymbolWords(ctx context.Context, h nt.Holonomy, power int, eps float64) (string, string, error) {
	if w.Err != nil {
		return "", "", w.Err
	}
	w.Epsilons = append(w.Epsilons, eps)
	w.Powers = append(w.Powers, power)
	if len(w.Epsilons) <= w.DegenerateRounds {
		return "z", "b", nil
	}
	return "a", "b", nil
}

// DegenerateEntry is the label of tr(z)^2-4, which roots built by NewFixture
// cannot distinguish from zero.
const DegenerateEntry = "tr(z)^2-4"
