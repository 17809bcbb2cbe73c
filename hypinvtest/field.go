package hypinvtest

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/hypinv/nt"
)

// Field is a labelled number field. Class identifies the abstract field,
// Embedding the complex place (+1, or -1 for the conjugate place).
type Field struct {
	Poly      string
	Class     string
	Embedding int
	Deg       int
	Real      int
	Complex   int
	Disc      int64
}

var _ nt.Field = (*Field)(nil)

// NewField returns a field with one complex place pair and no real places
// beyond what deg implies.
func NewField(class, poly string, deg int) *Field {
	return &Field{Poly: poly, Class: class, Embedding: 1, Deg: deg, Real: deg - 2, Complex: 1, Disc: -3}
}

func (f *Field) Degree() int            { return f.Deg }
func (f *Field) Signature() (int, int)  { return f.Real, f.Complex }
func (f *Field) Discriminant() *big.Int { return big.NewInt(f.Disc) }
func (f *Field) Polynomial() string     { return f.Poly }

// Identical reports pointer identity.
func (f *Field) Identical(o nt.Field) bool {
	g, ok := o.(*Field)
	return ok && g == f
}

// Conjugate returns the same abstract field at the conjugate place.
func (f *Field) Conjugate() *Field {
	g := *f
	g.Embedding = -f.Embedding
	return &g
}

// Element is a labelled field element with a fixed denominator ideal.
type Element struct {
	Label string
	Denom *Ideal
}

var _ nt.Element = (*Element)(nil)

func (e *Element) String() string { return e.Label }

// DenominatorIdeal returns Denom, or the unit ideal.
func (e *Element) DenominatorIdeal() nt.Ideal {
	if e.Denom == nil {
		return UnitIdeal
	}
	return e.Denom
}

// Ideal is a labelled ideal. A nil Primes slice makes the ideal prime
// (its own only factor) unless it is the unit ideal.
type Ideal struct {
	Label  string
	Norm   int64
	Primes []*Ideal
}

var _ nt.Ideal = (*Ideal)(nil)

// UnitIdeal is the trivial ideal (1); it has no prime factors.
var UnitIdeal = &Ideal{Label: "(1)", Norm: 1}

func (i *Ideal) Key() string            { return i.Label }
func (i *Ideal) AbsoluteNorm() *big.Int { return big.NewInt(i.Norm) }

// Factor returns the prime factors of i.
func (i *Ideal) Factor() []nt.Ideal {
	if i.Norm == 1 {
		return nil
	}
	if i.Primes == nil {
		return []nt.Ideal{i}
	}
	out := make([]nt.Ideal, len(i.Primes))
	for k, p := range i.Primes {
		out[k] = p
	}
	return out
}

// Iso is a recorded special isomorphism.
type Iso struct {
	Source, Target *Field
	// Rename maps ideal labels of the source to labels in the target.
	Rename map[string]string
}

var _ nt.FieldIsomorphism = (*Iso)(nil)

func (i *Iso) MapElement(e nt.Element) nt.Element {
	return &Element{Label: e.String()}
}

func (i *Iso) MapIdeal(id nt.Ideal) nt.Ideal {
	src := id.(*Ideal)
	out := *src
	if l, ok := i.Rename[src.Label]; ok {
		out.Label = l
	}
	return &out
}

// FieldLibrary implements nt.FieldLibrary over *Field values and counts calls.
type FieldLibrary struct {
	// Rename is handed to every isomorphism built.
	Rename map[string]string
	// SpecialIsoCalls counts SpecialIsomorphism invocations.
	SpecialIsoCalls int
	// LastAnchors keeps the anchors of the last SpecialIsomorphism call.
	LastSourceAnchor, LastTargetAnchor []nt.Expression
}

var _ nt.FieldLibrary = (*FieldLibrary)(nil)

func (l *FieldLibrary) SameSubfield(a, b nt.Field, upToConjugation bool) bool {
	fa, fb := a.(*Field), b.(*Field)
	if fa.Class != fb.Class {
		return false
	}
	return upToConjugation || fa.Embedding == fb.Embedding
}

func (l *FieldLibrary) IsIsomorphic(a, b nt.Field) bool {
	return a.(*Field).Class == b.(*Field).Class
}

func (l *FieldLibrary) SpecialIsomorphism(source, target nt.Field, sourceAnchor, targetAnchor []nt.Expression) (nt.FieldIsomorphism, error) {
	l.SpecialIsoCalls++
	l.LastSourceAnchor, l.LastTargetAnchor = sourceAnchor, targetAnchor
	if len(sourceAnchor) != len(targetAnchor) {
		return nil, fmt.Errorf("hypinvtest: anchor length mismatch %d != %d", len(sourceAnchor), len(targetAnchor))
	}
	return &Iso{Source: source.(*Field), Target: target.(*Field), Rename: l.Rename}, nil
}

func (l *FieldLibrary) Coerce(e nt.Element, f nt.Field) (nt.Element, error) {
	src := e.(*Element)
	out := *src
	return &out, nil
}

func (l *FieldLibrary) CoerceIdeal(i nt.Ideal, f nt.Field) (nt.Ideal, error) {
	src := i.(*Ideal)
	out := *src
	return &out, nil
}

// PrimeFactors factors n by trial division.
func (l *FieldLibrary) PrimeFactors(n *big.Int) []*big.Int {
	var out []*big.Int
	m := new(big.Int).Abs(n)
	one := big.NewInt(1)
	for p := big.NewInt(2); new(big.Int).Mul(p, p).Cmp(m) <= 0; p.Add(p, one) {
		if new(big.Int).Mod(m, p).Sign() != 0 {
			continue
		}
		out = append(out, new(big.Int).Set(p))
		for new(big.Int).Mod(m, p).Sign() == 0 {
			m.Quo(m, p)
		}
	}
	if m.Cmp(one) > 0 {
		out = append(out, m)
	}
	return out
}
