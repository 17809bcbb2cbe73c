package hypinvtest

import (
	"strconv"

	"github.com/katalvlaran/hypinv/nt"
)

// Holonomy records the precision it was polished to.
type Holonomy struct{ Bits int }

func (h Holonomy) Precision() int { return h.Bits }

// Manifold is a host manifold backed by fixed sequences.
type Manifold struct {
	ManifoldName string
	Divisors     []int
	Vol          float64
	TF, ITF      *Sequence
	GensErr      error
	Fillings     []nt.Filling
	// OnFill runs after every DehnFill; use it to swap sequences.
	OnFill func(m *Manifold)
	// GensCalls counts generator pulls (both kinds).
	GensCalls int
}

var _ nt.Manifold = (*Manifold)(nil)

func (m *Manifold) Name() string            { return m.ManifoldName }
func (m *Manifold) HomologyDivisors() []int { return m.Divisors }
func (m *Manifold) Volume() float64         { return m.Vol }

func (m *Manifold) TraceFieldGens() (nt.GeneratorSequence, error) {
	m.GensCalls++
	if m.GensErr != nil {
		return nil, m.GensErr
	}
	return m.TF, nil
}

func (m *Manifold) InvariantTraceFieldGens() (nt.GeneratorSequence, error) {
	m.GensCalls++
	if m.GensErr != nil {
		return nil, m.GensErr
	}
	return m.ITF, nil
}

func (m *Manifold) Holonomy(precision int) (nt.Holonomy, error) {
	return Holonomy{Bits: precision}, nil
}

func (m *Manifold) ApproximateTrace(word string) nt.ApproxNumber {
	return &Number{Label: "tr(" + word + ")"}
}

func (m *Manifold) Constant(n int64) nt.ApproxNumber {
	return &Number{Label: strconv.FormatInt(n, 10)}
}

func (m *Manifold) DehnFill(fillings ...nt.Filling) error {
	m.Fillings = append(m.Fillings, fillings...)
	if m.OnFill != nil {
		m.OnFill(m)
	}
	return nil
}

// Fixture bundles a manifold with collaborators wired to it.
//
// The trace field is a cubic with one real place; the invariant trace field
// is a quadratic imaginary field. Both are found from precision 1000 and
// degree 20 upwards, i.e. at the planner defaults. Quaternion algebras over
// the cubic ramify at its real place.
type Fixture struct {
	Manifold            *Manifold
	TraceField          *Field
	InvariantTraceField *Field
	Root, InvariantRoot *Number
	Fields              *FieldLibrary
	Algebras            *AlgebraLibrary
	Words               *WordSearcher
}

// Shared abstract fields; fixtures for different manifolds reuse them so that
// comparisons can hit the "identical representation" path.
var (
	Cubic     = &Field{Poly: "x^3 - x^2 + 1", Class: "cubic-23", Embedding: 1, Deg: 3, Real: 1, Complex: 1, Disc: -23}
	Quadratic = &Field{Poly: "x^2 - x + 1", Class: "quadratic-3", Embedding: 1, Deg: 2, Real: 0, Complex: 1, Disc: -3}
)

// NewFixture builds a fixture for a manifold named name over the shared
// Cubic and Quadratic fields. H_1 = Z/2, so it is not a mod-2 homology sphere.
func NewFixture(name string) *Fixture {
	return NewFixtureOver(name, Cubic, Quadratic)
}

// NewFixtureOver builds a fixture whose fields are tf and itf.
func NewFixtureOver(name string, tf, itf *Field) *Fixture {
	root := &Number{Label: "z_" + name, Table: map[string]Expression{DegenerateEntry: {Label: DegenerateEntry, Zero: true}}}
	iroot := &Number{Label: "w_" + name, Table: map[string]Expression{DegenerateEntry: {Label: DegenerateEntry, Zero: true}}}

	tfData := &nt.FieldData{Field: tf, Root: root, Generators: []nt.Element{&Element{Label: "z"}}}
	tfConj := &nt.FieldData{Field: tf.Conjugate(), Root: &Number{Label: "zbar_" + name}, Generators: []nt.Element{&Element{Label: "zbar"}}}
	itfData := &nt.FieldData{Field: itf, Root: iroot, Generators: []nt.Element{&Element{Label: "w"}}}
	itfConj := &nt.FieldData{Field: itf.Conjugate(), Root: &Number{Label: "wbar_" + name}, Generators: []nt.Element{&Element{Label: "wbar"}}}

	m := &Manifold{
		ManifoldName: name,
		Divisors:     []int{2},
		Vol:          2.0298832128,
		TF:           NewSequence(name+"/tf", tfData, tfConj, 1000, 20, &Number{Label: name + "/g1"}, &Number{Label: name + "/g2"}),
		ITF:          NewSequence(name+"/itf", itfData, itfConj, 1000, 20, &Number{Label: name + "/h1"}),
	}
	return &Fixture{
		Manifold:            m,
		TraceField:          tf,
		InvariantTraceField: itf,
		Root:                root,
		InvariantRoot:       iroot,
		Fields:              &FieldLibrary{},
		Algebras: &AlgebraLibrary{Templates: map[string]Algebra{
			tf.Poly:  {RealRamified: tf.Real, Nondyadic: map[int64]int{5: 1}},
			itf.Poly: {RealRamified: itf.Real, Dyadic: map[int64]int{2: 1}},
		}},
		Words: &WordSearcher{},
	}
}

// Integral makes every trace field generator integral (empty denominators).
func (f *Fixture) Integral() *Fixture {
	f.Manifold.TF.Data.Generators = []nt.Element{&Element{Label: "z"}}
	return f
}

// WithDenominator makes the first trace field generator non-integral at a
// prime of norm p.
func (f *Fixture) WithDenominator(label string, p int64) *Fixture {
	f.Manifold.TF.Data.Generators = []nt.Element{
		&Element{Label: "z/" + label, Denom: &Ideal{Label: label, Norm: p}},
	}
	return f
}
