package report

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hypinv/classify"
	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
	"github.com/katalvlaran/hypinv/state"
)

// Subject is what Build reads. engine.Manifold implements it.
type Subject interface {
	Name() string
	Volume() float64
	State() *state.State
}

// Field describes a resolved number field.
type Field struct {
	Polynomial    string               `yaml:"polynomial" json:"polynomial"`
	Degree        int                  `yaml:"degree" json:"degree"`
	RealPlaces    int                  `yaml:"real_places" json:"real_places"`
	ComplexPlaces int                  `yaml:"complex_places" json:"complex_places"`
	Discriminant  string               `yaml:"discriminant" json:"discriminant"`
	Root          string               `yaml:"root,omitempty" json:"root,omitempty"`
	FoundAt       invariant.Coordinate `yaml:"found_at" json:"found_at"`
}

// Algebra describes a resolved quaternion algebra.
type Algebra struct {
	HilbertSymbol [2]string `yaml:"hilbert_symbol" json:"hilbert_symbol"`
	RealRamified  int       `yaml:"real_ramified" json:"real_ramified"`
	// Ramified maps residue characteristics to the number of finite places
	// above them at which the algebra ramifies.
	Ramified map[int64]int `yaml:"ramified,omitempty" json:"ramified,omitempty"`
}

// Report is the snapshot of one manifold.
type Report struct {
	Name       string  `yaml:"name" json:"name"`
	Volume     float64 `yaml:"volume" json:"volume"`
	Generation string  `yaml:"generation" json:"generation"`

	TraceField                 *Field   `yaml:"trace_field,omitempty" json:"trace_field,omitempty"`
	InvariantTraceField        *Field   `yaml:"invariant_trace_field,omitempty" json:"invariant_trace_field,omitempty"`
	QuaternionAlgebra          *Algebra `yaml:"quaternion_algebra,omitempty" json:"quaternion_algebra,omitempty"`
	InvariantQuaternionAlgebra *Algebra `yaml:"invariant_quaternion_algebra,omitempty" json:"invariant_quaternion_algebra,omitempty"`

	// Denominators is nil while unknown.
	Denominators           []string `yaml:"denominators" json:"denominators"`
	ResidueCharacteristics []string `yaml:"residue_characteristics,omitempty" json:"residue_characteristics,omitempty"`
	// IntegerTraces is nil while the denominators are unknown.
	IntegerTraces *bool `yaml:"integer_traces" json:"integer_traces"`

	Arithmetic classify.Verdict `yaml:"arithmetic" json:"arithmetic"`
	// Unknown lists the short names of unresolved invariants, plus
	// "denominators" when those are unknown.
	Unknown []string `yaml:"unknown,omitempty" json:"unknown,omitempty"`
}

// Build snapshots s. It reads only cached values.
func Build(s Subject) Report {
	st := s.State()
	r := Report{
		Name:       s.Name(),
		Volume:     s.Volume(),
		Generation: st.Generation().String(),
	}

	r.TraceField = field(st.Field(invariant.TraceField))
	r.InvariantTraceField = field(st.Field(invariant.InvariantTraceField))
	r.QuaternionAlgebra = algebra(st.Algebra(invariant.QuaternionAlgebra))
	r.InvariantQuaternionAlgebra = algebra(st.Algebra(invariant.InvariantQuaternionAlgebra))
	for _, k := range invariant.Kinds {
		if !st.Resolved(k) {
			r.Unknown = append(r.Unknown, k.Short())
		}
	}

	if d := st.Denominators(); d.Known() {
		r.Denominators = d.Keys()
		integral := d.Len() == 0
		r.IntegerTraces = &integral
		if rc := st.ResidueCharacteristics(); rc != nil {
			r.ResidueCharacteristics = rc.Strings()
		}
	} else {
		r.Unknown = append(r.Unknown, "denominators")
	}

	var itf nt.Field
	if f := st.Field(invariant.InvariantTraceField); f != nil {
		itf = f.Field
	}
	r.Arithmetic = classify.Classify(itf, st.Algebra(invariant.InvariantQuaternionAlgebra), st.Denominators())
	return r
}

// YAML encodes r with two-space indentation.
func (r Report) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("report: encode %s: %w", r.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("report: encode %s: %w", r.Name, err)
	}
	return buf.Bytes(), nil
}

func field(f *invariant.ResolvedField) *Field {
	if f == nil {
		return nil
	}
	r, c := f.Field.Signature()
	out := &Field{
		Polynomial:    f.Field.Polynomial(),
		Degree:        f.Field.Degree(),
		RealPlaces:    r,
		ComplexPlaces: c,
		FoundAt:       f.Coordinate,
	}
	if d := f.Field.Discriminant(); d != nil {
		out.Discriminant = d.String()
	}
	if s, ok := f.Root.(fmt.Stringer); ok {
		out.Root = s.String()
	}
	return out
}

func algebra(q nt.QuaternionAlgebra) *Algebra {
	if q == nil {
		return nil
	}
	a, b := q.Invariants()
	out := &Algebra{RealRamified: q.RamifiedRealPlaces()}
	if a != nil && b != nil {
		out.HilbertSymbol = [2]string{a.String(), b.String()}
	}
	if ram := nt.RamifiedResidueCharacteristics(q); len(ram) > 0 {
		out.Ramified = maps.Clone(ram)
	}
	return out
}
