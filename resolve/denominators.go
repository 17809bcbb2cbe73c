package resolve

import (
	"math/big"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
	"github.com/katalvlaran/hypinv/state"
)

// DenominatorAnalyzer finds the prime ideals of the trace field at which some
// trace field generator is not integral.
type DenominatorAnalyzer struct {
	st     *state.State
	fields nt.FieldLibrary
}

// NewDenominatorAnalyzer binds an analyzer to st.
func NewDenominatorAnalyzer(st *state.State, fields nt.FieldLibrary) (*DenominatorAnalyzer, error) {
	if st == nil {
		return nil, ErrNilState
	}
	if fields == nil {
		return nil, ErrNilCollaborator
	}
	return &DenominatorAnalyzer{st: st, fields: fields}, nil
}

// Analyze returns the denominator primes. The result is nil while the trace
// field generators are unknown and an empty set when every generator is
// integral. It also fills the residue characteristic cache.
func (a *DenominatorAnalyzer) Analyze() *invariant.IdealSet {
	if d := a.st.Denominators(); d.Known() {
		return d
	}
	tf := a.st.Field(invariant.TraceField)
	if tf == nil || tf.Generators == nil {
		return nil
	}

	primes := invariant.NewIdealSet()
	for _, g := range tf.Generators {
		for _, p := range g.DenominatorIdeal().Factor() {
			primes.Add(p)
		}
	}
	a.st.SetDenominators(primes)
	a.st.SetResidueCharacteristics(a.characteristics(primes))
	return primes
}

// ResidueCharacteristics returns the rational primes lying under the
// denominator primes, or nil while the denominators are unknown.
func (a *DenominatorAnalyzer) ResidueCharacteristics() invariant.PrimeSet {
	d := a.Analyze()
	if !d.Known() {
		return nil
	}
	if rc := a.st.ResidueCharacteristics(); rc != nil {
		return rc
	}
	rc := a.characteristics(d)
	a.st.SetResidueCharacteristics(rc)
	return rc
}

func (a *DenominatorAnalyzer) characteristics(primes *invariant.IdealSet) invariant.PrimeSet {
	var all []*big.Int
	for _, p := range primes.Sorted() {
		all = append(all, a.fields.PrimeFactors(p.AbsoluteNorm())...)
	}
	return invariant.NewPrimeSet(all...)
}
