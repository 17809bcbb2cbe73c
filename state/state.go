package state

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
)

// Sentinel errors.
var (
	// ErrNilHost is returned when a State is built without a host manifold.
	ErrNilHost = errors.New("state: host manifold is nil")

	// ErrNoGenerators is returned by searches on a State whose last Reset
	// could not pull the generator sequences.
	ErrNoGenerators = errors.New("state: generator sequences unavailable")
)

// slot is the storage for one kind.
type slot struct {
	field           *invariant.ResolvedField // field kinds only
	algebra         nt.QuaternionAlgebra     // algebra kinds only
	fieldAttempts   invariant.FieldAttempts
	algebraAttempts invariant.AlgebraAttempts
}

// State is the mutable invariant store of one manifold.
type State struct {
	host       nt.Manifold
	generation uuid.UUID
	modTwo     bool

	// gens[TraceField], gens[InvariantTraceField]; the other entries stay nil.
	gens  [invariant.KindCount]nt.GeneratorSequence
	slots [invariant.KindCount]slot

	denominators *invariant.IdealSet
	residueChars invariant.PrimeSet
}

// New builds the State of host, eagerly pulling the approximate generator
// sequences. For a mod-2 homology sphere both fields share one sequence.
func New(host nt.Manifold) (*State, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	s := &State{host: host}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load (re)initializes every field of s from the host. Cached invariants,
// attempt records and denominators are discarded and a new generation is
// issued before the sequences are pulled, so a failed pull leaves an empty
// State without generators.
func (s *State) load() error {
	s.generation = uuid.New()
	s.modTwo = IsModTwoHomologySphere(s.host.HomologyDivisors())
	s.gens = [invariant.KindCount]nt.GeneratorSequence{}
	for _, k := range invariant.Kinds {
		s.slots[k] = slot{
			fieldAttempts:   invariant.FieldAttempts{},
			algebraAttempts: invariant.AlgebraAttempts{},
		}
	}
	s.denominators = nil
	s.residueChars = nil

	tf, err := s.host.TraceFieldGens()
	if err != nil {
		return fmt.Errorf("state: trace field generators of %s: %w", s.host.Name(), err)
	}
	itf := tf
	if !s.modTwo {
		if itf, err = s.host.InvariantTraceFieldGens(); err != nil {
			return fmt.Errorf("state: invariant trace field generators of %s: %w", s.host.Name(), err)
		}
	}
	s.gens[invariant.TraceField] = tf
	s.gens[invariant.InvariantTraceField] = itf
	return nil
}

// Reset discards every invariant, attempt record and denominator and reloads
// the generator sequences. Call it after any change of the host's filling.
// On error the State stays empty and Generators returns nil until a later
// Reset succeeds.
func (s *State) Reset() error { return s.load() }

// IsModTwoHomologySphere reports whether no elementary divisor is zero or
// even, i.e. H_1 admits no surjection onto Z/2.
func IsModTwoHomologySphere(divisors []int) bool {
	for _, d := range divisors {
		if d%2 == 0 {
			return false
		}
	}
	return true
}

// Host returns the wrapped manifold.
func (s *State) Host() nt.Manifold { return s.host }

// Generation identifies the current contents; it changes on every Reset.
func (s *State) Generation() uuid.UUID { return s.generation }

// ModTwoHomologySphere reports the cached homology test.
func (s *State) ModTwoHomologySphere() bool { return s.modTwo }

// Generators returns the approximate generator sequence of a field kind.
func (s *State) Generators(k invariant.Kind) nt.GeneratorSequence {
	if !k.IsField() {
		return nil
	}
	return s.gens[k]
}

// Field returns the resolved field of a field kind, or nil.
func (s *State) Field(k invariant.Kind) *invariant.ResolvedField {
	if !k.IsField() {
		return nil
	}
	return s.slots[k].field
}

// SetField caches f for field kind k.
func (s *State) SetField(k invariant.Kind, f *invariant.ResolvedField) {
	if k.IsField() {
		s.slots[k].field = f
	}
}

// FieldDegree returns the degree of a resolved field kind.
func (s *State) FieldDegree(k invariant.Kind) (int, bool) {
	f := s.Field(k)
	if f == nil {
		return 0, false
	}
	return f.Field.Degree(), true
}

// Algebra returns the resolved algebra of an algebra kind, or nil.
func (s *State) Algebra(k invariant.Kind) nt.QuaternionAlgebra {
	if !k.IsAlgebra() {
		return nil
	}
	return s.slots[k].algebra
}

// SetAlgebra caches q for algebra kind k.
func (s *State) SetAlgebra(k invariant.Kind, q nt.QuaternionAlgebra) {
	if k.IsAlgebra() {
		s.slots[k].algebra = q
	}
}

// Resolved reports whether kind k has a cached value.
func (s *State) Resolved(k invariant.Kind) bool {
	if k.IsField() {
		return s.slots[k].field != nil
	}
	return k.IsAlgebra() && s.slots[k].algebra != nil
}

// FieldAttempts returns the live record of a field kind.
func (s *State) FieldAttempts(k invariant.Kind) invariant.FieldAttempts {
	if !k.IsField() {
		return nil
	}
	return s.slots[k].fieldAttempts
}

// AlgebraAttempts returns the live record of an algebra kind.
func (s *State) AlgebraAttempts(k invariant.Kind) invariant.AlgebraAttempts {
	if !k.IsAlgebra() {
		return nil
	}
	return s.slots[k].algebraAttempts
}

// Denominators returns the cached denominator set (nil when unknown).
func (s *State) Denominators() *invariant.IdealSet { return s.denominators }

// SetDenominators caches the denominator set.
func (s *State) SetDenominators(d *invariant.IdealSet) { s.denominators = d }

// ResidueCharacteristics returns the cached rational primes under the
// denominators (nil when unknown).
func (s *State) ResidueCharacteristics() invariant.PrimeSet { return s.residueChars }

// SetResidueCharacteristics caches the residue characteristics.
func (s *State) SetResidueCharacteristics(p invariant.PrimeSet) { s.residueChars = p }

// Known reports whether all four invariants and the denominators are cached.
func (s *State) Known() bool {
	for _, k := range invariant.Kinds {
		if !s.Resolved(k) {
			return false
		}
	}
	return s.denominators.Known()
}
