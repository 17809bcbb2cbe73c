package nt

import (
	"context"
	"math/big"
)

// Filling is one Dehn filling coefficient pair applied to a single cusp.
type Filling struct {
	Cusp      int
	Meridian  float64
	Longitude float64
}

// Manifold is the capability set the engine consumes from a host manifold.
// It deliberately exposes nothing beyond homology, volume, generator
// accessors, holonomy traces and the filling mutation.
type Manifold interface {
	// Name identifies the manifold in logs and reports.
	Name() string
	// HomologyDivisors returns the elementary divisors of H_1 (0 for a free factor).
	HomologyDivisors() []int
	Volume() float64

	// TraceFieldGens returns approximations of the trace field generators.
	TraceFieldGens() (GeneratorSequence, error)
	// InvariantTraceFieldGens returns approximations of the invariant trace
	// field generators.
	InvariantTraceFieldGens() (GeneratorSequence, error)

	// Holonomy returns the holonomy representation polished to precision bits.
	Holonomy(precision int) (Holonomy, error)
	// ApproximateTrace returns the trace of the group element named by word
	// as a number that can be evaluated at any precision.
	ApproximateTrace(word string) ApproxNumber
	// Constant lifts an integer into the approximate number domain.
	Constant(n int64) ApproxNumber

	// DehnFill changes the filling in place.
	DehnFill(fillings ...Filling) error
}

// Holonomy is an opaque polished holonomy representation handed to the
// word search.
type Holonomy interface {
	Precision() int
}

// FieldData is the triple produced by a successful field search.
type FieldData struct {
	Field      Field
	Root       ApproxNumber
	Generators []Element
}

// GeneratorSequence is a finite sequence of approximate algebraic numbers that
// generate a field.
type GeneratorSequence interface {
	// FindField searches for the field generated by the sequence using
	// precision bits and polynomials of degree at most degree. A nil result
	// with a nil error means nothing was found at that coordinate.
	FindField(ctx context.Context, precision, degree int, optimize bool) (*FieldData, error)
	// Conjugate returns the complex-conjugate sequence. Conjugating twice
	// yields a sequence equal to the receiver.
	Conjugate() GeneratorSequence
	// Generators returns the individual approximate generators.
	Generators() []ApproxNumber
}

// ApproxNumber is an algebraic number known through a numeric evaluator
// parameterized by requested precision.
type ApproxNumber interface {
	Add(other ApproxNumber) ApproxNumber
	Sub(other ApproxNumber) ApproxNumber
	Pow(n int) ApproxNumber
	// Express writes other as a polynomial in the receiver at the given
	// precision. ok is false when no expression was found. A returned
	// expression whose IsZero reports true could not be distinguished from
	// zero at this tolerance.
	Express(other ApproxNumber, precision int) (expr Expression, ok bool)
}

// Expression is a rational polynomial found by Express.
type Expression interface {
	IsZero() bool
	// Eval evaluates the polynomial at the generator of f.
	Eval(f Field) Element
}

// Field is an exact number field given by a monic minimal polynomial.
type Field interface {
	Degree() int
	// Signature returns the number of real places r and of complex place
	// pairs c.
	Signature() (r, c int)
	Discriminant() *big.Int
	// Polynomial renders the defining polynomial.
	Polynomial() string
	// Identical reports whether other is literally the same representation.
	Identical(other Field) bool
}

// Element is an exact element of a Field.
type Element interface {
	String() string
	// DenominatorIdeal returns the ideal of denominators of the element.
	DenominatorIdeal() Ideal
}

// Ideal is a fractional ideal of a number field.
type Ideal interface {
	// Key is a canonical identifier: equal ideals of the same field have
	// equal keys.
	Key() string
	// Factor returns the distinct prime ideals dividing the ideal.
	Factor() []Ideal
	AbsoluteNorm() *big.Int
}

// FieldIsomorphism maps objects of one concrete field into another.
type FieldIsomorphism interface {
	MapElement(e Element) Element
	MapIdeal(i Ideal) Ideal
}

// FieldLibrary groups the number-field operations the comparator needs.
type FieldLibrary interface {
	// SameSubfield reports whether a and b are the same subfield of the
	// complex numbers, optionally up to complex conjugation.
	SameSubfield(a, b Field, upToConjugation bool) bool
	IsIsomorphic(a, b Field) bool
	// SpecialIsomorphism builds the isomorphism source -> target that sends
	// sourceAnchor[i] to targetAnchor[i].
	SpecialIsomorphism(source, target Field, sourceAnchor, targetAnchor []Expression) (FieldIsomorphism, error)
	// Coerce reinterprets e, written in its own field's generator, in f.
	Coerce(e Element, f Field) (Element, error)
	// CoerceIdeal reinterprets an ideal's generators in f.
	CoerceIdeal(i Ideal, f Field) (Ideal, error)
	// PrimeFactors returns the distinct rational primes dividing n.
	PrimeFactors(n *big.Int) []*big.Int
}

// QuaternionAlgebra is a quaternion algebra over a number field given by a
// Hilbert symbol.
type QuaternionAlgebra interface {
	Field() Field
	// Invariants returns the Hilbert symbol entries.
	Invariants() (a, b Element)
	// RamifiedRealPlaces returns the number of real places at which the
	// algebra ramifies.
	RamifiedRealPlaces() int
	// RamifiedDyadicResidueCharacteristics counts ramified primes above 2.
	RamifiedDyadicResidueCharacteristics() map[int64]int
	// RamifiedNondyadicResidueCharacteristics counts ramified odd primes by
	// residue characteristic.
	RamifiedNondyadicResidueCharacteristics() map[int64]int
	IsIsomorphic(other QuaternionAlgebra) bool
	// Transport returns the algebra obtained by pushing the Hilbert symbol
	// through iso.
	Transport(iso FieldIsomorphism) QuaternionAlgebra
}

// AlgebraLibrary constructs quaternion algebras.
type AlgebraLibrary interface {
	NewAlgebra(f Field, a, b Element) (QuaternionAlgebra, error)
}

// WordSearcher finds a pair of words whose traces yield a Hilbert symbol:
// word1 is not parabolic and <word1, word2> is irreducible, both taken in the
// subgroup generated by power-th powers.
type WordSearcher interface {
	FindHilbertSymbolWords(ctx context.Context, h Holonomy, power int, epsilonCoefficient float64) (word1, word2 string, err error)
}

// RamifiedResidueCharacteristics merges the dyadic and nondyadic counters of q.
func RamifiedResidueCharacteristics(q QuaternionAlgebra) map[int64]int {
	out := make(map[int64]int)
	for p, n := range q.RamifiedDyadicResidueCharacteristics() {
		out[p] += n
	}
	for p, n := range q.RamifiedNondyadicResidueCharacteristics() {
		out[p] += n
	}
	return out
}
