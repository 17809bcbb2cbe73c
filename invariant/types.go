package invariant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/hypinv/nt"
)

// Sentinel errors.
var (
	// ErrUnknownKind is returned when a kind name or value is not recognized.
	ErrUnknownKind = errors.New("invariant: unknown invariant kind")

	// ErrNotFieldKind is returned when a field operation receives an algebra kind.
	ErrNotFieldKind = errors.New("invariant: kind is not a field kind")

	// ErrNotAlgebraKind is returned when an algebra operation receives a field kind.
	ErrNotAlgebraKind = errors.New("invariant: kind is not an algebra kind")
)

// Kind enumerates the four resolvable invariants.
type Kind int

const (
	TraceField Kind = iota
	InvariantTraceField
	QuaternionAlgebra
	InvariantQuaternionAlgebra
)

// KindCount is the number of kinds; arrays indexed by Kind use it as length.
const KindCount = 4

// Kinds lists every kind in canonical order.
var Kinds = [KindCount]Kind{TraceField, InvariantTraceField, QuaternionAlgebra, InvariantQuaternionAlgebra}

var kindNames = [KindCount]string{
	"trace field",
	"invariant trace field",
	"quaternion algebra",
	"invariant quaternion algebra",
}

var kindShort = [KindCount]string{"tf", "itf", "qa", "iqa"}

// String returns the long name of k.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Short returns the abbreviated name of k ("tf", "itf", "qa", "iqa").
func (k Kind) Short() string {
	if !k.Valid() {
		return ""
	}
	return kindShort[k]
}

// Valid reports whether k is one of the four kinds.
func (k Kind) Valid() bool { return k >= TraceField && k <= InvariantQuaternionAlgebra }

// IsField reports whether k names a field.
func (k Kind) IsField() bool { return k == TraceField || k == InvariantTraceField }

// IsAlgebra reports whether k names a quaternion algebra.
func (k Kind) IsAlgebra() bool { return k == QuaternionAlgebra || k == InvariantQuaternionAlgebra }

// FieldOf returns the field an algebra kind is defined over; field kinds map
// to themselves.
func (k Kind) FieldOf() Kind {
	switch k {
	case QuaternionAlgebra:
		return TraceField
	case InvariantQuaternionAlgebra:
		return InvariantTraceField
	default:
		return k
	}
}

// AlgebraOf returns the algebra defined over a field kind; algebra kinds map
// to themselves.
func (k Kind) AlgebraOf() Kind {
	switch k {
	case TraceField:
		return QuaternionAlgebra
	case InvariantTraceField:
		return InvariantQuaternionAlgebra
	default:
		return k
	}
}

// Sibling returns the other field kind (TraceField <-> InvariantTraceField).
func (k Kind) Sibling() Kind {
	if k == TraceField {
		return InvariantTraceField
	}
	return TraceField
}

// Power is the word-search power parameter: 1 for the (non-invariant)
// quaternion algebra, 2 for the invariant one. Field kinds follow their algebra.
func (k Kind) Power() int {
	if k.AlgebraOf() == InvariantQuaternionAlgebra {
		return 2
	}
	return 1
}

// ParseKind maps a long or abbreviated name to its Kind. Matching ignores
// case and surrounding whitespace.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i := range kindNames {
		if n == kindNames[i] || n == kindShort[i] {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.Short()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ResolvedField is the cached outcome of a successful field search.
type ResolvedField struct {
	Field nt.Field
	// Root is the distinguished numerical root of the defining polynomial.
	Root nt.ApproxNumber
	// Generators are the exact images of the approximate generators.
	Generators []nt.Element
	// Coordinate is where the search succeeded.
	Coordinate Coordinate
}

// NewResolvedField wraps a collaborator result.
func NewResolvedField(d *nt.FieldData, at Coordinate) *ResolvedField {
	return &ResolvedField{
		Field:      d.Field,
		Root:       d.Root,
		Generators: d.Generators,
		Coordinate: at,
	}
}
