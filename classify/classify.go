package classify

import (
	"errors"

	"github.com/katalvlaran/hypinv/invariant"
	"github.com/katalvlaran/hypinv/nt"
)

// ErrUnresolved indicates that a required invariant has not been resolved.
var ErrUnresolved = errors.New("classify: invariant trace field, invariant quaternion algebra and denominators must be resolved")

// Verdict is the tri-state arithmeticity answer used in reports.
type Verdict int

const (
	Unknown Verdict = iota
	Arithmetic
	NonArithmetic
)

// String returns "unknown", "arithmetic" or "non-arithmetic".
func (v Verdict) String() string {
	switch v {
	case Arithmetic:
		return "arithmetic"
	case NonArithmetic:
		return "non-arithmetic"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// IsArithmetic reports whether k == r and c == 1 and denominators is empty,
// where (r, c) is the signature of itf and k the number of real places at
// which iqa ramifies. Any nil input yields ErrUnresolved.
func IsArithmetic(itf nt.Field, iqa nt.QuaternionAlgebra, denominators *invariant.IdealSet) (bool, error) {
	if itf == nil || iqa == nil || !denominators.Known() {
		return false, ErrUnresolved
	}
	r, c := itf.Signature()
	return iqa.RamifiedRealPlaces() == r && c == 1 && denominators.Len() == 0, nil
}

// Classify is IsArithmetic folded into a Verdict; missing inputs give Unknown.
func Classify(itf nt.Field, iqa nt.QuaternionAlgebra, denominators *invariant.IdealSet) Verdict {
	ok, err := IsArithmetic(itf, iqa, denominators)
	switch {
	case err != nil:
		return Unknown
	case ok:
		return Arithmetic
	default:
		return NonArithmetic
	}
}
