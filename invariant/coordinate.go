package invariant

import (
	"fmt"
	"sort"
)

// Coordinate is a (precision, degree) pair at which a field search runs.
// Coordinates are only partially ordered: compare them with LessEq, never
// sort them as if the order were total.
type Coordinate struct {
	Precision int `yaml:"precision" json:"precision"`
	Degree    int `yaml:"degree" json:"degree"`
}

// LessEq reports whether c is component-wise ≤ o.
func (c Coordinate) LessEq(o Coordinate) bool {
	return c.Precision <= o.Precision && c.Degree <= o.Degree
}

// String renders c as "(precision, degree)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Precision, c.Degree)
}

// FieldAttempts records field search outcomes by coordinate.
// Recording a coordinate twice overwrites the earlier outcome.
type FieldAttempts map[Coordinate]bool

// Record stores ok at c.
func (a FieldAttempts) Record(c Coordinate, ok bool) { a[c] = ok }

// AnySuccess reports whether any attempt succeeded.
func (a FieldAttempts) AnySuccess() bool {
	for _, ok := range a {
		if ok {
			return true
		}
	}
	return false
}

// MinSuccess returns the smallest successful precision and the smallest
// successful degree, each taken independently. The pair need not have been
// attempted. ok is false when nothing succeeded.
func (a FieldAttempts) MinSuccess() (c Coordinate, ok bool) {
	for at, success := range a {
		if !success {
			continue
		}
		if !ok {
			c, ok = at, true
			continue
		}
		c.Precision = min(c.Precision, at.Precision)
		c.Degree = min(c.Degree, at.Degree)
	}
	return c, ok
}

// MaxFailure returns the largest failed precision and the largest failed
// degree, each taken independently. ok is false when nothing failed.
func (a FieldAttempts) MaxFailure() (c Coordinate, ok bool) {
	for at, success := range a {
		if success {
			continue
		}
		if !ok {
			c, ok = at, true
			continue
		}
		c.Precision = max(c.Precision, at.Precision)
		c.Degree = max(c.Degree, at.Degree)
	}
	return c, ok
}

// Sorted returns the attempted coordinates ordered by precision, then degree.
// The order is for display only.
func (a FieldAttempts) Sorted() []Coordinate {
	out := make([]Coordinate, 0, len(a))
	for c := range a {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Precision != out[j].Precision {
			return out[i].Precision < out[j].Precision
		}
		return out[i].Degree < out[j].Degree
	})
	return out
}

// AlgebraAttempts records algebra resolution outcomes by precision alone.
// Overwrite semantics match FieldAttempts.
type AlgebraAttempts map[int]bool

// Record stores ok at precision p.
func (a AlgebraAttempts) Record(p int, ok bool) { a[p] = ok }

// MinSuccess returns the smallest successful precision.
func (a AlgebraAttempts) MinSuccess() (p int, ok bool) {
	for at, success := range a {
		if success && (!ok || at < p) {
			p, ok = at, true
		}
	}
	return p, ok
}

// MaxFailure returns the largest failed precision.
func (a AlgebraAttempts) MaxFailure() (p int, ok bool) {
	for at, success := range a {
		if !success && (!ok || at > p) {
			p, ok = at, true
		}
	}
	return p, ok
}

// Sorted returns the attempted precisions in increasing order.
func (a AlgebraAttempts) Sorted() []int {
	out := make([]int, 0, len(a))
	for p := range a {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
