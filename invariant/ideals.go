package invariant

import (
	"math/big"
	"sort"

	"github.com/katalvlaran/hypinv/nt"
)

// IdealSet is a set of ideals keyed by nt.Ideal.Key.
// A nil *IdealSet means "not computed"; an empty one means "computed, none".
type IdealSet struct {
	m map[string]nt.Ideal
}

// NewIdealSet returns an empty, known set containing ideals.
func NewIdealSet(ideals ...nt.Ideal) *IdealSet {
	s := &IdealSet{m: make(map[string]nt.Ideal, len(ideals))}
	for _, i := range ideals {
		s.Add(i)
	}
	return s
}

// Add inserts i.
func (s *IdealSet) Add(i nt.Ideal) { s.m[i.Key()] = i }

// Len returns the number of ideals; zero for a nil set.
func (s *IdealSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Known reports whether the set has been computed.
func (s *IdealSet) Known() bool { return s != nil }

// Contains reports whether an ideal with i's key is present.
func (s *IdealSet) Contains(i nt.Ideal) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[i.Key()]
	return ok
}

// Equal reports whether s and o hold the same keys. Two unknown sets are
// equal; an unknown set never equals a known one.
func (s *IdealSet) Equal(o *IdealSet) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	if len(s.m) != len(o.m) {
		return false
	}
	for k := range s.m {
		if _, ok := o.m[k]; !ok {
			return false
		}
	}
	return true
}

// Map returns a new set with f applied to every ideal.
func (s *IdealSet) Map(f func(nt.Ideal) (nt.Ideal, error)) (*IdealSet, error) {
	if s == nil {
		return nil, nil
	}
	out := NewIdealSet()
	for _, i := range s.Sorted() {
		j, err := f(i)
		if err != nil {
			return nil, err
		}
		out.Add(j)
	}
	return out, nil
}

// Sorted returns the ideals ordered by key.
func (s *IdealSet) Sorted() []nt.Ideal {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]nt.Ideal, len(keys))
	for i, k := range keys {
		out[i] = s.m[k]
	}
	return out
}

// Keys returns the sorted keys.
func (s *IdealSet) Keys() []string {
	ideals := s.Sorted()
	out := make([]string, len(ideals))
	for i, id := range ideals {
		out[i] = id.Key()
	}
	return out
}

// PrimeSet is a sorted set of rational primes. nil means "not computed".
type PrimeSet []*big.Int

// NewPrimeSet sorts and deduplicates ps.
func NewPrimeSet(ps ...*big.Int) PrimeSet {
	out := make(PrimeSet, 0, len(ps))
	for _, p := range ps {
		out = append(out, new(big.Int).Set(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	uniq := out[:0]
	for i, p := range out {
		if i == 0 || p.Cmp(out[i-1]) != 0 {
			uniq = append(uniq, p)
		}
	}
	return uniq
}

// Equal reports element-wise equality.
func (s PrimeSet) Equal(o PrimeSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Cmp(o[i]) != 0 {
			return false
		}
	}
	return true
}

// Strings renders the primes in order.
func (s PrimeSet) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.String()
	}
	return out
}
