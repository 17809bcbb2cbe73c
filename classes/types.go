package classes

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hypinv/compare"
)

// Sentinel errors.
var (
	// ErrDuplicateName is returned when two manifolds share a name.
	ErrDuplicateName = errors.New("classes: duplicate manifold name")

	// ErrNilManifold is returned for a nil entry.
	ErrNilManifold = errors.New("classes: nil manifold")

	// ErrNotMember is returned by PathTo for a manifold outside the class.
	ErrNotMember = errors.New("classes: manifold is not in this class")
)

// Relation decides from a comparison whether two manifolds are linked.
type Relation func(compare.Result) bool

// Commensurability links manifolds with the same invariant trace field and
// invariant quaternion algebra.
func Commensurability(r compare.Result) bool {
	return r.InvariantTraceField && r.InvariantQuaternionAlgebra
}

// AllInvariants links manifolds on which every invariant agrees.
func AllInvariants(r compare.Result) bool { return r.Same() }

// Option configures Partition via functional arguments.
type Option func(*Options)

// Options holds the relation and hooks of one Partition call.
type Options struct {
	// Relation decides edges; default Commensurability.
	Relation Relation

	// OnCompare is called after every pairwise comparison.
	OnCompare func(a, b string, r compare.Result)

	// OnVisit is called when a manifold joins a class. Returning an error
	// aborts the partition.
	OnVisit func(name string, depth int) error
}

// DefaultOptions returns Commensurability and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Relation:  Commensurability,
		OnCompare: func(string, string, compare.Result) {},
		OnVisit:   func(string, int) error { return nil },
	}
}

// WithRelation replaces the linking relation. Panics on nil.
func WithRelation(rel Relation) Option {
	if rel == nil {
		panic("classes: WithRelation(nil)")
	}
	return func(o *Options) { o.Relation = rel }
}

// WithOnCompare registers a comparison callback.
func WithOnCompare(fn func(a, b string, r compare.Result)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnCompare = fn
		}
	}
}

// WithOnVisit registers a visit callback.
func WithOnVisit(fn func(name string, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Class is one connected component.
//   - Members: manifold names in visit order; the first is the root.
//   - Depth: links between a member and the root.
//   - Parent: the member through which each non-root member was reached.
type Class struct {
	Members []string          `yaml:"members" json:"members"`
	Depth   map[string]int    `yaml:"-" json:"-"`
	Parent  map[string]string `yaml:"-" json:"-"`
}

// PathTo returns the chain of linked manifolds from the root to name.
func (c *Class) PathTo(name string) ([]string, error) {
	if _, ok := c.Depth[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotMember, name)
	}
	path := []string{}
	for cur := name; ; {
		path = append(path, cur)
		prev, ok := c.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
