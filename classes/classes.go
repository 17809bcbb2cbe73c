package classes

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hypinv/engine"
)

// Partition compares every pair of manifolds and returns the classes in
// order of their first member. Every manifold must have its arithmetic
// invariants resolved; a comparison error aborts the partition.
//
// Complexity: O(n²) comparisons plus O(n + e) traversal.
func Partition(ctx context.Context, manifolds []*engine.Manifold, opts ...Option) ([]Class, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 1) Vertices.
	g := newGraph(len(manifolds))
	for _, m := range manifolds {
		if m == nil {
			return nil, ErrNilManifold
		}
		if !g.addVertex(m.Name()) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, m.Name())
		}
	}

	// 2) Edges from pairwise comparison.
	for i, a := range manifolds {
		for _, b := range manifolds[i+1:] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := a.Compare(ctx, b)
			if err != nil {
				return nil, fmt.Errorf("classes: compare %s with %s: %w", a.Name(), b.Name(), err)
			}
			o.OnCompare(a.Name(), b.Name(), res)
			if o.Relation(res) {
				g.addEdge(a.Name(), b.Name())
			}
		}
	}

	// 3) Components.
	w := &walker{graph: g, opts: o, ctx: ctx, seen: make(map[string]bool, len(manifolds))}
	var out []Class
	for _, id := range g.vertices() {
		if w.seen[id] {
			continue
		}
		c, err := w.component(id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// walker holds the breadth-first traversal state shared across components.
type walker struct {
	graph *graph
	opts  Options
	ctx   context.Context
	seen  map[string]bool
	queue []string
}

func (w *walker) component(root string) (Class, error) {
	c := Class{Depth: map[string]int{}, Parent: map[string]string{}}
	w.enqueue(&c, root, 0, "")
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return Class{}, w.ctx.Err()
		default:
		}

		id := w.queue[0]
		w.queue = w.queue[1:]
		c.Members = append(c.Members, id)
		if err := w.opts.OnVisit(id, c.Depth[id]); err != nil {
			return Class{}, fmt.Errorf("classes: OnVisit error at %q: %w", id, err)
		}
		for _, nbr := range w.graph.neighbors(id) {
			if !w.seen[nbr] {
				w.enqueue(&c, nbr, c.Depth[id]+1, id)
			}
		}
	}
	return c, nil
}

func (w *walker) enqueue(c *Class, id string, depth int, parent string) {
	w.seen[id] = true
	c.Depth[id] = depth
	if parent != "" {
		c.Parent[id] = parent
	}
	w.queue = append(w.queue, id)
}
