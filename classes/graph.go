package classes

import "sync"

// graph is an undirected, unweighted adjacency set keyed by manifold name.
// Vertex order is insertion order so traversals are deterministic.
type graph struct {
	mu    sync.RWMutex
	order []string
	adj   map[string]map[string]struct{}
}

func newGraph(capacity int) *graph {
	return &graph{
		order: make([]string, 0, capacity),
		adj:   make(map[string]map[string]struct{}, capacity),
	}
}

// addVertex inserts id if absent and reports whether it was inserted.
func (g *graph) addVertex(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.adj[id]; exists {
		return false
	}
	g.adj[id] = make(map[string]struct{})
	g.order = append(g.order, id)
	return true
}

// addEdge links a and b in both directions. Both must exist.
func (g *graph) addEdge(a, b string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// vertices returns the vertex IDs in insertion order.
func (g *graph) vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.order...)
}

// neighbors returns the neighbors of id in vertex insertion order.
func (g *graph) neighbors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs := g.adj[id]
	out := make([]string, 0, len(nbrs))
	for _, v := range g.order {
		if _, ok := nbrs[v]; ok {
			out = append(out, v)
		}
	}
	return out
}
