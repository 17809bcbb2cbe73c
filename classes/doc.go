// Package classes partitions resolved manifolds into classes of manifolds
// whose invariants agree under a chosen relation.
//
// Manifolds are the vertices of an undirected graph with an edge wherever
// the comparator reports a match; the classes are its connected components,
// discovered by breadth-first search in input order. Since the invariant
// trace field and the invariant quaternion algebra are commensurability
// invariants, the default relation yields candidate commensurability classes.
//
// Complexity: O(n²) comparisons, O(n + e) traversal, O(n + e) memory.
package classes
