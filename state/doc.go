// Package state holds the per-manifold invariant store: resolved fields and
// algebras, attempt records for every kind, the denominator set and the
// approximate generator sequences pulled from the host.
//
// A State is owned by exactly one manifold wrapper and is not safe for
// concurrent use. Reset discards everything; it must not run while a
// resolution on the same State is in flight. If Reset cannot pull the
// generator sequences, the State is still emptied and stays without
// generators, so nothing from before the reset can be read back.
package state
