// Package invariant defines the shared vocabulary of the hypinv engine:
// invariant kinds, precision/degree coordinates, attempt records and the
// resolved values cached per manifold.
//
// Kinds are a closed enumeration. Per-kind storage elsewhere in the module is
// an array indexed by Kind, never a string-keyed map.
package invariant
