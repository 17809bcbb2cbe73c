// Package classify decides arithmeticity from already-resolved invariants.
//
// A Kleinian group of finite covolume is arithmetic iff its invariant trace
// field has exactly one complex place, its traces are algebraic integers, and
// its invariant quaternion algebra ramifies at every real place
// (Maclachlan–Reid, Theorem 8.3.2). The package never triggers resolution.
package classify
