// Package hypinv resolves and compares the arithmetic invariants of
// hyperbolic 3-manifolds: the trace field, the invariant trace field, the
// quaternion algebra over each, and the denominators of the traces.
//
// Every invariant is found by a numerical search whose success depends on a
// working precision and a maximum degree. The engine remembers every attempt,
// plans the next coordinate from that history, caches what it finds and
// forgets everything when the manifold is Dehn filled.
//
// Packages:
//
//	nt/         capability interfaces of the number-theory backend
//	invariant/  kinds, coordinates, attempt records, ideal sets
//	planner/    next (precision, degree) from an attempt history
//	state/      per-manifold cache and attempt log
//	resolve/    field, algebra and denominator resolvers
//	classify/   arithmeticity from resolved invariants
//	compare/    equivalence of invariants between two manifolds
//	engine/     Manifold, the unit of ownership tying the above together
//	report/     YAML/JSON snapshots of cached invariants
//	batch/      parallel resolution of independent manifolds
//	metrics/    Prometheus observer for attempts
//	config/     YAML configuration
//	hypinvtest/ deterministic in-memory backend for tests and demos
//	cmd/hypinv  CLI: plan replay, config checks, demo
//
// Quick example:
//
//	m, _ := engine.New(host, engine.Dependencies{Fields: fl, Algebras: al, Words: ws})
//	_ = m.ComputeArithmeticInvariants(ctx)
//	fmt.Println(m.Verdict()) // arithmetic
package hypinv
