// Package engine wraps a host manifold with its invariant state and the
// resolvers, classifier and comparator that operate on it.
//
// A Manifold is the unit of ownership: it owns exactly one state.State, is
// single-writer, and must not be shared between goroutines without external
// synchronization. Independent Manifolds share nothing and may be resolved in
// parallel (see package batch).
//
// Example:
//
//	m, err := engine.New(host, engine.Dependencies{Fields: fl, Algebras: al, Words: ws})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err = m.ComputeArithmeticInvariants(ctx); err != nil {
//	    log.Println("partial:", err)
//	}
//	arith, err := m.IsArithmetic()
package engine
