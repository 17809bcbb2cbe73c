// Package batch resolves the invariants of many independent manifolds in
// parallel. Each engine.Manifold is touched by exactly one goroutine; the
// manifolds must not share host objects or states.
package batch
