// Package metrics exports resolution attempts as Prometheus metrics.
//
// Collector implements resolve.Observer; install it with
// engine.WithObserver or resolve.WithObserver. All metrics live in the
// "hypinv" namespace:
//
//   - field_attempts_total{kind,outcome}
//   - field_search_seconds{kind}
//   - algebra_attempts_total{kind,outcome}
//   - algebra_search_seconds{kind}
//   - epsilon_rounds{kind}
//   - epsilon_exhausted_total{kind}
//   - attempt_precision{kind}
//
// Collectors are safe for concurrent use, so one Collector may observe every
// manifold of a batch.
package metrics
