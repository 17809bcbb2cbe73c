// Package hypinvtest provides deterministic in-memory collaborators for the
// hypinv engine. They model just enough number theory to drive the engine in
// tests and examples: fields are labelled objects, searches succeed above
// configured thresholds, and every call is counted.
package hypinvtest
