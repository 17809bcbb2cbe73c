// Package report turns the cached invariants of a manifold into a plain data
// value that can be encoded as YAML or JSON. Build never resolves anything:
// unresolved invariants stay nil and are listed in Report.Unknown.
package report
