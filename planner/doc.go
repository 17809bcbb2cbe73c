// Package planner decides the next (precision, degree) coordinate at which to
// search for an invariant, given everything already attempted.
//
// Rules for field kinds:
//
//   - Empty history: the configured start coordinate.
//   - Any success: the smallest successful precision paired with the smallest
//     successful degree, taken independently. The pair may never have been
//     attempted; each component is individually known to suffice.
//   - Only failures: (max failed precision + PrecisionIncrement,
//     max failed degree + DegreeIncrement), after which the degree is
//     corrected from the sibling field when its degree is already known.
//
// Rules for algebra kinds (history keyed by precision only):
//
//   - Empty history: the associated field's next precision.
//   - Any success: the smallest successful precision.
//   - Only failures: max(max failed + PrecisionIncrement, field's next precision).
//
// The planner is a pure function of its History argument.
package planner
