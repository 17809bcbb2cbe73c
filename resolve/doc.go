// Package resolve turns approximate data into exact invariants. It holds the
// three resolvers of the engine:
//
//   - FieldResolver       – trace field and invariant trace field.
//   - AlgebraResolver     – quaternion algebras via an epsilon-escalating
//     Hilbert symbol search.
//   - DenominatorAnalyzer – prime ideals where trace field generators fail
//     to be integral.
//
// Every resolver reads and writes one state.State and asks a planner.Planner
// where to search when the caller does not say. Failed searches are recorded,
// never raised; errors are reserved for invalid input, collaborator
// breakdowns and the bounded epsilon loop running out.
//
// Attempt records:
//
//   - Exactly one record per external attempt, at the coordinate (or
//     precision) it ran at.
//   - An exhausted epsilon loop records a failure before returning
//     ErrInsufficientSeparation, so the planner escalates on the next call.
//   - Cancellation and collaborator errors are never recorded.
//
// Error handling (sentinel errors):
//
//   - ErrNilState, ErrNilCollaborator: constructor guards.
//   - ErrInsufficientSeparation: the epsilon loop hit MaxEpsilonRounds or
//     EpsilonBudget.
//   - ErrBadEpsilon: invalid WithEpsilon arguments.
//   - state.ErrNoGenerators: the last state reset could not pull the
//     generator sequences.
package resolve
