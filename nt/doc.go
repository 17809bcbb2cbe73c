// Package nt declares the number-theoretic collaborators the hypinv engine
// drives but never implements.
//
// The engine decides when and at what cost to call these collaborators and how
// to cache their answers. Root finding, lattice reduction (LLL/PSLQ), ideal
// factorization, ramification of quaternion algebras and the construction of
// the holonomy representation all live behind the interfaces below.
//
// Conventions:
//
//   - "Not found" is a normal outcome, reported as a nil result (or ok == false),
//     never as an error. Errors are reserved for infrastructure failures such
//     as a cancelled context or a crashed backend.
//   - Every blocking call takes a context.Context. Implementations are not
//     required to honour cancellation mid-search; the engine only relies on
//     it between calls.
//   - Values returned by a collaborator are treated as immutable.
package nt
