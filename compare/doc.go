// Package compare decides whether two manifolds share their arithmetic
// invariants when those invariants may come through different concrete
// embeddings of isomorphic number fields.
//
// Fields are equivalent when they are the same subfield of the complex
// numbers. Algebras over identical field representations are compared
// directly; otherwise cheap ramification checks run first and, only if they
// pass, an explicit isomorphism between the two representations is built from
// the generators of the second manifold and the second algebra is pushed
// through it. The comparator never resolves invariants itself.
package compare
