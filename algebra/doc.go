// Package algebra implements the symbolic expression core: decision
// variable handles, affine and quadratic expressions built from parallel
// term lists, a total arithmetic dispatch over all operand kinds, matrix
// and sparse-matrix products over expression arrays, evaluation against a
// solution vector, and structural equality.
//
// Expressions never merge or reorder terms. Duplicate variables are legal
// and sum at evaluation time. That trade keeps the single-term append
// primitives O(1) amortized, so accumulating patterns like
//
//	acc := &algebra.AffineExpr{}
//	for i, x := range vars {
//		acc.AddTerm(c[i], x)
//	}
//
// run in time linear in the total number of terms.
package algebra
