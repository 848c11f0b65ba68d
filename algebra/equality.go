package algebra

import "github.com/symplex/symplex/internal/utils"

// StructurallyEqual reports whether two operands are structurally
// identical: same kind, and for expressions, equal constants plus term
// lists that match position by position (same variable identity and same
// coefficient at each index). Term reordering and duplicate merging are
// never applied, so two mathematically identical expressions built in
// different orders compare unequal.
//
// This is a debugging and testing facility; callers must not use it to
// detect algebraic equivalence.
func StructurallyEqual(i1, i2 interface{}) bool {
	switch x := i1.(type) {
	case Variable:
		y, ok := i2.(Variable)
		return ok && x == y
	case *AffineExpr:
		y, ok := i2.(*AffineExpr)
		return ok && x.Equal(y)
	case *QuadExpr:
		y, ok := i2.(*QuadExpr)
		return ok && x.Equal(y)
	default:
		c, ok := utils.ToFloat(i1)
		if !ok {
			return false
		}
		d, ok := utils.ToFloat(i2)
		return ok && c == d
	}
}
