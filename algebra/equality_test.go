package algebra

import "testing"

func TestStructuralEqualityOrderSensitive(t *testing.T) {
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	xy, err := Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	yx, err := Add(y, x)
	if err != nil {
		t.Fatal(err)
	}
	// mathematically identical, structurally distinct: no canonicalization
	if StructurallyEqual(xy, yx) {
		t.Fatal("x+y and y+x must not be structurally equal")
	}
	if !StructurallyEqual(xy, xy.(*AffineExpr).Clone()) {
		t.Fatal("an expression must equal its clone")
	}
}

func TestStructuralEqualityKinds(t *testing.T) {
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	if !StructurallyEqual(x, x) {
		t.Fatal("a variable must equal itself")
	}
	if StructurallyEqual(x, y) {
		t.Fatal("distinct columns must differ")
	}
	other := NewVariable(&testOwner{prefix: "z"}, 0)
	if StructurallyEqual(x, other) {
		t.Fatal("same column under a different owner must differ")
	}
	if !StructurallyEqual(2, 2.0) {
		t.Fatal("numerically equal scalars must match")
	}
	// a constant-only expression is not a scalar
	if StructurallyEqual(&AffineExpr{Constant: 2}, 2.0) {
		t.Fatal("kinds must match for structural equality")
	}
}

func TestStructuralEqualityQuadratic(t *testing.T) {
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	a, err := Mul(x, y)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Mul(y, x)
	if err != nil {
		t.Fatal(err)
	}
	// (x,y) and (y,x) pairs are stored as built
	if StructurallyEqual(a, b) {
		t.Fatal("x*y and y*x must not be structurally equal")
	}
	if !StructurallyEqual(a, a.(*QuadExpr).Clone()) {
		t.Fatal("a quadratic expression must equal its clone")
	}

	c := a.(*QuadExpr).Clone()
	c.Aff.Constant = 1
	if StructurallyEqual(a, c) {
		t.Fatal("differing affine parts must break equality")
	}
}
