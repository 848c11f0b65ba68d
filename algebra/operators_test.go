package algebra

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type testOwner struct{ prefix string }

func (o *testOwner) VariableName(col int) string {
	return fmt.Sprintf("%s%d", o.prefix, col)
}

// testVariables allocates n variables bound to a throwaway owner.
func testVariables(n int) []Variable {
	o := &testOwner{prefix: "x"}
	vs := make([]Variable, n)
	for i := range vs {
		vs[i] = NewVariable(o, i)
	}
	return vs
}

func TestAddPromotion(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	// scalar + variable -> affine with one term and the scalar as constant
	r, err := Add(3.0, x)
	assert.NoError(err)
	aff := r.(*AffineExpr)
	assert.Equal(1, aff.NbTerms())
	assert.Equal(x, aff.Vars[0])
	assert.Equal(1.0, aff.Coeffs[0])
	assert.Equal(3.0, aff.Constant)

	// variable + variable -> affine with two unit terms
	r, err = Add(x, y)
	assert.NoError(err)
	aff = r.(*AffineExpr)
	assert.Equal([]Variable{x, y}, aff.Vars)
	assert.Equal([]float64{1, 1}, aff.Coeffs)
	assert.Equal(0.0, aff.Constant)

	// affine + affine -> concatenated term lists, summed constants
	a := NewAffineExpr([]Variable{x}, []float64{2}, 1)
	b := NewAffineExpr([]Variable{y}, []float64{3}, 4)
	r, err = Add(a, b)
	assert.NoError(err)
	aff = r.(*AffineExpr)
	assert.Equal([]Variable{x, y}, aff.Vars)
	assert.Equal([]float64{2, 3}, aff.Coeffs)
	assert.Equal(5.0, aff.Constant)

	// inputs untouched
	assert.Equal(1, a.NbTerms())
	assert.Equal(1, b.NbTerms())

	// quadratic + affine stays quadratic
	q, err := Mul(x, y)
	assert.NoError(err)
	r, err = Add(q, a)
	assert.NoError(err)
	quad := r.(*QuadExpr)
	assert.Equal(1, quad.NbQuadTerms())
	assert.Equal(1, quad.Aff.NbTerms())
	assert.Equal(0, q.(*QuadExpr).Aff.NbTerms())
}

func TestSub(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	r, err := Sub(x, y)
	assert.NoError(err)
	aff := r.(*AffineExpr)
	assert.Equal([]float64{1, -1}, aff.Coeffs)

	r, err = Sub(5.0, x)
	assert.NoError(err)
	aff = r.(*AffineExpr)
	assert.Equal([]float64{-1}, aff.Coeffs)
	assert.Equal(5.0, aff.Constant)

	a := NewAffineExpr([]Variable{x, y}, []float64{2, 3}, 1)
	r, err = Sub(a, a)
	assert.NoError(err)
	aff = r.(*AffineExpr)
	// no cancellation: term lists concatenate
	assert.Equal([]float64{2, 3, -2, -3}, aff.Coeffs)
	assert.Equal(0.0, aff.Constant)
}

func TestMulPromotion(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	// variable * variable -> quadratic with one term, empty affine part
	r, err := Mul(x, y)
	assert.NoError(err)
	q := r.(*QuadExpr)
	assert.Equal(1, q.NbQuadTerms())
	assert.Equal(x, q.QVars1[0])
	assert.Equal(y, q.QVars2[0])
	assert.Equal(1.0, q.QCoeffs[0])
	assert.Equal(0, q.Aff.NbTerms())

	// variable * affine folds the constant into constant*variable
	a := NewAffineExpr([]Variable{y}, []float64{3}, 5)
	r, err = Mul(x, a)
	assert.NoError(err)
	q = r.(*QuadExpr)
	assert.Equal(1, q.NbQuadTerms())
	assert.Equal(3.0, q.QCoeffs[0])
	assert.Equal(1, q.Aff.NbTerms())
	assert.Equal(5.0, q.Aff.Coeffs[0])
	assert.Equal(x, q.Aff.Vars[0])
	assert.Equal(0.0, q.Aff.Constant)

	// scalar * quadratic scales everything
	r, err = Mul(2.0, q)
	assert.NoError(err)
	scaled := r.(*QuadExpr)
	assert.Equal(6.0, scaled.QCoeffs[0])
	assert.Equal(10.0, scaled.Aff.Coeffs[0])
	// original untouched
	assert.Equal(3.0, q.QCoeffs[0])
}

func TestMulCrossProduct(t *testing.T) {
	// (x+y)*(x-y) cross product in construction order, zero affine part
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	sum, err := Add(x, y)
	assert.NoError(err)
	diff, err := Sub(x, y)
	assert.NoError(err)
	r, err := Mul(sum, diff)
	assert.NoError(err)
	q := r.(*QuadExpr)

	assert.Equal([]Variable{x, x, y, y}, q.QVars1)
	assert.Equal([]Variable{x, y, x, y}, q.QVars2)
	assert.Equal([]float64{1, -1, 1, -1}, q.QCoeffs)
	assert.Equal(0, q.Aff.NbTerms())
	assert.Equal(0.0, q.Aff.Constant)
}

func TestMulConstantFolding(t *testing.T) {
	// (2x+3)*(4y+5): constants cross into the affine part, their product
	// lands in the constant exactly once.
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	a := NewAffineExpr([]Variable{x}, []float64{2}, 3)
	b := NewAffineExpr([]Variable{y}, []float64{4}, 5)
	r, err := Mul(a, b)
	assert.NoError(err)
	q := r.(*QuadExpr)

	assert.Equal(1, q.NbQuadTerms())
	assert.Equal(8.0, q.QCoeffs[0]) // 2*4
	assert.Equal(2, q.Aff.NbTerms())
	assert.Equal(10.0, q.Aff.Coeffs[0]) // 2*5 on x
	assert.Equal(x, q.Aff.Vars[0])
	assert.Equal(12.0, q.Aff.Coeffs[1]) // 3*4 on y
	assert.Equal(y, q.Aff.Vars[1])
	assert.Equal(15.0, q.Aff.Constant) // 3*5
}

func TestUnsupportedOperations(t *testing.T) {
	vs := testVariables(2)
	x, y := vs[0], vs[1]
	a := NewAffineExpr([]Variable{x}, []float64{1}, 0)
	q, err := Mul(x, y)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		run  func() (interface{}, error)
	}{
		{"affine div variable", func() (interface{}, error) { return Div(a, x) }},
		{"scalar div affine", func() (interface{}, error) { return Div(2.0, a) }},
		{"quad div quad", func() (interface{}, error) { return Div(q, q) }},
		{"quad mul quad", func() (interface{}, error) { return Mul(q, q) }},
		{"quad mul variable", func() (interface{}, error) { return Mul(q, x) }},
		{"affine mul quad", func() (interface{}, error) { return Mul(a, q) }},
		{"variable cubed", func() (interface{}, error) { return Pow(x, 3) }},
		{"affine to the first", func() (interface{}, error) { return Pow(a, 1) }},
		{"quad squared", func() (interface{}, error) { return Pow(q, 2) }},
		{"string operand", func() (interface{}, error) { return Add("nope", x) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.run()
			if !errors.Is(err, ErrUnsupportedOperation) {
				t.Fatalf("expected ErrUnsupportedOperation, got %v", err)
			}
		})
	}
}

func TestPowSquare(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(1)
	x := vs[0]

	r, err := Pow(x, 2)
	assert.NoError(err)
	q := r.(*QuadExpr)
	assert.Equal(1, q.NbQuadTerms())
	assert.Equal(x, q.QVars1[0])
	assert.Equal(x, q.QVars2[0])

	r, err = Pow(3.0, 2)
	assert.NoError(err)
	assert.Equal(9.0, r)
}

func TestNegAndPlus(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(1)
	x := vs[0]

	r, err := Neg(x)
	assert.NoError(err)
	assert.Equal([]float64{-1}, r.(*AffineExpr).Coeffs)

	a := NewAffineExpr([]Variable{x}, []float64{2}, 1)
	r, err = Neg(a)
	assert.NoError(err)
	assert.Equal([]float64{-2}, r.(*AffineExpr).Coeffs)
	assert.Equal(-1.0, r.(*AffineExpr).Constant)
	assert.Equal(2.0, a.Coeffs[0])

	// Plus is the documented aliasing identity
	r, err = Plus(a)
	assert.NoError(err)
	assert.Same(a, r.(*AffineExpr))
}

func TestDivByScalar(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(1)
	x := vs[0]

	r, err := Div(x, 4.0)
	assert.NoError(err)
	assert.Equal([]float64{0.25}, r.(*AffineExpr).Coeffs)

	r, err = Div(10.0, 4)
	assert.NoError(err)
	assert.Equal(2.5, r)
}

func TestSumLinearAccumulation(t *testing.T) {
	// Summing N one-term expressions must produce exactly N terms: the
	// accumulator grows by appending, never by re-adding whole prefixes.
	assert := require.New(t)
	const n = 1000
	vs := testVariables(n)

	items := make([]interface{}, n)
	for i, v := range vs {
		items[i] = NewAffineExpr([]Variable{v}, []float64{float64(i + 1)}, 0)
	}
	r, err := Sum(items...)
	assert.NoError(err)
	aff := r.(*AffineExpr)
	assert.Equal(n, aff.NbTerms())
	for i := range vs {
		assert.Equal(vs[i], aff.Vars[i])
		assert.Equal(float64(i+1), aff.Coeffs[i])
	}

	// mixed kinds promote to the minimal representable result
	q, err := Mul(vs[0], vs[1])
	assert.NoError(err)
	r, err = Sum(vs[0], 2.5, q, items[3])
	assert.NoError(err)
	quad := r.(*QuadExpr)
	assert.Equal(1, quad.NbQuadTerms())
	assert.Equal(2, quad.Aff.NbTerms())
	assert.Equal(2.5, quad.Aff.Constant)
}

func TestAppendAmortized(t *testing.T) {
	// The append primitives may not copy the receiver: after a warm-up
	// append the backing array must be reused while capacity lasts.
	e := &AffineExpr{}
	vs := testVariables(3)
	e.AddTerm(1, vs[0])
	e.AddTerm(2, vs[1])
	if cap(e.Coeffs) < 2 {
		t.Fatal("append did not grow storage")
	}
	before := cap(e.Coeffs)
	grew := 0
	for i := 0; i < before-2; i++ {
		e.AddTerm(1, vs[2])
		if cap(e.Coeffs) != before {
			grew++
		}
	}
	if grew != 0 {
		t.Fatalf("storage reallocated %d times within existing capacity", grew)
	}
}
