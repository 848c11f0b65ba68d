package constraint

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symplex/symplex/algebra"
)

type testOwner struct{}

func (testOwner) VariableName(col int) string { return "x" + string(rune('0'+col)) }

func testVariables(n int) []algebra.Variable {
	vs := make([]algebra.Variable, n)
	for i := range vs {
		vs[i] = algebra.NewVariable(testOwner{}, i)
	}
	return vs
}

func TestCompareLinear(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	// 3x + 4y + 2 <= 10  ->  3x + 4y in (-inf, 8]
	expr := algebra.NewAffineExpr([]algebra.Variable{x, y}, []float64{3, 4}, 2)
	c, err := Compare(expr, LessEq, 10.0)
	assert.NoError(err)
	lc := c.(*LinearConstraint)
	assert.Equal([]float64{3, 4}, lc.Expr.Coeffs)
	assert.Equal(0.0, lc.Expr.Constant)
	assert.True(math.IsInf(lc.Lower, -1))
	assert.Equal(8.0, lc.Upper)
	// the input expression keeps its constant
	assert.Equal(2.0, expr.Constant)

	c, err = Compare(expr, GreaterEq, 10.0)
	assert.NoError(err)
	lc = c.(*LinearConstraint)
	assert.Equal(8.0, lc.Lower)
	assert.True(math.IsInf(lc.Upper, 1))

	c, err = Compare(expr, Equal, 10.0)
	assert.NoError(err)
	lc = c.(*LinearConstraint)
	assert.Equal(8.0, lc.Lower)
	assert.Equal(8.0, lc.Upper)
}

func TestCompareVariable(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(1)
	x := vs[0]

	c, err := Compare(x, LessEq, 5.0)
	assert.NoError(err)
	lc := c.(*LinearConstraint)
	assert.Equal(1, lc.Expr.NbTerms())
	assert.Equal(x, lc.Expr.Vars[0])
	assert.Equal(5.0, lc.Upper)

	// scalar on the left flips the sense
	c, err = Compare(5.0, LessEq, x)
	assert.NoError(err)
	lc = c.(*LinearConstraint)
	assert.Equal(5.0, lc.Lower)
	assert.True(math.IsInf(lc.Upper, 1))
}

func TestCompareQuadratic(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	q, err := algebra.Mul(x, y)
	assert.NoError(err)
	qe := q.(*algebra.QuadExpr)
	qe.Aff.Constant = 3

	c, err := Compare(qe, GreaterEq, 7.0)
	assert.NoError(err)
	qc := c.(*QuadConstraint)
	assert.Equal(GreaterEq, qc.Sense)
	// rhs folds into the affine constant: 3 - 7
	assert.Equal(-4.0, qc.Expr.Aff.Constant)
	assert.Equal(1, qc.Expr.NbQuadTerms())
	// input untouched
	assert.Equal(3.0, qe.Aff.Constant)
}

func TestCompareBothSymbolic(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(2)
	x, y := vs[0], vs[1]

	// x <= y  reduces to  x - y <= 0
	c, err := Compare(x, LessEq, y)
	assert.NoError(err)
	lc := c.(*LinearConstraint)
	assert.Equal([]algebra.Variable{x, y}, lc.Expr.Vars)
	assert.Equal([]float64{1, -1}, lc.Expr.Coeffs)
	assert.Equal(0.0, lc.Upper)
	assert.True(math.IsInf(lc.Lower, -1))
}

func TestCompareRejects(t *testing.T) {
	_, err := Compare(1.0, LessEq, 2.0)
	if !errors.Is(err, algebra.ErrUnsupportedOperation) {
		t.Fatalf("scalar vs scalar: expected ErrUnsupportedOperation, got %v", err)
	}
	_, err = Compare("nope", Equal, 2.0)
	if !errors.Is(err, algebra.ErrUnsupportedOperation) {
		t.Fatalf("invalid operand: expected ErrUnsupportedOperation, got %v", err)
	}
}

func TestCompareElementwise(t *testing.T) {
	assert := require.New(t)
	vs := testVariables(2)
	v := algebra.VariableVector(vs)

	// broadcast scalar bound
	cs, err := CompareElementwise(v, LessEq, 4.0)
	assert.NoError(err)
	assert.Len(cs, 2)
	for i, c := range cs {
		lc := c.(*LinearConstraint)
		assert.Equal(vs[i], lc.Expr.Vars[0])
		assert.Equal(4.0, lc.Upper)
	}

	// matching shapes
	bounds := algebra.Vector(1.0, 2.0)
	cs, err = CompareElementwise(v, GreaterEq, bounds)
	assert.NoError(err)
	assert.Equal(2.0, cs[1].(*LinearConstraint).Lower)

	// shape mismatch
	_, err = CompareElementwise(v, Equal, algebra.NewMatrix(3, 1))
	assert.ErrorIs(err, algebra.ErrDimensionMismatch)

	_, err = CompareElementwise(1.0, Equal, 2.0)
	assert.ErrorIs(err, algebra.ErrUnsupportedOperation)
}

func TestSenseString(t *testing.T) {
	if LessEq.String() != "<=" || Equal.String() != "==" || GreaterEq.String() != ">=" {
		t.Fatal("unexpected sense formatting")
	}
}
