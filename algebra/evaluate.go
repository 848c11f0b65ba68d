package algebra

import (
	"fmt"

	"github.com/symplex/symplex/internal/utils"
)

// Evaluate computes the numeric value of expr under a solution vector,
// where solution[c] is the value assigned to the variable with column
// index c. Every stored term contributes; duplicate terms sum as stored.
//
// The solver backend consuming finished expressions and constraints calls
// this; it is part of the engine's public contract.
func Evaluate(expr interface{}, solution []float64) (float64, error) {
	switch x := expr.(type) {
	case Variable:
		return lookup(x, solution)
	case *AffineExpr:
		return evalAffine(x, solution)
	case *QuadExpr:
		total, err := evalAffine(&x.Aff, solution)
		if err != nil {
			return 0, err
		}
		for i := range x.QCoeffs {
			a, err := lookup(x.QVars1[i], solution)
			if err != nil {
				return 0, err
			}
			b, err := lookup(x.QVars2[i], solution)
			if err != nil {
				return 0, err
			}
			total += x.QCoeffs[i] * a * b
		}
		return total, nil
	default:
		c, ok := utils.ToFloat(expr)
		if !ok {
			return 0, errUnsupportedUnary("evaluate", expr, hintOperand)
		}
		return c, nil
	}
}

func evalAffine(e *AffineExpr, solution []float64) (float64, error) {
	total := e.Constant
	for i := range e.Vars {
		v, err := lookup(e.Vars[i], solution)
		if err != nil {
			return 0, err
		}
		total += e.Coeffs[i] * v
	}
	return total, nil
}

func lookup(v Variable, solution []float64) (float64, error) {
	if v.col < 0 || v.col >= len(solution) {
		return 0, fmt.Errorf("%w: variable column %d outside solution vector of length %d",
			ErrDimensionMismatch, v.col, len(solution))
	}
	return solution[v.col], nil
}
