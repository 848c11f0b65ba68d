// Copyright 2023 The Symplex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package constraint

import (
	"fmt"
	"math"

	"github.com/symplex/symplex/algebra"
	"github.com/symplex/symplex/internal/utils"
)

// Compare converts the comparison "lhs sense rhs" into a constraint value.
// Each side is a scalar, an algebra.Variable, an *algebra.AffineExpr or an
// *algebra.QuadExpr; at least one side must be symbolic. When both sides
// are symbolic the comparison reduces to Compare(lhs-rhs, sense, 0).
//
// The expression is normalized to one side: an affine left side yields a
// *LinearConstraint whose bound is rhs minus the expression's constant
// (LessEq sets only the upper bound, GreaterEq only the lower, Equal
// both); a quadratic left side yields a *QuadConstraint keeping the sense,
// with -rhs folded into the affine constant. The input expression is only
// read; the constraint owns fresh term storage.
func Compare(lhs interface{}, sense Sense, rhs interface{}) (Constraint, error) {
	lk, rk := algebra.KindOf(lhs), algebra.KindOf(rhs)
	if lk == algebra.KindInvalid || rk == algebra.KindInvalid {
		return nil, fmt.Errorf("%w: cannot compare %v %s %v",
			algebra.ErrUnsupportedOperation, lk, sense, rk)
	}
	if lk == algebra.KindScalar && rk == algebra.KindScalar {
		return nil, fmt.Errorf("%w: comparison %v %s %v needs a symbolic side",
			algebra.ErrUnsupportedOperation, lk, sense, rk)
	}
	if lk == algebra.KindScalar {
		return Compare(rhs, sense.flip(), lhs)
	}
	if rk != algebra.KindScalar {
		diff, err := algebra.Sub(lhs, rhs)
		if err != nil {
			return nil, err
		}
		return Compare(diff, sense, float64(0))
	}

	k, _ := utils.ToFloat(rhs)
	switch e := lhs.(type) {
	case algebra.Variable:
		expr := &algebra.AffineExpr{Vars: []algebra.Variable{e}, Coeffs: []float64{1}}
		lo, hi := interval(sense, k)
		return &LinearConstraint{Expr: expr, Lower: lo, Upper: hi}, nil
	case *algebra.AffineExpr:
		expr := e.Clone()
		bound := k - expr.Constant
		expr.Constant = 0
		lo, hi := interval(sense, bound)
		return &LinearConstraint{Expr: expr, Lower: lo, Upper: hi}, nil
	case *algebra.QuadExpr:
		expr := e.Clone()
		expr.Aff.Constant -= k
		return &QuadConstraint{Expr: expr, Sense: sense}, nil
	default:
		// unreachable: KindOf covered every symbolic kind above
		return nil, fmt.Errorf("%w: cannot compare %T", algebra.ErrUnsupportedOperation, lhs)
	}
}

func interval(sense Sense, bound float64) (lo, hi float64) {
	switch sense {
	case LessEq:
		return math.Inf(-1), bound
	case GreaterEq:
		return bound, math.Inf(1)
	default:
		return bound, bound
	}
}

// CompareElementwise applies Compare at every position of matrix operands
// and returns the constraints in row-major order. Shapes must match
// exactly, or one operand may be a single scalar or symbolic value
// broadcast across the other; any other mismatch fails with
// ErrDimensionMismatch.
func CompareElementwise(lhs interface{}, sense Sense, rhs interface{}) ([]Constraint, error) {
	lm, lok := lhs.(*algebra.Matrix)
	rm, rok := rhs.(*algebra.Matrix)
	switch {
	case lok && rok:
		lr, lc := lm.Dims()
		rr, rc := rm.Dims()
		if lr != rr || lc != rc {
			return nil, fmt.Errorf("%w: elementwise comparison of %dx%d and %dx%d",
				algebra.ErrDimensionMismatch, lr, lc, rr, rc)
		}
		out := make([]Constraint, 0, lr*lc)
		for i := 0; i < lr; i++ {
			for j := 0; j < lc; j++ {
				c, err := Compare(lm.At(i, j), sense, rm.At(i, j))
				if err != nil {
					return nil, err
				}
				out = append(out, c)
			}
		}
		return out, nil
	case lok:
		lr, lc := lm.Dims()
		out := make([]Constraint, 0, lr*lc)
		for i := 0; i < lr; i++ {
			for j := 0; j < lc; j++ {
				c, err := Compare(lm.At(i, j), sense, rhs)
				if err != nil {
					return nil, err
				}
				out = append(out, c)
			}
		}
		return out, nil
	case rok:
		rr, rc := rm.Dims()
		out := make([]Constraint, 0, rr*rc)
		for i := 0; i < rr; i++ {
			for j := 0; j < rc; j++ {
				c, err := Compare(lhs, sense, rm.At(i, j))
				if err != nil {
					return nil, err
				}
				out = append(out, c)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: elementwise comparison needs at least one *algebra.Matrix operand",
			algebra.ErrUnsupportedOperation)
	}
}
