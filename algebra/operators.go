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

package algebra

import (
	"math"

	"github.com/symplex/symplex/internal/utils"
)

// The dispatch engine: total binary arithmetic over the four operand kinds
// {scalar, Variable, *AffineExpr, *QuadExpr}. Every result is the minimal
// kind able to represent it exactly, with freshly allocated term storage;
// no operand is ever mutated. Operations that would leave the degree-2
// algebra fail with ErrUnsupportedOperation.
//
// Binary + and - clone one side and route through the in-place append
// primitives (AddTerm, Append, AppendScaled), so a binary operation costs
// O(|lhs terms| + |rhs terms|). Callers accumulating many addends should
// use Sum or the append primitives directly to stay linear overall.

// varAffine returns coeff*v as a fresh one-term expression.
func varAffine(coeff float64, v Variable) *AffineExpr {
	return &AffineExpr{Vars: []Variable{v}, Coeffs: []float64{coeff}}
}

// Add returns i1 + i2. Two scalar operands fold natively into a float64.
func Add(i1, i2 interface{}) (interface{}, error) {
	switch x := i1.(type) {
	case Variable:
		switch y := i2.(type) {
		case Variable:
			return &AffineExpr{Vars: []Variable{x, y}, Coeffs: []float64{1, 1}}, nil
		case *AffineExpr:
			return varAffine(1, x).Append(y), nil
		case *QuadExpr:
			res := y.Clone()
			res.Aff.AddTerm(1, x)
			return res, nil
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("+", i1, i2, hintOperand)
			}
			res := varAffine(1, x)
			res.Constant = c
			return res, nil
		}
	case *AffineExpr:
		switch y := i2.(type) {
		case Variable:
			return x.Clone().AddTerm(1, y), nil
		case *AffineExpr:
			return x.Clone().Append(y), nil
		case *QuadExpr:
			res := y.Clone()
			res.Aff.Append(x)
			return res, nil
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("+", i1, i2, hintOperand)
			}
			res := x.Clone()
			res.Constant += c
			return res, nil
		}
	case *QuadExpr:
		switch y := i2.(type) {
		case Variable:
			res := x.Clone()
			res.Aff.AddTerm(1, y)
			return res, nil
		case *AffineExpr:
			res := x.Clone()
			res.Aff.Append(y)
			return res, nil
		case *QuadExpr:
			return x.Clone().Append(y), nil
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("+", i1, i2, hintOperand)
			}
			res := x.Clone()
			res.Aff.Constant += c
			return res, nil
		}
	default:
		c, ok := utils.ToFloat(i1)
		if !ok {
			return nil, errUnsupportedBinary("+", i1, i2, hintOperand)
		}
		switch y := i2.(type) {
		case Variable:
			res := varAffine(1, y)
			res.Constant = c
			return res, nil
		case *AffineExpr:
			res := y.Clone()
			res.Constant += c
			return res, nil
		case *QuadExpr:
			res := y.Clone()
			res.Aff.Constant += c
			return res, nil
		default:
			d, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("+", i1, i2, hintOperand)
			}
			return c + d, nil
		}
	}
}

// Sub returns i1 - i2.
func Sub(i1, i2 interface{}) (interface{}, error) {
	switch x := i1.(type) {
	case Variable:
		switch y := i2.(type) {
		case Variable:
			return &AffineExpr{Vars: []Variable{x, y}, Coeffs: []float64{1, -1}}, nil
		case *AffineExpr:
			return varAffine(1, x).AppendScaled(-1, y), nil
		case *QuadExpr:
			res := y.Clone().scale(-1)
			res.Aff.AddTerm(1, x)
			return res, nil
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("-", i1, i2, hintOperand)
			}
			res := varAffine(1, x)
			res.Constant = -c
			return res, nil
		}
	case *AffineExpr:
		switch y := i2.(type) {
		case Variable:
			return x.Clone().AddTerm(-1, y), nil
		case *AffineExpr:
			return x.Clone().AppendScaled(-1, y), nil
		case *QuadExpr:
			res := y.Clone().scale(-1)
			res.Aff.Append(x)
			return res, nil
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("-", i1, i2, hintOperand)
			}
			res := x.Clone()
			res.Constant -= c
			return res, nil
		}
	case *QuadExpr:
		switch y := i2.(type) {
		case Variable:
			res := x.Clone()
			res.Aff.AddTerm(-1, y)
			return res, nil
		case *AffineExpr:
			res := x.Clone()
			res.Aff.AppendScaled(-1, y)
			return res, nil
		case *QuadExpr:
			return x.Clone().AppendScaled(-1, y), nil
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("-", i1, i2, hintOperand)
			}
			res := x.Clone()
			res.Aff.Constant -= c
			return res, nil
		}
	default:
		c, ok := utils.ToFloat(i1)
		if !ok {
			return nil, errUnsupportedBinary("-", i1, i2, hintOperand)
		}
		switch y := i2.(type) {
		case Variable:
			res := varAffine(-1, y)
			res.Constant = c
			return res, nil
		case *AffineExpr:
			res := y.Clone().scale(-1)
			res.Constant += c
			return res, nil
		case *QuadExpr:
			res := y.Clone().scale(-1)
			res.Aff.Constant += c
			return res, nil
		default:
			d, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("-", i1, i2, hintOperand)
			}
			return c - d, nil
		}
	}
}

// Mul returns i1 * i2. A quadratic operand may only be scaled by a plain
// scalar; every other product involving one fails with
// ErrUnsupportedOperation.
func Mul(i1, i2 interface{}) (interface{}, error) {
	switch x := i1.(type) {
	case Variable:
		switch y := i2.(type) {
		case Variable:
			return &QuadExpr{QVars1: []Variable{x}, QVars2: []Variable{y}, QCoeffs: []float64{1}}, nil
		case *AffineExpr:
			return mulVarAffine(x, y, false), nil
		case *QuadExpr:
			return nil, errUnsupportedBinary("*", i1, i2, hintDegree)
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("*", i1, i2, hintOperand)
			}
			return varAffine(c, x), nil
		}
	case *AffineExpr:
		switch y := i2.(type) {
		case Variable:
			return mulVarAffine(y, x, true), nil
		case *AffineExpr:
			return mulAffAff(x, y), nil
		case *QuadExpr:
			return nil, errUnsupportedBinary("*", i1, i2, hintDegree)
		default:
			c, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("*", i1, i2, hintOperand)
			}
			return x.Clone().scale(c), nil
		}
	case *QuadExpr:
		switch i2.(type) {
		case Variable, *AffineExpr, *QuadExpr:
			return nil, errUnsupportedBinary("*", i1, i2, hintDegree)
		}
		c, ok := utils.ToFloat(i2)
		if !ok {
			return nil, errUnsupportedBinary("*", i1, i2, hintOperand)
		}
		return x.Clone().scale(c), nil
	default:
		c, ok := utils.ToFloat(i1)
		if !ok {
			return nil, errUnsupportedBinary("*", i1, i2, hintOperand)
		}
		switch y := i2.(type) {
		case Variable:
			return varAffine(c, y), nil
		case *AffineExpr:
			return y.Clone().scale(c), nil
		case *QuadExpr:
			return y.Clone().scale(c), nil
		default:
			d, ok := utils.ToFloat(i2)
			if !ok {
				return nil, errUnsupportedBinary("*", i1, i2, hintOperand)
			}
			return c * d, nil
		}
	}
}

// mulVarAffine computes v*a. Each term of a pairs with v; a nonzero
// constant folds into one affine term constant*v. affLeft controls the
// orientation of the produced pairs: (a_i, v) when the affine operand was
// the left factor, (v, a_i) otherwise.
func mulVarAffine(v Variable, a *AffineExpr, affLeft bool) *QuadExpr {
	n := a.NbTerms()
	res := &QuadExpr{
		QVars1:  make([]Variable, 0, n),
		QVars2:  make([]Variable, 0, n),
		QCoeffs: make([]float64, 0, n),
	}
	for i := range a.Vars {
		if affLeft {
			res.AddQuadTerm(a.Coeffs[i], a.Vars[i], v)
		} else {
			res.AddQuadTerm(a.Coeffs[i], v, a.Vars[i])
		}
	}
	if a.Constant != 0 {
		res.Aff.AddTerm(a.Constant, v)
	}
	return res
}

// mulAffAff computes x*y as the full cross product of the two term lists.
// Cross terms with either constant land in the affine part; the product of
// the two constants is added exactly once, as the new constant.
func mulAffAff(x, y *AffineExpr) *QuadExpr {
	n := x.NbTerms() * y.NbTerms()
	res := &QuadExpr{
		QVars1:  make([]Variable, 0, n),
		QVars2:  make([]Variable, 0, n),
		QCoeffs: make([]float64, 0, n),
	}
	for i := range x.Vars {
		for j := range y.Vars {
			res.AddQuadTerm(x.Coeffs[i]*y.Coeffs[j], x.Vars[i], y.Vars[j])
		}
	}
	if y.Constant != 0 {
		for i := range x.Vars {
			res.Aff.AddTerm(x.Coeffs[i]*y.Constant, x.Vars[i])
		}
	}
	if x.Constant != 0 {
		for j := range y.Vars {
			res.Aff.AddTerm(x.Constant*y.Coeffs[j], y.Vars[j])
		}
	}
	res.Aff.Constant = x.Constant * y.Constant
	return res
}

// Div returns i1 / i2. The divisor must be a plain scalar; dividing by any
// symbolic value fails with ErrUnsupportedOperation. Division by a zero
// scalar follows float64 semantics.
func Div(i1, i2 interface{}) (interface{}, error) {
	switch i2.(type) {
	case Variable, *AffineExpr, *QuadExpr:
		return nil, errUnsupportedBinary("/", i1, i2, hintDivisor)
	}
	c, ok := utils.ToFloat(i2)
	if !ok {
		return nil, errUnsupportedBinary("/", i1, i2, hintOperand)
	}
	switch x := i1.(type) {
	case Variable:
		return varAffine(1/c, x), nil
	case *AffineExpr:
		return x.Clone().scale(1 / c), nil
	case *QuadExpr:
		return x.Clone().scale(1 / c), nil
	default:
		d, ok := utils.ToFloat(i1)
		if !ok {
			return nil, errUnsupportedBinary("/", i1, i2, hintOperand)
		}
		return d / c, nil
	}
}

// Neg returns -i1 with fresh storage.
func Neg(i1 interface{}) (interface{}, error) {
	switch x := i1.(type) {
	case Variable:
		return varAffine(-1, x), nil
	case *AffineExpr:
		return x.Clone().scale(-1), nil
	case *QuadExpr:
		return x.Clone().scale(-1), nil
	default:
		c, ok := utils.ToFloat(i1)
		if !ok {
			return nil, errUnsupportedUnary("-", i1, hintOperand)
		}
		return -c, nil
	}
}

// Plus is the identity. It is the one operation documented to alias: the
// returned operand IS i1, term storage included.
func Plus(i1 interface{}) (interface{}, error) {
	if KindOf(i1) == KindInvalid {
		return nil, errUnsupportedUnary("+", i1, hintOperand)
	}
	return i1, nil
}

// Pow returns i1 raised to exp. Scalars exponentiate natively. For a
// Variable or an affine expression the only representable exponent is 2,
// defined as i1*i1; anything else, and any power of a quadratic
// expression, fails with ErrUnsupportedOperation.
func Pow(i1 interface{}, exp int) (interface{}, error) {
	switch i1.(type) {
	case Variable, *AffineExpr:
		if exp != 2 {
			return nil, errUnsupportedUnary("^", i1, hintDegree)
		}
		return Mul(i1, i1)
	case *QuadExpr:
		return nil, errUnsupportedUnary("^", i1, hintDegree)
	default:
		c, ok := utils.ToFloat(i1)
		if !ok {
			return nil, errUnsupportedUnary("^", i1, hintOperand)
		}
		return math.Pow(c, float64(exp)), nil
	}
}

// Sum adds all operands. Accumulation goes through the in-place append
// primitives, so summing N inputs costs O(total terms), not O(N^2). Inputs
// are only read; the result owns fresh storage.
func Sum(items ...interface{}) (interface{}, error) {
	var constant float64
	var aff *AffineExpr
	var quad *QuadExpr
	for _, it := range items {
		switch x := it.(type) {
		case Variable:
			if aff == nil {
				aff = &AffineExpr{}
			}
			aff.AddTerm(1, x)
		case *AffineExpr:
			if aff == nil {
				aff = &AffineExpr{}
			}
			aff.Append(x)
		case *QuadExpr:
			if quad == nil {
				quad = &QuadExpr{}
			}
			quad.Append(x)
		default:
			c, ok := utils.ToFloat(it)
			if !ok {
				return nil, errUnsupportedUnary("+", it, hintOperand)
			}
			constant += c
		}
	}
	switch {
	case quad != nil:
		if aff != nil {
			quad.Aff.Append(aff)
		}
		quad.Aff.Constant += constant
		return quad, nil
	case aff != nil:
		aff.Constant += constant
		return aff, nil
	default:
		return constant, nil
	}
}
