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
	"fmt"

	"github.com/symplex/symplex/internal/utils"
)

// shapeOf returns the dimensions of a *Matrix or *Sparse operand.
func shapeOf(a interface{}) (rows, cols int, ok bool) {
	switch m := a.(type) {
	case *Matrix:
		rows, cols = m.Dims()
		return rows, cols, true
	case *Sparse:
		rows, cols = m.Dims()
		return rows, cols, true
	default:
		return 0, 0, false
	}
}

// isNumericZero reports whether v is a plain scalar equal to zero. Zero
// factors contribute nothing to a product and are skipped, so identity-like
// products preserve their symbolic inputs exactly, with no zero-coefficient
// terms.
func isNumericZero(v interface{}) bool {
	c, ok := utils.ToFloat(v)
	return ok && c == 0
}

// addInto folds x into acc and returns the (possibly promoted)
// accumulator, mutating term storage in place. Both arguments must be
// engine-owned intermediates; a nil acc is the empty sum.
func addInto(acc, x interface{}) (interface{}, error) {
	if acc == nil {
		return x, nil
	}
	switch a := acc.(type) {
	case *QuadExpr:
		switch y := x.(type) {
		case *QuadExpr:
			return a.Append(y), nil
		case *AffineExpr:
			a.Aff.Append(y)
			return a, nil
		case Variable:
			a.Aff.AddTerm(1, y)
			return a, nil
		default:
			c, ok := utils.ToFloat(x)
			if !ok {
				return nil, errUnsupportedBinary("+", acc, x, hintOperand)
			}
			a.Aff.Constant += c
			return a, nil
		}
	case *AffineExpr:
		switch y := x.(type) {
		case *QuadExpr:
			y.Aff.Append(a)
			return y, nil
		case *AffineExpr:
			return a.Append(y), nil
		case Variable:
			return a.AddTerm(1, y), nil
		default:
			c, ok := utils.ToFloat(x)
			if !ok {
				return nil, errUnsupportedBinary("+", acc, x, hintOperand)
			}
			a.Constant += c
			return a, nil
		}
	case Variable:
		return addInto(varAffine(1, a), x)
	default:
		c, ok := utils.ToFloat(acc)
		if !ok {
			return nil, errUnsupportedBinary("+", acc, x, hintOperand)
		}
		switch y := x.(type) {
		case *QuadExpr:
			y.Aff.Constant += c
			return y, nil
		case *AffineExpr:
			y.Constant += c
			return y, nil
		case Variable:
			res := varAffine(1, y)
			res.Constant = c
			return res, nil
		default:
			d, ok := utils.ToFloat(x)
			if !ok {
				return nil, errUnsupportedBinary("+", acc, x, hintOperand)
			}
			return c + d, nil
		}
	}
}

// MatMul computes the matrix product a*b with the standard definition
// ret[i,j] = sum_k a[i,k]*b[k,j]. a and b are each a *Matrix or a *Sparse.
// Every elementary multiply goes through the dispatch engine, and every
// accumulation through the in-place append primitives, so an output cell
// costs time linear in its term count. Sparse operands contribute only
// their stored entries. Element kinds promote per the dispatch rules; a
// product of two quadratic elements fails with ErrUnsupportedOperation.
func MatMul(a, b interface{}) (*Matrix, error) {
	ar, ac, ok := shapeOf(a)
	if !ok {
		return nil, fmt.Errorf("%w: matrix product left operand %T is not a *Matrix or *Sparse",
			ErrUnsupportedOperation, a)
	}
	br, bc, ok := shapeOf(b)
	if !ok {
		return nil, fmt.Errorf("%w: matrix product right operand %T is not a *Matrix or *Sparse",
			ErrUnsupportedOperation, b)
	}
	if ac != br {
		return nil, errShapes("matrix product", ar, ac, br, bc)
	}

	acc := make([]interface{}, ar*bc)
	var err error
	switch x := a.(type) {
	case *Matrix:
		switch y := b.(type) {
		case *Matrix:
			err = mulDenseDense(x, y, acc)
		case *Sparse:
			err = mulDenseSparse(x, y, acc)
		}
	case *Sparse:
		switch y := b.(type) {
		case *Matrix:
			err = mulSparseDense(x, y, acc)
		case *Sparse:
			err = mulSparseSparse(x, y, acc)
		}
	}
	if err != nil {
		return nil, err
	}

	for i := range acc {
		if acc[i] == nil {
			acc[i] = float64(0)
		}
	}
	return &Matrix{rows: ar, cols: bc, data: acc}, nil
}

func mulDenseDense(a, b *Matrix, acc []interface{}) error {
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if isNumericZero(aik) {
				continue
			}
			for j := 0; j < b.cols; j++ {
				bkj := b.data[k*b.cols+j]
				if isNumericZero(bkj) {
					continue
				}
				p, err := Mul(aik, bkj)
				if err != nil {
					return err
				}
				if acc[i*b.cols+j], err = addInto(acc[i*b.cols+j], p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func mulSparseDense(a *Sparse, b *Matrix, acc []interface{}) error {
	for i := 0; i < a.rows; i++ {
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			k, v := a.colIdx[p], a.vals[p]
			for j := 0; j < b.cols; j++ {
				bkj := b.data[k*b.cols+j]
				if isNumericZero(bkj) {
					continue
				}
				prod, err := Mul(v, bkj)
				if err != nil {
					return err
				}
				if acc[i*b.cols+j], err = addInto(acc[i*b.cols+j], prod); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func mulDenseSparse(a *Matrix, b *Sparse, acc []interface{}) error {
	for k := 0; k < b.rows; k++ {
		for p := b.rowPtr[k]; p < b.rowPtr[k+1]; p++ {
			j, w := b.colIdx[p], b.vals[p]
			for i := 0; i < a.rows; i++ {
				aik := a.data[i*a.cols+k]
				if isNumericZero(aik) {
					continue
				}
				prod, err := Mul(aik, w)
				if err != nil {
					return err
				}
				if acc[i*b.cols+j], err = addInto(acc[i*b.cols+j], prod); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func mulSparseSparse(a, b *Sparse, acc []interface{}) error {
	for i := 0; i < a.rows; i++ {
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			k, v := a.colIdx[p], a.vals[p]
			for q := b.rowPtr[k]; q < b.rowPtr[k+1]; q++ {
				j, w := b.colIdx[q], b.vals[q]
				var err error
				if acc[i*b.cols+j], err = addInto(acc[i*b.cols+j], v*w); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Dot computes the generalized inner product sum_k a[k]*b[k]. Each
// argument is a vector-shaped *Matrix, an []interface{} operand slice, a
// []float64, or a []Variable. Lengths must match exactly.
func Dot(a, b interface{}) (interface{}, error) {
	av, ok := asVector(a)
	if !ok {
		return nil, fmt.Errorf("%w: dot product left operand %T is not a vector",
			ErrUnsupportedOperation, a)
	}
	bv, ok := asVector(b)
	if !ok {
		return nil, fmt.Errorf("%w: dot product right operand %T is not a vector",
			ErrUnsupportedOperation, b)
	}
	if len(av) != len(bv) {
		return nil, fmt.Errorf("%w: dot product of vectors with lengths %d and %d",
			ErrDimensionMismatch, len(av), len(bv))
	}
	var acc interface{}
	for k := range av {
		if isNumericZero(av[k]) || isNumericZero(bv[k]) {
			continue
		}
		p, err := Mul(av[k], bv[k])
		if err != nil {
			return nil, err
		}
		if acc, err = addInto(acc, p); err != nil {
			return nil, err
		}
	}
	if acc == nil {
		return float64(0), nil
	}
	return acc, nil
}

func asVector(a interface{}) ([]interface{}, bool) {
	switch v := a.(type) {
	case *Matrix:
		if v.isVector() {
			return v.data, true
		}
		return nil, false
	case []interface{}:
		return v, true
	case []float64:
		out := make([]interface{}, len(v))
		for i, c := range v {
			out[i] = c
		}
		return out, true
	case []Variable:
		out := make([]interface{}, len(v))
		for i, x := range v {
			out[i] = x
		}
		return out, true
	default:
		return nil, false
	}
}

// ElemAdd adds elementwise. Operands are matrices of equal shape, or one
// matrix and one single operand broadcast across it.
func ElemAdd(a, b interface{}) (*Matrix, error) { return elementwise("+", Add, a, b) }

// ElemSub subtracts elementwise, with the same broadcast rules as ElemAdd.
func ElemSub(a, b interface{}) (*Matrix, error) { return elementwise("-", Sub, a, b) }

// ElemMul multiplies elementwise (Hadamard product), with the same
// broadcast rules as ElemAdd.
func ElemMul(a, b interface{}) (*Matrix, error) { return elementwise("*", Mul, a, b) }

// ElemDiv divides elementwise; the divisor side must be numeric, per the
// dispatch engine's division rules.
func ElemDiv(a, b interface{}) (*Matrix, error) { return elementwise("/", Div, a, b) }

func elementwise(op string, f func(interface{}, interface{}) (interface{}, error), a, b interface{}) (*Matrix, error) {
	am, aok := a.(*Matrix)
	bm, bok := b.(*Matrix)
	switch {
	case aok && bok:
		if am.rows != bm.rows || am.cols != bm.cols {
			return nil, errShapes("elementwise "+op, am.rows, am.cols, bm.rows, bm.cols)
		}
		out := &Matrix{rows: am.rows, cols: am.cols, data: make([]interface{}, len(am.data))}
		for i := range am.data {
			v, err := f(am.data[i], bm.data[i])
			if err != nil {
				return nil, err
			}
			out.data[i] = v
		}
		return out, nil
	case aok:
		out := &Matrix{rows: am.rows, cols: am.cols, data: make([]interface{}, len(am.data))}
		for i := range am.data {
			v, err := f(am.data[i], b)
			if err != nil {
				return nil, err
			}
			out.data[i] = v
		}
		return out, nil
	case bok:
		out := &Matrix{rows: bm.rows, cols: bm.cols, data: make([]interface{}, len(bm.data))}
		for i := range bm.data {
			v, err := f(a, bm.data[i])
			if err != nil {
				return nil, err
			}
			out.data[i] = v
		}
		return out, nil
	default:
		return nil, errUnsupportedBinary(op, a, b, "elementwise operation needs at least one *Matrix operand")
	}
}

// IsSymmetric reports whether m is square and every (i,j)/(j,i) pair is
// structurally identical. Mathematically equal but differently ordered
// expressions do not count; see StructurallyEqual.
func IsSymmetric(m *Matrix) bool {
	if m.rows != m.cols {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := i + 1; j < m.cols; j++ {
			if !StructurallyEqual(m.data[i*m.cols+j], m.data[j*m.cols+i]) {
				return false
			}
		}
	}
	return true
}
