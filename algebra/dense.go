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

import "fmt"

// Matrix is a dense, row-major two-dimensional array whose elements are
// engine operands: numeric scalars, Variables, affine or quadratic
// expressions. A vector is a Matrix with a single row or column.
type Matrix struct {
	rows, cols int
	data       []interface{}
}

// NewMatrix allocates a rows x cols matrix with every element float64(0).
func NewMatrix(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("algebra: matrix dimensions %dx%d must be positive", rows, cols))
	}
	data := make([]interface{}, rows*cols)
	for i := range data {
		data[i] = float64(0)
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// MatrixFromRows builds a matrix from row slices. All rows must have the
// same length.
func MatrixFromRows(rows [][]interface{}) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix literal", ErrDimensionMismatch)
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d",
				ErrDimensionMismatch, i, len(r), m.cols)
		}
		copy(m.data[i*m.cols:(i+1)*m.cols], r)
	}
	return m, nil
}

// Vector builds an n x 1 column vector from its elements.
func Vector(elems ...interface{}) *Matrix {
	m := NewMatrix(len(elems), 1)
	copy(m.data, elems)
	return m
}

// VariableVector builds an n x 1 column vector from variables.
func VariableVector(vs []Variable) *Matrix {
	m := NewMatrix(len(vs), 1)
	for i, v := range vs {
		m.data[i] = v
	}
	return m
}

// Dims returns the matrix dimensions.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) interface{} { return m.data[m.index(i, j)] }

// Set stores v at (i, j). The matrix borrows v; callers mutating an
// expression after storing it see the mutation reflected here.
func (m *Matrix) Set(i, j int, v interface{}) { m.data[m.index(i, j)] = v }

func (m *Matrix) index(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("algebra: index (%d,%d) outside %dx%d matrix", i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

func (m *Matrix) isVector() bool { return m.rows == 1 || m.cols == 1 }
