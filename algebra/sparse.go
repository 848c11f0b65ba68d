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

// Nonzero is one stored entry of a sparse matrix: (row, column, value).
type Nonzero struct {
	Row, Col int
	Val      float64
}

// Sparse is a numeric sparse matrix in compressed sparse row form. Only
// stored entries participate in products; zero positions are never visited
// and never produce zero-coefficient terms. Explicit zero values are
// dropped at construction. Duplicate (row, col) entries are kept and
// behave additively, consistent with the engine's no-merge term lists.
type Sparse struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	vals       []float64
}

// NewSparse builds a sparse matrix from triplet entries. Entries outside
// the rows x cols shape fail with ErrDimensionMismatch.
func NewSparse(rows, cols int, entries []Nonzero) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: sparse matrix dimensions %dx%d must be positive",
			ErrDimensionMismatch, rows, cols)
	}
	counts := make([]int, rows)
	nnz := 0
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, fmt.Errorf("%w: entry (%d,%d) outside %dx%d sparse matrix",
				ErrDimensionMismatch, e.Row, e.Col, rows, cols)
		}
		if e.Val == 0 {
			continue
		}
		counts[e.Row]++
		nnz++
	}
	s := &Sparse{
		rows:   rows,
		cols:   cols,
		rowPtr: make([]int, rows+1),
		colIdx: make([]int, nnz),
		vals:   make([]float64, nnz),
	}
	for i := 0; i < rows; i++ {
		s.rowPtr[i+1] = s.rowPtr[i] + counts[i]
	}
	next := make([]int, rows)
	copy(next, s.rowPtr[:rows])
	for _, e := range entries {
		if e.Val == 0 {
			continue
		}
		p := next[e.Row]
		next[e.Row]++
		s.colIdx[p] = e.Col
		s.vals[p] = e.Val
	}
	return s, nil
}

// Dims returns the matrix dimensions.
func (s *Sparse) Dims() (rows, cols int) { return s.rows, s.cols }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// At returns the value at (i, j), zero when nothing is stored there.
// Duplicate entries sum.
func (s *Sparse) At(i, j int) float64 {
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		panic(fmt.Sprintf("algebra: index (%d,%d) outside %dx%d sparse matrix", i, j, s.rows, s.cols))
	}
	var v float64
	for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
		if s.colIdx[p] == j {
			v += s.vals[p]
		}
	}
	return v
}
