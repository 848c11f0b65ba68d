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
	"strings"
)

// GenericQuadExpr is a sum of pairwise variable products plus an affine
// part:
//
//	QCoeffs[0]*QVars1[0]*QVars2[0] + ... + Aff
//
// The three quadratic term slices are parallel and share the affine type's
// non-canonicalization and ownership rules: duplicate pairs are legal, both
// orientations of a pair may coexist, and nothing is ever merged.
type GenericQuadExpr[C Coefficient, V comparable] struct {
	QVars1  []V
	QVars2  []V
	QCoeffs []C
	Aff     GenericAffineExpr[C, V]
}

// QuadExpr is the default instantiation: float64 coefficients over
// Variable terms.
type QuadExpr = GenericQuadExpr[float64, Variable]

// NewQuadExpr builds a quadratic expression from its term lists, taking
// ownership of all slices.
func NewQuadExpr[C Coefficient, V comparable](v1, v2 []V, coeffs []C, aff GenericAffineExpr[C, V]) *GenericQuadExpr[C, V] {
	if len(v1) != len(v2) || len(v1) != len(coeffs) {
		panic("algebra: quadratic term lists have unequal lengths")
	}
	return &GenericQuadExpr[C, V]{QVars1: v1, QVars2: v2, QCoeffs: coeffs, Aff: aff}
}

// NbQuadTerms returns the number of stored quadratic terms.
func (e *GenericQuadExpr[C, V]) NbQuadTerms() int { return len(e.QCoeffs) }

// AddQuadTerm appends one coeff*v1*v2 term in place and returns the
// receiver. O(1) amortized.
func (e *GenericQuadExpr[C, V]) AddQuadTerm(coeff C, v1, v2 V) *GenericQuadExpr[C, V] {
	e.QVars1 = append(e.QVars1, v1)
	e.QVars2 = append(e.QVars2, v2)
	e.QCoeffs = append(e.QCoeffs, coeff)
	return e
}

// Append appends every quadratic term of other and folds in its affine
// part, in place. other is only read.
func (e *GenericQuadExpr[C, V]) Append(other *GenericQuadExpr[C, V]) *GenericQuadExpr[C, V] {
	e.QVars1 = append(e.QVars1, other.QVars1...)
	e.QVars2 = append(e.QVars2, other.QVars2...)
	e.QCoeffs = append(e.QCoeffs, other.QCoeffs...)
	e.Aff.Append(&other.Aff)
	return e
}

// AppendScaled appends scale*other in place. other is only read.
func (e *GenericQuadExpr[C, V]) AppendScaled(scale C, other *GenericQuadExpr[C, V]) *GenericQuadExpr[C, V] {
	e.QVars1 = append(e.QVars1, other.QVars1...)
	e.QVars2 = append(e.QVars2, other.QVars2...)
	for _, c := range other.QCoeffs {
		e.QCoeffs = append(e.QCoeffs, scale*c)
	}
	e.Aff.AppendScaled(scale, &other.Aff)
	return e
}

// Clone returns a deep copy with fresh term storage.
func (e *GenericQuadExpr[C, V]) Clone() *GenericQuadExpr[C, V] {
	res := &GenericQuadExpr[C, V]{
		QVars1:  make([]V, len(e.QVars1)),
		QVars2:  make([]V, len(e.QVars2)),
		QCoeffs: make([]C, len(e.QCoeffs)),
		Aff:     *e.Aff.Clone(),
	}
	copy(res.QVars1, e.QVars1)
	copy(res.QVars2, e.QVars2)
	copy(res.QCoeffs, e.QCoeffs)
	return res
}

// Equal reports structural equality of the quadratic term lists and the
// embedded affine part, position by position. See AffineExpr.Equal.
func (e *GenericQuadExpr[C, V]) Equal(other *GenericQuadExpr[C, V]) bool {
	if len(e.QCoeffs) != len(other.QCoeffs) {
		return false
	}
	for i := range e.QCoeffs {
		if e.QVars1[i] != other.QVars1[i] ||
			e.QVars2[i] != other.QVars2[i] ||
			e.QCoeffs[i] != other.QCoeffs[i] {
			return false
		}
	}
	return e.Aff.Equal(&other.Aff)
}

// scale multiplies every quadratic coefficient and the affine part in place.
func (e *GenericQuadExpr[C, V]) scale(by C) *GenericQuadExpr[C, V] {
	for i := range e.QCoeffs {
		e.QCoeffs[i] *= by
	}
	e.Aff.scale(by)
	return e
}

func (e *GenericQuadExpr[C, V]) String() string {
	var sbb strings.Builder
	for i := range e.QCoeffs {
		if i > 0 {
			sbb.WriteString(" + ")
		}
		fmt.Fprintf(&sbb, "%v*%v*%v", e.QCoeffs[i], e.QVars1[i], e.QVars2[i])
	}
	if e.NbQuadTerms() == 0 {
		return e.Aff.String()
	}
	if e.Aff.NbTerms() > 0 || e.Aff.Constant != 0 {
		sbb.WriteString(" + ")
		sbb.WriteString(e.Aff.String())
	}
	return sbb.String()
}
