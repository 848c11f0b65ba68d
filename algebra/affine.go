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

	"golang.org/x/exp/constraints"
)

// Coefficient is the set of types usable as expression coefficients.
type Coefficient interface {
	constraints.Integer | constraints.Float
}

// GenericAffineExpr is a linear combination of variables plus a constant:
//
//	Coeffs[0]*Vars[0] + Coeffs[1]*Vars[1] + ... + Constant
//
// Terms live in two parallel slices; len(Vars) == len(Coeffs) always holds.
// Variables are NOT required to be unique: the same variable may appear in
// several terms, and evaluation sums every occurrence. No merging or
// reordering ever happens -- that is what keeps AddTerm O(1) amortized.
//
// An expression owns its term storage. Arithmetic results are always
// freshly allocated; sharing term slices across two live expressions is a
// bug on the caller's side.
type GenericAffineExpr[C Coefficient, V comparable] struct {
	Vars     []V
	Coeffs   []C
	Constant C
}

// AffineExpr is the default instantiation: float64 coefficients over
// Variable terms.
type AffineExpr = GenericAffineExpr[float64, Variable]

// NewAffineExpr builds an expression from its term lists. The result takes
// ownership of both slices.
func NewAffineExpr[C Coefficient, V comparable](vars []V, coeffs []C, constant C) *GenericAffineExpr[C, V] {
	if len(vars) != len(coeffs) {
		panic("algebra: len(vars) != len(coeffs)")
	}
	return &GenericAffineExpr[C, V]{Vars: vars, Coeffs: coeffs, Constant: constant}
}

// NbTerms returns the number of stored terms, duplicates included.
func (e *GenericAffineExpr[C, V]) NbTerms() int { return len(e.Vars) }

// AddTerm appends one (coeff, variable) term in place and returns the
// receiver. O(1) amortized.
func (e *GenericAffineExpr[C, V]) AddTerm(coeff C, v V) *GenericAffineExpr[C, V] {
	e.Coeffs = append(e.Coeffs, coeff)
	e.Vars = append(e.Vars, v)
	return e
}

// Append appends every term of other and adds its constant, in place.
// other is only read. Runs in O(other.NbTerms()).
func (e *GenericAffineExpr[C, V]) Append(other *GenericAffineExpr[C, V]) *GenericAffineExpr[C, V] {
	e.Vars = append(e.Vars, other.Vars...)
	e.Coeffs = append(e.Coeffs, other.Coeffs...)
	e.Constant += other.Constant
	return e
}

// AppendScaled appends scale*other in place: every term of other multiplied
// by scale, plus scale*other.Constant. other is only read.
func (e *GenericAffineExpr[C, V]) AppendScaled(scale C, other *GenericAffineExpr[C, V]) *GenericAffineExpr[C, V] {
	e.Vars = append(e.Vars, other.Vars...)
	for _, c := range other.Coeffs {
		e.Coeffs = append(e.Coeffs, scale*c)
	}
	e.Constant += scale * other.Constant
	return e
}

// Clone returns a deep copy with fresh term storage.
func (e *GenericAffineExpr[C, V]) Clone() *GenericAffineExpr[C, V] {
	res := &GenericAffineExpr[C, V]{
		Vars:     make([]V, len(e.Vars)),
		Coeffs:   make([]C, len(e.Coeffs)),
		Constant: e.Constant,
	}
	copy(res.Vars, e.Vars)
	copy(res.Coeffs, e.Coeffs)
	return res
}

// Equal reports structural equality: equal constants and identical term
// lists position by position. Two mathematically identical expressions
// built in different term orders compare unequal; this is a debugging
// facility, not an equivalence oracle.
func (e *GenericAffineExpr[C, V]) Equal(other *GenericAffineExpr[C, V]) bool {
	if e.Constant != other.Constant || len(e.Vars) != len(other.Vars) {
		return false
	}
	for i := range e.Vars {
		if e.Vars[i] != other.Vars[i] || e.Coeffs[i] != other.Coeffs[i] {
			return false
		}
	}
	return true
}

// scale multiplies every coefficient and the constant in place.
func (e *GenericAffineExpr[C, V]) scale(by C) *GenericAffineExpr[C, V] {
	for i := range e.Coeffs {
		e.Coeffs[i] *= by
	}
	e.Constant *= by
	return e
}

func (e *GenericAffineExpr[C, V]) String() string {
	var sbb strings.Builder
	e.writeTerms(&sbb)
	if e.NbTerms() == 0 {
		fmt.Fprintf(&sbb, "%v", e.Constant)
	} else if e.Constant != 0 {
		fmt.Fprintf(&sbb, " + %v", e.Constant)
	}
	return sbb.String()
}

// writeTerms writes the variable terms without the constant.
func (e *GenericAffineExpr[C, V]) writeTerms(sbb *strings.Builder) {
	for i := range e.Vars {
		if i > 0 {
			sbb.WriteString(" + ")
		}
		fmt.Fprintf(sbb, "%v*%v", e.Coeffs[i], e.Vars[i])
	}
}
