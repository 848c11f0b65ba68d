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

// Package constraint turns comparisons of symbolic expressions into
// constraint values a solver backend can consume. Nothing here registers
// anything anywhere; handing a finished constraint to a model is the
// caller's responsibility.
package constraint

import (
	"fmt"

	"github.com/symplex/symplex/algebra"
)

// Sense is the relation of a comparison.
type Sense uint8

const (
	LessEq Sense = iota
	Equal
	GreaterEq
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case Equal:
		return "=="
	case GreaterEq:
		return ">="
	default:
		return "sense(" + fmt.Sprint(uint8(s)) + ")"
	}
}

// flip mirrors the relation when both sides of a comparison swap.
func (s Sense) flip() Sense {
	switch s {
	case LessEq:
		return GreaterEq
	case GreaterEq:
		return LessEq
	default:
		return Equal
	}
}

// Constraint is a finished constraint value: either a *LinearConstraint or
// a *QuadConstraint.
type Constraint interface {
	isConstraint()
}

// LinearConstraint bounds an affine expression to a closed interval:
//
//	Lower <= Expr <= Upper
//
// Either bound may be infinite. Expr carries no constant; Compare folds it
// into the bounds. An infeasible interval (Lower > Upper) is not rejected
// here -- feasibility is a solver-time concern, not a construction-time
// error.
type LinearConstraint struct {
	Expr  *algebra.AffineExpr
	Lower float64
	Upper float64
}

func (*LinearConstraint) isConstraint() {}

func (c *LinearConstraint) String() string {
	return fmt.Sprintf("%g <= %s <= %g", c.Lower, c.Expr, c.Upper)
}

// QuadConstraint relates a quadratic expression to zero: Expr Sense 0.
// The comparison's right-hand scalar is folded into the expression's
// affine constant.
type QuadConstraint struct {
	Expr  *algebra.QuadExpr
	Sense Sense
}

func (*QuadConstraint) isConstraint() {}

func (c *QuadConstraint) String() string {
	return fmt.Sprintf("%s %s 0", c.Expr, c.Sense)
}
