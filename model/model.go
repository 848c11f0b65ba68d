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

// Package model implements the owning context for the expression algebra:
// it allocates variable identities (column indices), collects finished
// constraint values, and holds the objective. A Model must outlive every
// expression referencing its variables.
package model

import (
	"fmt"
	"strconv"

	"github.com/bits-and-blooms/bitset"

	"github.com/symplex/symplex/algebra"
	"github.com/symplex/symplex/constraint"
)

// ObjectiveSense says whether the objective is minimized or maximized.
type ObjectiveSense uint8

const (
	Minimize ObjectiveSense = iota
	Maximize
)

func (s ObjectiveSense) String() string {
	if s == Maximize {
		return "max"
	}
	return "min"
}

// Model owns variables and registered constraints. It is not safe for
// concurrent mutation.
type Model struct {
	names  []string
	linear []*constraint.LinearConstraint
	quads  []*constraint.QuadConstraint

	// columns referenced by at least one registered constraint
	used *bitset.BitSet

	objSense  ObjectiveSense
	objective interface{}
}

// New returns an empty model.
func New() *Model {
	return &Model{used: bitset.New(0)}
}

// NewVariable allocates the next column and returns its handle. An empty
// name gets a default "x<col>" name.
func (m *Model) NewVariable(name string) algebra.Variable {
	col := len(m.names)
	if name == "" {
		name = "x" + strconv.Itoa(col)
	}
	m.names = append(m.names, name)
	return algebra.NewVariable(m, col)
}

// NewVariables allocates n consecutive columns named prefix0..prefix(n-1).
func (m *Model) NewVariables(n int, prefix string) []algebra.Variable {
	vs := make([]algebra.Variable, n)
	for i := range vs {
		vs[i] = m.NewVariable(prefix + strconv.Itoa(i))
	}
	return vs
}

// VariableName implements algebra.Owner.
func (m *Model) VariableName(col int) string {
	if col < 0 || col >= len(m.names) {
		return "x" + strconv.Itoa(col)
	}
	return m.names[col]
}

// NbVariables returns the number of allocated columns.
func (m *Model) NbVariables() int { return len(m.names) }

// NbConstraints returns the number of registered constraints, linear and
// quadratic combined.
func (m *Model) NbConstraints() int { return len(m.linear) + len(m.quads) }

// AddConstraint registers c. Every variable appearing in c must belong to
// this model.
func (m *Model) AddConstraint(c constraint.Constraint) error {
	switch t := c.(type) {
	case *constraint.LinearConstraint:
		if err := m.markAffine(t.Expr); err != nil {
			return err
		}
		m.linear = append(m.linear, t)
	case *constraint.QuadConstraint:
		if err := m.markQuad(t.Expr); err != nil {
			return err
		}
		m.quads = append(m.quads, t)
	default:
		return fmt.Errorf("unknown constraint type %T", c)
	}
	return nil
}

// LinearConstraints returns the registered linear constraints.
func (m *Model) LinearConstraints() []*constraint.LinearConstraint { return m.linear }

// QuadConstraints returns the registered quadratic constraints.
func (m *Model) QuadConstraints() []*constraint.QuadConstraint { return m.quads }

// UsedColumns returns a copy of the set of columns referenced by at least
// one registered constraint.
func (m *Model) UsedColumns() *bitset.BitSet { return m.used.Clone() }

// SetObjective sets the objective. expr is a scalar, a Variable belonging
// to this model, or an affine/quadratic expression over its variables.
func (m *Model) SetObjective(sense ObjectiveSense, expr interface{}) error {
	switch e := expr.(type) {
	case algebra.Variable:
		if err := m.checkVar(e); err != nil {
			return err
		}
	case *algebra.AffineExpr:
		for _, v := range e.Vars {
			if err := m.checkVar(v); err != nil {
				return err
			}
		}
	case *algebra.QuadExpr:
		for i := range e.QVars1 {
			if err := m.checkVar(e.QVars1[i]); err != nil {
				return err
			}
			if err := m.checkVar(e.QVars2[i]); err != nil {
				return err
			}
		}
		for _, v := range e.Aff.Vars {
			if err := m.checkVar(v); err != nil {
				return err
			}
		}
	default:
		if algebra.KindOf(expr) != algebra.KindScalar {
			return fmt.Errorf("%w: objective of kind %v", algebra.ErrUnsupportedOperation, algebra.KindOf(expr))
		}
	}
	m.objSense, m.objective = sense, expr
	return nil
}

// Objective returns the objective sense and expression. The expression is
// nil until SetObjective is called.
func (m *Model) Objective() (ObjectiveSense, interface{}) { return m.objSense, m.objective }

func (m *Model) checkVar(v algebra.Variable) error {
	if v.Owner() != m {
		return fmt.Errorf("variable %s belongs to a different model", v)
	}
	return nil
}

func (m *Model) markVar(v algebra.Variable) error {
	if err := m.checkVar(v); err != nil {
		return err
	}
	m.used.Set(uint(v.Column()))
	return nil
}

func (m *Model) markAffine(e *algebra.AffineExpr) error {
	for _, v := range e.Vars {
		if err := m.markVar(v); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) markQuad(e *algebra.QuadExpr) error {
	for i := range e.QVars1 {
		if err := m.markVar(e.QVars1[i]); err != nil {
			return err
		}
		if err := m.markVar(e.QVars2[i]); err != nil {
			return err
		}
	}
	return m.markAffine(&e.Aff)
}
