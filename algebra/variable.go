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

import "strconv"

// Owner is the context a Variable belongs to. The owner allocates column
// indices and must outlive every expression referencing its variables.
type Owner interface {
	// VariableName returns a printable name for the given column index.
	VariableName(col int) string
}

// Variable is an opaque handle on one decision variable: the owning context
// plus a column index. It carries no numeric state of its own; coefficients
// live in expressions. Two Variables are equal iff owner and column are.
type Variable struct {
	owner Owner
	col   int
}

// NewVariable binds a column index of owner into a handle. Callers other
// than the owning context itself have no business creating variables.
func NewVariable(owner Owner, col int) Variable {
	return Variable{owner: owner, col: col}
}

// Owner returns the owning context.
func (v Variable) Owner() Owner { return v.owner }

// Column returns the variable's column index in its owner.
func (v Variable) Column() int { return v.col }

func (v Variable) String() string {
	if v.owner != nil {
		return v.owner.VariableName(v.col)
	}
	return "x" + strconv.Itoa(v.col)
}
