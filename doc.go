// Package symplex provides a symbolic linear and quadratic expression
// algebra over decision variables, the core of an optimization-modeling
// toolkit.
//
// Expressions are built by ordinary arithmetic composition through the
// algebra package; comparisons of expressions become constraint values
// through the constraint package; the model package owns variable
// identities and collects finished constraints for a solver backend.
package symplex

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.1.0")
