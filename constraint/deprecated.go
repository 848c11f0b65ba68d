package constraint

import (
	"sync"

	"github.com/symplex/symplex/logger"
)

var operatorWarnOnce sync.Once

func warnOperatorConstruction() {
	operatorWarnOnce.Do(func() {
		log := logger.Logger()
		log.Warn().Msg("operator-style constraint constructors (Le, Eq, Ge) are deprecated; use Compare")
	})
}

// Le builds the constraint lhs <= rhs.
//
// Deprecated: use Compare with LessEq. Kept for callers of the old
// operator-style API; the first call logs a warning, once per process.
func Le(lhs, rhs interface{}) (Constraint, error) {
	warnOperatorConstruction()
	return Compare(lhs, LessEq, rhs)
}

// Eq builds the constraint lhs == rhs.
//
// Deprecated: use Compare with Equal.
func Eq(lhs, rhs interface{}) (Constraint, error) {
	warnOperatorConstruction()
	return Compare(lhs, Equal, rhs)
}

// Ge builds the constraint lhs >= rhs.
//
// Deprecated: use Compare with GreaterEq.
func Ge(lhs, rhs interface{}) (Constraint, error) {
	warnOperatorConstruction()
	return Compare(lhs, GreaterEq, rhs)
}
