package algebra

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperation is returned when an arithmetic operation has
	// no representation in a degree-2 affine/quadratic algebra: the result
	// degree would exceed 2, a division by a symbolic value was requested,
	// or an operand kind is not understood at all.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrDimensionMismatch is returned when matrix or vector shapes are
	// incompatible with the requested operation.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

const (
	hintDegree  = "the result degree would exceed 2"
	hintDivisor = "division by a symbolic value is not defined"
	hintOperand = "operand kind is not representable"
)

func errUnsupportedBinary(op string, i1, i2 interface{}, hint string) error {
	return fmt.Errorf("%w: %v %s %v: %s", ErrUnsupportedOperation, KindOf(i1), op, KindOf(i2), hint)
}

func errUnsupportedUnary(op string, i1 interface{}, hint string) error {
	return fmt.Errorf("%w: %s %v: %s", ErrUnsupportedOperation, op, KindOf(i1), hint)
}

func errShapes(op string, r1, c1, r2, c2 int) error {
	return fmt.Errorf("%w: %s with shapes %dx%d and %dx%d", ErrDimensionMismatch, op, r1, c1, r2, c2)
}
