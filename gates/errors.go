package gates

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownGate matches any *UnknownGateError.
	ErrUnknownGate = errors.New("unknown gate")
	// ErrParameterCount matches any *ParameterCountError.
	ErrParameterCount = errors.New("wrong parameter count")
	// ErrInvalidArity matches any *InvalidArityError.
	ErrInvalidArity = errors.New("invalid gate arity")
)

// UnknownGateError is returned when a name has no catalog entry.
type UnknownGateError struct {
	Name string
}

func (e *UnknownGateError) Error() string {
	return fmt.Sprintf("unknown gate %q", e.Name)
}

func (e *UnknownGateError) Is(target error) bool { return target == ErrUnknownGate }

// ParameterCountError is returned when a gate receives the wrong number of
// parameters.
type ParameterCountError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ParameterCountError) Error() string {
	return fmt.Sprintf("gate %s takes %d parameter(s), got %d", e.Name, e.Expected, e.Actual)
}

func (e *ParameterCountError) Is(target error) bool { return target == ErrParameterCount }

// InvalidArityError is returned for matrices that do not describe a gate on
// at least one qubit: empty, 1x1, ragged or non-power-of-two in size.
type InvalidArityError struct {
	Rows int
	Cols int
}

func (e *InvalidArityError) Error() string {
	return fmt.Sprintf("invalid gate matrix: %dx%d is not a 2^m x 2^m matrix with m >= 1", e.Rows, e.Cols)
}

func (e *InvalidArityError) Is(target error) bool { return target == ErrInvalidArity }
