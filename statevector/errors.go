package statevector

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch matches any *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNonPowerOfTwoLength matches any *NonPowerOfTwoLengthError.
	ErrNonPowerOfTwoLength = errors.New("state length is not a power of two")
)

// DimensionMismatchError reports wires that do not fit the gate matrix or
// the state: wrong count, out of range, or repeated.
type DimensionMismatchError struct {
	Wires     []int
	Qubits    int // qubits the matrix acts on
	NumQubits int // qubits in the state
	Reason    string
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: %s (wires %v, gate qubits %d, state qubits %d)",
		e.Reason, e.Wires, e.Qubits, e.NumQubits)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// NonPowerOfTwoLengthError is returned when the state buffer cannot hold a
// whole number of qubits.
type NonPowerOfTwoLengthError struct {
	Length int
}

func (e *NonPowerOfTwoLengthError) Error() string {
	return fmt.Sprintf("state length %d is not a power of two", e.Length)
}

func (e *NonPowerOfTwoLengthError) Is(target error) bool { return target == ErrNonPowerOfTwoLength }

// OperationError records which operation of a list failed. Operations
// before Index have already been applied to the state.
//
// The original error can be accessed via errors.Unwrap.
type OperationError struct {
	Index int
	Op    string
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
