package statevector

import (
	"fmt"
	"strconv"
	"strings"

	"svsim/gates"
)

// Operation is one entry of an operation list.
//
// A Name found in the gate catalog takes precedence; Params are passed to it
// and Inverse selects the conjugate transpose. Otherwise Matrix is applied as
// given. Inverse has no effect on an explicit Matrix: the caller submits the
// matrix it wants applied, already inverted if need be.
//
// Wires[0] is the most-significant qubit of the matrix index, so a
// controlled gate lists its control wire(s) first.
type Operation struct {
	Name    string
	Matrix  *gates.Matrix
	Wires   []int
	Inverse bool
	Params  []float64
}

// Gate returns an operation applying the named catalog gate to wires.
func Gate(name string, wires []int, params ...float64) Operation {
	return Operation{Name: name, Wires: wires, Params: params}
}

// Unitary returns an operation applying m to wires.
func Unitary(m *gates.Matrix, wires ...int) Operation {
	return Operation{Matrix: m, Wires: wires}
}

// Adjoint returns a copy of op with the inverse flag toggled.
func (op Operation) Adjoint() Operation {
	op.Inverse = !op.Inverse
	return op
}

func (op Operation) String() string {
	var sb strings.Builder
	switch {
	case op.Name != "":
		sb.WriteString(op.Name)
	case op.Matrix != nil:
		fmt.Fprintf(&sb, "Matrix%dx%d", op.Matrix.Dim(), op.Matrix.Dim())
	default:
		sb.WriteString("<empty>")
	}
	if op.Inverse {
		sb.WriteString("†")
	}
	if len(op.Params) > 0 {
		sb.WriteByte('(')
		for i, p := range op.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(p, 'g', 6, 64))
		}
		sb.WriteByte(')')
	}
	sb.WriteString(fmt.Sprint(op.Wires))
	return sb.String()
}

// resolve turns op into the matrix that acts on the state.
func resolve(op Operation) (*gates.Matrix, error) {
	if op.Name != "" {
		if _, ok := gates.Lookup(op.Name); ok {
			m, err := gates.MatrixFor(op.Name, op.Params)
			if err != nil {
				return nil, err
			}
			if op.Inverse {
				m = m.Dagger()
			}
			return m, nil
		}
		if op.Matrix == nil {
			return nil, &gates.UnknownGateError{Name: op.Name}
		}
	}
	if op.Matrix == nil || op.Matrix.Dim() < 2 {
		return nil, &gates.InvalidArityError{}
	}
	return op.Matrix, nil
}

// checkWires validates wires against a gate on qubits qubits and a state of
// numQubits qubits.
func checkWires(wires []int, qubits, numQubits int) error {
	mismatch := func(reason string) error {
		return &DimensionMismatchError{Wires: wires, Qubits: qubits, NumQubits: numQubits, Reason: reason}
	}
	if len(wires) != qubits {
		return mismatch(fmt.Sprintf("gate acts on %d wire(s), %d given", qubits, len(wires)))
	}
	var seen uint64
	for _, w := range wires {
		if w < 0 || w >= numQubits {
			return mismatch(fmt.Sprintf("wire %d out of range", w))
		}
		if seen&(1<<uint(w)) != 0 {
			return mismatch(fmt.Sprintf("wire %d repeated", w))
		}
		seen |= 1 << uint(w)
	}
	return nil
}
