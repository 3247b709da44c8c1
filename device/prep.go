package device

import (
	"fmt"
	"math"
)

// normTolerance is how far the squared norm of a prepared vector may be
// from one.
const normTolerance = 1e-10

// Preparation overwrites a device state before any operation runs.
type Preparation interface {
	prepare(state []complex128, numWires int) error
}

// StateVector loads explicit amplitudes onto Wires. Amplitude r of the
// vector maps Wires[0] to the most-significant bit of r, as for gate
// matrices. A nil Wires means every wire in order N-1, ..., 0, so the
// vector is copied unchanged. Wires not listed are left in |0>.
type StateVector struct {
	Amplitudes []complex128
	Wires      []int
}

// BasisState sets Wires to the computational basis values Bits and every
// other wire to 0. A nil Wires means wires 0..len(Bits)-1.
type BasisState struct {
	Bits  []int
	Wires []int
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPreparation, fmt.Sprintf(format, args...))
}

func checkPrepWires(wires []int, numWires int) error {
	seen := make(map[int]bool, len(wires))
	for _, w := range wires {
		if w < 0 || w >= numWires {
			return invalid("wire %d out of range", w)
		}
		if seen[w] {
			return invalid("wire %d repeated", w)
		}
		seen[w] = true
	}
	return nil
}

func (p StateVector) prepare(state []complex128, numWires int) error {
	if p.Wires == nil {
		if len(p.Amplitudes) != len(state) {
			return invalid("state vector has %d amplitudes, device needs %d", len(p.Amplitudes), len(state))
		}
		if err := checkNorm(p.Amplitudes); err != nil {
			return err
		}
		copy(state, p.Amplitudes)
		return nil
	}

	if err := checkPrepWires(p.Wires, numWires); err != nil {
		return err
	}
	m := len(p.Wires)
	if len(p.Amplitudes) != 1<<m {
		return invalid("state vector has %d amplitudes for %d wire(s)", len(p.Amplitudes), m)
	}
	if err := checkNorm(p.Amplitudes); err != nil {
		return err
	}

	clear(state)
	for r, a := range p.Amplitudes {
		idx := 0
		for j, w := range p.Wires {
			if r>>(m-1-j)&1 == 1 {
				idx |= 1 << w
			}
		}
		state[idx] = a
	}
	return nil
}

func checkNorm(amps []complex128) error {
	var sum float64
	for _, a := range amps {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	if math.Abs(sum-1) > normTolerance {
		return invalid("sum of squared amplitudes is %g, not 1", sum)
	}
	return nil
}

func (p BasisState) prepare(state []complex128, numWires int) error {
	wires := p.Wires
	if wires == nil {
		wires = make([]int, len(p.Bits))
		for i := range wires {
			wires[i] = i
		}
	}
	if len(p.Bits) != len(wires) {
		return invalid("%d bit(s) for %d wire(s)", len(p.Bits), len(wires))
	}
	if err := checkPrepWires(wires, numWires); err != nil {
		return err
	}

	idx := 0
	for i, b := range p.Bits {
		switch b {
		case 0:
		case 1:
			idx |= 1 << wires[i]
		default:
			return invalid("basis state bits must be 0 or 1, got %d", b)
		}
	}

	clear(state)
	state[idx] = 1
	return nil
}
