// Package device wraps the statevector engine the way a host simulation
// framework drives it: an optional state preparation, the circuit
// operations, then measurement-basis rotations applied to a copy of the
// pre-rotated state.
package device

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"svsim/statevector"
)

// MaxWires bounds the size of a device's state (2^MaxWires amplitudes).
const MaxWires = 30

var (
	// ErrPrepAfterOperations is returned when a preparation is submitted to
	// a device that has already applied operations since its last Reset.
	ErrPrepAfterOperations = errors.New("state preparation after operations have been applied")
	// ErrInvalidPreparation wraps every malformed StateVector or BasisState.
	ErrInvalidPreparation = errors.New("invalid state preparation")
	// ErrInvalidWires is returned by New for an unsupported wire count.
	ErrInvalidWires = errors.New("invalid number of wires")
)

// Qubit is a state-vector device over a fixed number of wires.
// It is not safe for concurrent use.
type Qubit struct {
	wires      int
	engine     *statevector.Engine
	state      []complex128
	preRotated []complex128
	dirty      bool
}

// New creates a device in the |0...0> state. opts configure the engine.
func New(wires int, opts ...statevector.Option) (*Qubit, error) {
	if wires < 1 || wires > MaxWires {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidWires, wires, MaxWires)
	}
	d := &Qubit{
		wires:  wires,
		engine: statevector.NewEngine(opts...),
	}
	d.Reset()
	return d, nil
}

// Wires returns the number of wires.
func (d *Qubit) Wires() int { return d.wires }

// Reset returns the device to |0...0>.
func (d *Qubit) Reset() {
	d.state = statevector.New(d.wires)
	d.preRotated = d.state
	d.dirty = false
}

// Apply runs an optional preparation, then ops, then rotations.
//
// Rotations act on a copy of the state reached after ops, so
// PreRotatedState keeps the circuit's output while State reflects the
// measurement basis. On error the device keeps whatever had been applied.
func (d *Qubit) Apply(ctx context.Context, prep Preparation, ops, rotations []statevector.Operation) error {
	if prep != nil {
		if d.dirty {
			return ErrPrepAfterOperations
		}
		if err := prep.prepare(d.state, d.wires); err != nil {
			return err
		}
	}

	if len(ops) > 0 {
		d.dirty = true
		if _, err := d.engine.Apply(ctx, d.state, ops); err != nil {
			return err
		}
	}
	d.preRotated = d.state

	if len(rotations) > 0 {
		rotated := slices.Clone(d.preRotated)
		if _, err := d.engine.Apply(ctx, rotated, rotations); err != nil {
			return fmt.Errorf("rotations: %w", err)
		}
		d.state = rotated
	}
	return nil
}

// State returns the current amplitudes. The slice is owned by the device.
func (d *Qubit) State() []complex128 { return d.state }

// PreRotatedState returns the amplitudes before measurement rotations.
func (d *Qubit) PreRotatedState() []complex128 { return d.preRotated }

// Probabilities returns |amplitude|^2 for every basis state.
func (d *Qubit) Probabilities() []float64 {
	return Probabilities(d.state)
}

// Probabilities returns |amplitude|^2 for every entry of state.
func Probabilities(state []complex128) []float64 {
	p := make([]float64, len(state))
	for i, a := range state {
		p[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return p
}

// WireProbabilities returns, for each wire, the probability of reading 1.
func WireProbabilities(state []complex128) []float64 {
	n, err := statevector.NumQubits(state)
	if err != nil {
		return nil
	}
	probs := make([]float64, n)
	for i, a := range state {
		p := real(a)*real(a) + imag(a)*imag(a)
		for w := 0; w < n; w++ {
			if i&(1<<w) != 0 {
				probs[w] += p
			}
		}
	}
	return probs
}
