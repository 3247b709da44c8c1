// Package circuit loads operation lists from circuit files: a unitary subset
// of OpenQASM 2 and a YAML format that also carries explicit matrices.
package circuit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"svsim/gates"
	"svsim/statevector"
)

// ErrUnsupportedFormat is returned by Load for an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported circuit format")

// Circuit is a named operation list over a fixed number of wires.
type Circuit struct {
	Name      string
	NumQubits int
	Ops       []statevector.Operation
}

// AddGate appends a catalog gate.
func (c *Circuit) AddGate(name string, wires []int, params ...float64) {
	c.Ops = append(c.Ops, statevector.Gate(name, wires, params...))
}

// AddAdjoint appends the inverse of a catalog gate.
func (c *Circuit) AddAdjoint(name string, wires []int, params ...float64) {
	c.Ops = append(c.Ops, statevector.Gate(name, wires, params...).Adjoint())
}

// AddUnitary appends an explicit matrix.
func (c *Circuit) AddUnitary(m *gates.Matrix, wires ...int) {
	c.Ops = append(c.Ops, statevector.Unitary(m, wires...))
}

// Validate checks every operation against the catalog and the wire count
// without touching a state.
func (c *Circuit) Validate() error {
	if c.NumQubits < 1 {
		return fmt.Errorf("circuit needs at least one qubit, has %d", c.NumQubits)
	}
	var errs []error
	for i, op := range c.Ops {
		if err := validateOp(op, c.NumQubits); err != nil {
			errs = append(errs, fmt.Errorf("op %d (%s): %w", i, op, err))
		}
	}
	return errors.Join(errs...)
}

func validateOp(op statevector.Operation, numQubits int) error {
	arity := 0
	if g, ok := gates.Lookup(op.Name); ok {
		if len(op.Params) != g.Params {
			return &gates.ParameterCountError{Name: g.Name, Expected: g.Params, Actual: len(op.Params)}
		}
		arity = g.Qubits
	} else {
		switch {
		case op.Matrix != nil:
			arity = op.Matrix.Qubits()
		case op.Name != "":
			return &gates.UnknownGateError{Name: op.Name}
		default:
			return &gates.InvalidArityError{}
		}
	}
	if len(op.Wires) != arity {
		return fmt.Errorf("gate acts on %d wire(s), %d given", arity, len(op.Wires))
	}
	seen := make(map[int]bool, len(op.Wires))
	for _, w := range op.Wires {
		if w < 0 || w >= numQubits {
			return fmt.Errorf("wire %d out of range [0, %d)", w, numQubits)
		}
		if seen[w] {
			return fmt.Errorf("wire %d repeated", w)
		}
		seen[w] = true
	}
	return nil
}

// Load reads a circuit file, choosing the parser by extension.
func Load(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c *Circuit
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".qasm":
		c, err = ParseQASM(string(data))
	case ".yaml", ".yml":
		c, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}
