package circuit

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"svsim/gates"
	"svsim/statevector"
)

// circuitFile is the YAML form of a Circuit.
//
//	name: bell
//	qubits: 2
//	ops:
//	  - gate: Hadamard
//	    wires: [0]
//	  - gate: CRX
//	    wires: [0, 1]
//	    params: [pi/2]
//	    inverse: true
//	  - matrix:
//	      - [0, 1]
//	      - [1, 0]
//	    wires: [1]
type circuitFile struct {
	Name   string   `yaml:"name,omitempty"`
	Qubits int      `yaml:"qubits"`
	Ops    []opFile `yaml:"ops"`
}

type opFile struct {
	Gate    string    `yaml:"gate,omitempty"`
	Wires   []int     `yaml:"wires"`
	Params  []Angle   `yaml:"params,omitempty"`
	Inverse bool      `yaml:"inverse,omitempty"`
	Matrix  [][]Entry `yaml:"matrix,omitempty"`
}

// Angle is a YAML scalar holding a number or a pi expression.
type Angle float64

func (a *Angle) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: angle must be a scalar", value.Line)
	}
	v, err := ParseAngle(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*a = Angle(v)
	return nil
}

func (a Angle) MarshalYAML() (any, error) {
	return FormatAngle(float64(a)), nil
}

// Entry is one matrix element: a real scalar or a [re, im] pair.
type Entry complex128

func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var re Angle
		if err := value.Decode(&re); err != nil {
			return err
		}
		*e = Entry(complex(float64(re), 0))
		return nil
	case yaml.SequenceNode:
		var pair []Angle
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: complex entry needs [re, im], got %d value(s)", value.Line, len(pair))
		}
		*e = Entry(complex(float64(pair[0]), float64(pair[1])))
		return nil
	}
	return fmt.Errorf("line %d: matrix entry must be a number or [re, im]", value.Line)
}

func (e Entry) MarshalYAML() (any, error) {
	c := complex128(e)
	if imag(c) == 0 {
		return real(c), nil
	}
	return []float64{real(c), imag(c)}, nil
}

// ParseYAML decodes a YAML circuit. Unknown fields are rejected and the
// result is validated against the catalog.
func ParseYAML(data []byte) (*Circuit, error) {
	var f circuitFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	c := &Circuit{Name: f.Name, NumQubits: f.Qubits}
	var errs []error
	for i, o := range f.Ops {
		op, err := o.operation()
		if err != nil {
			errs = append(errs, fmt.Errorf("op %d: %w", i, err))
			continue
		}
		c.Ops = append(c.Ops, op)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (o opFile) operation() (statevector.Operation, error) {
	op := statevector.Operation{
		Name:    o.Gate,
		Wires:   o.Wires,
		Inverse: o.Inverse,
	}
	for _, p := range o.Params {
		op.Params = append(op.Params, float64(p))
	}
	if len(o.Matrix) > 0 {
		rows := make([][]complex128, len(o.Matrix))
		for i, row := range o.Matrix {
			rows[i] = make([]complex128, len(row))
			for j, e := range row {
				rows[i][j] = complex128(e)
			}
		}
		m, err := gates.NewMatrix(rows)
		if err != nil {
			return op, err
		}
		op.Matrix = m
	}
	return op, nil
}

// MarshalYAML renders c in the form ParseYAML reads.
func MarshalYAML(c *Circuit) ([]byte, error) {
	f := circuitFile{Name: c.Name, Qubits: c.NumQubits, Ops: make([]opFile, len(c.Ops))}
	for i, op := range c.Ops {
		o := opFile{Gate: op.Name, Wires: op.Wires, Inverse: op.Inverse}
		for _, p := range op.Params {
			o.Params = append(o.Params, Angle(p))
		}
		if op.Matrix != nil {
			dim := op.Matrix.Dim()
			o.Matrix = make([][]Entry, dim)
			for r := 0; r < dim; r++ {
				o.Matrix[r] = make([]Entry, dim)
				for col := 0; col < dim; col++ {
					o.Matrix[r][col] = Entry(op.Matrix.At(r, col))
				}
			}
		}
		f.Ops[i] = o
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
