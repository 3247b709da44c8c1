// Package gates is the gate catalog: a static table from gate name to arity,
// parameter count and a generator for the gate's unitary matrix.
//
// Matrix layout: for a gate acting on wires [w0, w1, ...], row and column
// indices are read with w0 as the most-significant bit. Controlled gates
// therefore list their control wire(s) first.
package gates

import (
	"math"
	"math/cmplx"
	"slices"
)

// Gate describes one catalog entry.
type Gate struct {
	Name   string
	Qubits int
	Params int

	generate func(p []float64) *Matrix
}

// Matrix builds the gate's matrix for p. The caller must pass exactly
// g.Params values; MatrixFor performs that check.
func (g Gate) Matrix(p []float64) *Matrix { return g.generate(p) }

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	identity = diag(1, 1)
	hadamard = mat(
		[]complex128{invSqrt2, invSqrt2},
		[]complex128{invSqrt2, -invSqrt2},
	)
	pauliX = mat(
		[]complex128{0, 1},
		[]complex128{1, 0},
	)
	pauliY = mat(
		[]complex128{0, -1i},
		[]complex128{1i, 0},
	)
	pauliZ = diag(1, -1)
	sGate  = diag(1, 1i)
	tGate  = diag(1, cmplx.Exp(complex(0, math.Pi/4)))
	sxGate = mat(
		[]complex128{0.5 + 0.5i, 0.5 - 0.5i},
		[]complex128{0.5 - 0.5i, 0.5 + 0.5i},
	)
	swap = mat(
		[]complex128{1, 0, 0, 0},
		[]complex128{0, 0, 1, 0},
		[]complex128{0, 1, 0, 0},
		[]complex128{0, 0, 0, 1},
	)
	iswap = mat(
		[]complex128{1, 0, 0, 0},
		[]complex128{0, 0, 1i, 0},
		[]complex128{0, 1i, 0, 0},
		[]complex128{0, 0, 0, 1},
	)
)

func fixed(name string, m *Matrix) Gate {
	return Gate{
		Name:     name,
		Qubits:   m.Qubits(),
		generate: func([]float64) *Matrix { return m.Clone() },
	}
}

func parametric(name string, qubits, params int, gen func(p []float64) *Matrix) Gate {
	return Gate{Name: name, Qubits: qubits, Params: params, generate: gen}
}

var catalog = func() map[string]Gate {
	entries := []Gate{
		fixed("Identity", identity),
		fixed("Hadamard", hadamard),
		fixed("PauliX", pauliX),
		fixed("PauliY", pauliY),
		fixed("PauliZ", pauliZ),
		fixed("S", sGate),
		fixed("T", tGate),
		fixed("SX", sxGate),

		fixed("CNOT", controlled(pauliX)),
		fixed("CY", controlled(pauliY)),
		fixed("CZ", controlled(pauliZ)),
		fixed("CH", controlled(hadamard)),
		fixed("SWAP", swap),
		fixed("ISWAP", iswap),

		fixed("Toffoli", controlled(controlled(pauliX))),
		fixed("CSWAP", controlled(swap)),

		parametric("RX", 1, 1, func(p []float64) *Matrix { return rx(p[0]) }),
		parametric("RY", 1, 1, func(p []float64) *Matrix { return ry(p[0]) }),
		parametric("RZ", 1, 1, func(p []float64) *Matrix { return rz(p[0]) }),
		parametric("PhaseShift", 1, 1, func(p []float64) *Matrix { return phaseShift(p[0]) }),
		parametric("Rot", 1, 3, func(p []float64) *Matrix { return rot(p[0], p[1], p[2]) }),
		parametric("U2", 1, 2, func(p []float64) *Matrix { return u3(math.Pi/2, p[0], p[1]) }),
		parametric("U3", 1, 3, func(p []float64) *Matrix { return u3(p[0], p[1], p[2]) }),

		parametric("CRX", 2, 1, func(p []float64) *Matrix { return controlled(rx(p[0])) }),
		parametric("CRY", 2, 1, func(p []float64) *Matrix { return controlled(ry(p[0])) }),
		parametric("CRZ", 2, 1, func(p []float64) *Matrix { return controlled(rz(p[0])) }),
		parametric("CRot", 2, 3, func(p []float64) *Matrix { return controlled(rot(p[0], p[1], p[2])) }),
		parametric("ControlledPhaseShift", 2, 1, func(p []float64) *Matrix { return controlled(phaseShift(p[0])) }),
		parametric("IsingXX", 2, 1, func(p []float64) *Matrix { return isingXX(p[0]) }),
		parametric("IsingYY", 2, 1, func(p []float64) *Matrix { return isingYY(p[0]) }),
		parametric("IsingZZ", 2, 1, func(p []float64) *Matrix { return isingZZ(p[0]) }),
		parametric("SingleExcitation", 2, 1, func(p []float64) *Matrix { return singleExcitation(p[0], 1) }),
		parametric("SingleExcitationPlus", 2, 1, func(p []float64) *Matrix {
			return singleExcitation(p[0], cmplx.Exp(complex(0, p[0]/2)))
		}),
		parametric("SingleExcitationMinus", 2, 1, func(p []float64) *Matrix {
			return singleExcitation(p[0], cmplx.Exp(complex(0, -p[0]/2)))
		}),

		parametric("DoubleExcitation", 4, 1, func(p []float64) *Matrix { return doubleExcitation(p[0]) }),
	}

	m := make(map[string]Gate, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}()

// Lookup returns the catalog entry for name.
func Lookup(name string) (Gate, bool) {
	g, ok := catalog[name]
	return g, ok
}

// Names returns every catalog name in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MatrixFor returns the unitary matrix of the named gate.
func MatrixFor(name string, params []float64) (*Matrix, error) {
	g, ok := catalog[name]
	if !ok {
		return nil, &UnknownGateError{Name: name}
	}
	if len(params) != g.Params {
		return nil, &ParameterCountError{Name: name, Expected: g.Params, Actual: len(params)}
	}
	return g.generate(params), nil
}
