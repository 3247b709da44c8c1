package circuit

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svsim/gates"
	"svsim/statevector"
)

func TestParseQASMBell(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
barrier q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];`

	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumQubits)
	assert.Equal(t, []statevector.Operation{
		statevector.Gate("Hadamard", []int{0}),
		statevector.Gate("CNOT", []int{0, 1}),
	}, c.Ops)
}

func TestParseQASMGateMapping(t *testing.T) {
	qasm := `OPENQASM 2.0;
qreg q[3];
sdg q[0];
tdg q[1];
sxdg q[2];
u1(pi/4) q[0];
p(pi/4) q[1];
cu1(pi/2) q[0], q[2];
u3(pi, 0, pi) q[1];
u2(0, pi) q[2];
rzz(0.5) q[0], q[1];
ccx q[0], q[1], q[2];
crot(0.1, 0.2, 0.3) q[2], q[0];
`
	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	require.Len(t, c.Ops, 11)

	want := []struct {
		name    string
		inverse bool
		wires   []int
		params  []float64
	}{
		{"S", true, []int{0}, nil},
		{"T", true, []int{1}, nil},
		{"SX", true, []int{2}, nil},
		{"PhaseShift", false, []int{0}, []float64{math.Pi / 4}},
		{"PhaseShift", false, []int{1}, []float64{math.Pi / 4}},
		{"ControlledPhaseShift", false, []int{0, 2}, []float64{math.Pi / 2}},
		{"U3", false, []int{1}, []float64{math.Pi, 0, math.Pi}},
		{"U2", false, []int{2}, []float64{0, math.Pi}},
		{"IsingZZ", false, []int{0, 1}, []float64{0.5}},
		{"Toffoli", false, []int{0, 1, 2}, nil},
		{"CRot", false, []int{2, 0}, []float64{0.1, 0.2, 0.3}},
	}
	for i, w := range want {
		op := c.Ops[i]
		assert.Equal(t, w.name, op.Name, "op %d", i)
		assert.Equal(t, w.inverse, op.Inverse, "op %d", i)
		assert.Equal(t, w.wires, op.Wires, "op %d", i)
		assert.InDeltaSlice(t, w.params, op.Params, 1e-12, "op %d", i)
	}
}

func TestParseQASMRegisters(t *testing.T) {
	qasm := `OPENQASM 2.0;
qreg a[2];
qreg b[3]; h a; cx a[1], b[2]; // trailing comment
x b;`
	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, 5, c.NumQubits)

	var got [][]int
	for _, op := range c.Ops {
		got = append(got, op.Wires)
	}
	assert.Equal(t, [][]int{{0}, {1}, {1, 4}, {2}, {3}, {4}}, got)
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
		line   int
	}{
		{"reset", "qreg q[1];\nreset q[0];", ErrNonUnitary, 2},
		{"conditional", "qreg q[1];\ncreg c[1];\nif(c==1) x q[0];", ErrNonUnitary, 3},
		{"unknown gate", "qreg q[1];\nfoo q[0];", gates.ErrUnknownGate, 2},
		{"param count", "qreg q[1];\nrx q[0];", gates.ErrParameterCount, 2},
		{"bad angle", "qreg q[1];\nrx(twopi) q[0];", nil, 2},
		{"arity", "qreg q[2];\ncx q[0];", nil, 2},
		{"out of range", "qreg q[2];\nh q[2];", nil, 2},
		{"same qubit twice", "qreg q[2];\ncx q[1], q[1];", nil, 2},
		{"undeclared register", "qreg q[2];\nh r[0];", nil, 2},
		{"custom gate", "qreg q[1];\ngate g a { h a; }", nil, 2},
		{"no register", "OPENQASM 2.0;", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQASM(tt.src)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParseQASMCollectsEveryBadLine(t *testing.T) {
	_, err := ParseQASM("qreg q[1];\nfoo q[0];\nh q[0];\nreset q[0];")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "line 4")
	assert.NotContains(t, err.Error(), "line 3")
}

func TestToQASMRoundTrip(t *testing.T) {
	c := &Circuit{NumQubits: 3}
	c.AddGate("RX", []int{0}, math.Pi/2)
	c.AddGate("RY", []int{1}, 3*math.Pi/4)
	c.AddGate("RZ", []int{0}, -math.Pi)
	c.AddGate("CRX", []int{0, 1}, math.Pi/4)
	c.AddAdjoint("S", []int{2})
	c.AddGate("SingleExcitation", []int{1, 2}, 0.3)
	c.AddGate("PhaseShift", []int{2}, 0.125)

	qasm, err := ToQASM(c)
	require.NoError(t, err)
	for _, line := range []string{
		"qreg q[3];",
		"rx(pi/2) q[0];",
		"ry(3*pi/4) q[1];",
		"rz(-pi) q[0];",
		"crx(pi/4) q[0], q[1];",
		"sdg q[2];",
		"singleexcitation(0.3) q[1], q[2];",
		"u1(0.125) q[2];",
	} {
		assert.Contains(t, qasm, line)
	}

	back, err := ParseQASM(qasm)
	require.NoError(t, err)
	require.Len(t, back.Ops, len(c.Ops))
	for i := range c.Ops {
		assert.Equal(t, c.Ops[i].Name, back.Ops[i].Name)
		assert.Equal(t, c.Ops[i].Wires, back.Ops[i].Wires)
		assert.Equal(t, c.Ops[i].Inverse, back.Ops[i].Inverse)
		assert.InDeltaSlice(t, c.Ops[i].Params, back.Ops[i].Params, 1e-12)
	}
}

func TestToQASMRejectsInexpressibleOps(t *testing.T) {
	x, err := gates.MatrixFor("PauliX", nil)
	require.NoError(t, err)
	c := &Circuit{NumQubits: 1}
	c.AddUnitary(x, 0)
	_, err = ToQASM(c)
	assert.Error(t, err)

	c = &Circuit{NumQubits: 1}
	c.AddAdjoint("RX", []int{0}, 0.2)
	_, err = ToQASM(c)
	assert.Error(t, err)
}

func TestToQASMHeader(t *testing.T) {
	qasm, err := ToQASM(&Circuit{NumQubits: 1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qasm, "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n"))
}
