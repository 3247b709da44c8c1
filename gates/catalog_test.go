package gates

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-10

func randomParams(r *rand.Rand, n int) []float64 {
	p := make([]float64, n)
	for i := range p {
		p[i] = (r.Float64()*2 - 1) * 2 * math.Pi
	}
	return p
}

func TestCatalogMatricesAreUnitary(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			g, ok := Lookup(name)
			require.True(t, ok)

			for trial := 0; trial < 5; trial++ {
				m, err := MatrixFor(name, randomParams(r, g.Params))
				require.NoError(t, err)
				assert.Equal(t, 1<<g.Qubits, m.Dim())
				assert.Equal(t, g.Qubits, m.Qubits())
				assert.True(t, m.IsUnitary(tol), "%s is not unitary", name)
			}
		})
	}
}

func TestMatrixForErrors(t *testing.T) {
	_, err := MatrixFor("Frobnicate", nil)
	var unknown *UnknownGateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Frobnicate", unknown.Name)
	assert.True(t, errors.Is(err, ErrUnknownGate))

	_, err = MatrixFor("RX", nil)
	var count *ParameterCountError
	require.ErrorAs(t, err, &count)
	assert.Equal(t, 1, count.Expected)
	assert.Equal(t, 0, count.Actual)
	assert.ErrorIs(t, err, ErrParameterCount)

	_, err = MatrixFor("Hadamard", []float64{0.1})
	assert.ErrorIs(t, err, ErrParameterCount)
}

func TestFixedGatesAreCopies(t *testing.T) {
	a, err := MatrixFor("PauliX", nil)
	require.NoError(t, err)
	a.data[0] = 42

	b, err := MatrixFor("PauliX", nil)
	require.NoError(t, err)
	assert.Equal(t, complex128(0), b.At(0, 0))
}

func TestRotationConventions(t *testing.T) {
	theta := 0.73
	c, s := math.Cos(theta/2), math.Sin(theta/2)

	m, err := MatrixFor("RX", []float64{theta})
	require.NoError(t, err)
	assert.InDelta(t, c, real(m.At(0, 0)), tol)
	assert.InDelta(t, -s, imag(m.At(0, 1)), tol)
	assert.InDelta(t, -s, imag(m.At(1, 0)), tol)

	m, err = MatrixFor("RZ", []float64{theta})
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(m.At(0, 0)-cmplx.Exp(complex(0, -theta/2))), tol)
	assert.InDelta(t, 0, cmplx.Abs(m.At(1, 1)-cmplx.Exp(complex(0, theta/2))), tol)

	// Rot(φ, θ, ω) = RZ(ω)·RY(θ)·RZ(φ)
	phi, omega := 0.4, -1.3
	want := rz(omega).Mul(ry(theta)).Mul(rz(phi))
	got, err := MatrixFor("Rot", []float64{phi, theta, omega})
	require.NoError(t, err)
	assert.True(t, got.Equal(want, tol))

	// U3(θ, φ, λ) differs from Rot(λ, θ, φ) only by a global phase.
	u, err := MatrixFor("U3", []float64{theta, phi, omega})
	require.NoError(t, err)
	r := rot(omega, theta, phi)
	global := u.At(0, 0) / r.At(0, 0)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, 0, cmplx.Abs(u.At(i, j)-global*r.At(i, j)), tol)
		}
	}
}

func TestControlledLayout(t *testing.T) {
	cnot, err := MatrixFor("CNOT", nil)
	require.NoError(t, err)
	// |10> (control set) maps to |11>.
	assert.Equal(t, complex128(1), cnot.At(3, 2))
	assert.Equal(t, complex128(1), cnot.At(2, 3))
	assert.Equal(t, complex128(1), cnot.At(0, 0))
	assert.Equal(t, complex128(1), cnot.At(1, 1))

	toffoli, err := MatrixFor("Toffoli", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, toffoli.Dim())
	assert.Equal(t, complex128(1), toffoli.At(7, 6))
	assert.Equal(t, complex128(1), toffoli.At(5, 5))

	crz, err := MatrixFor("CRZ", []float64{1.1})
	require.NoError(t, err)
	assert.True(t, controlled(rz(1.1)).Equal(crz, tol))
	assert.Equal(t, complex128(1), crz.At(1, 1))
}

func TestDoubleExcitationSubspace(t *testing.T) {
	m, err := MatrixFor("DoubleExcitation", []float64{math.Pi})
	require.NoError(t, err)
	assert.Equal(t, 16, m.Dim())
	assert.InDelta(t, 0, cmplx.Abs(m.At(12, 3)-1), tol)
	assert.InDelta(t, 0, cmplx.Abs(m.At(3, 12)+1), tol)
	assert.Equal(t, complex128(1), m.At(5, 5))
}

func TestNewMatrixValidation(t *testing.T) {
	tests := []struct {
		name string
		rows [][]complex128
	}{
		{"empty", nil},
		{"scalar", [][]complex128{{1}}},
		{"three", [][]complex128{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}},
		{"ragged", [][]complex128{{1, 0}, {0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrix(tt.rows)
			var arity *InvalidArityError
			require.ErrorAs(t, err, &arity)
			assert.ErrorIs(t, err, ErrInvalidArity)
		})
	}

	m, err := NewMatrix([][]complex128{{0, 1}, {1, 0}})
	require.NoError(t, err)
	assert.True(t, m.Equal(pauliX, 0))
}

func TestDaggerInvertsUnitary(t *testing.T) {
	m, err := MatrixFor("U3", []float64{0.3, 1.7, -0.9})
	require.NoError(t, err)
	assert.True(t, m.Mul(m.Dagger()).Equal(identity, tol))
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	assert.True(t, slices.IsSorted(names))
	assert.Contains(t, names, "Hadamard")
	assert.Contains(t, names, "DoubleExcitation")
}
