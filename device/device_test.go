package device

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svsim/statevector"
)

const tol = 1e-12

func assertState(t *testing.T, want, got []complex128) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, real(want[i]), real(got[i]), tol, "re[%d]", i)
		assert.InDelta(t, imag(want[i]), imag(got[i]), tol, "im[%d]", i)
	}
}

func TestNewValidatesWires(t *testing.T) {
	for _, n := range []int{0, -1, MaxWires + 1} {
		_, err := New(n)
		assert.ErrorIs(t, err, ErrInvalidWires, "wires=%d", n)
	}

	d, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Wires())
	assertState(t, statevector.New(3), d.State())
}

func TestApplyBellWithRotations(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)

	ops := []statevector.Operation{
		statevector.Gate("Hadamard", []int{0}),
		statevector.Gate("CNOT", []int{0, 1}),
	}
	rotations := []statevector.Operation{
		statevector.Gate("Hadamard", []int{0}),
		statevector.Gate("Hadamard", []int{1}),
	}
	require.NoError(t, d.Apply(context.Background(), nil, ops, rotations))

	r := 1 / math.Sqrt2
	assertState(t, []complex128{complex(r, 0), 0, 0, complex(r, 0)}, d.PreRotatedState())
	// H⊗H maps the Bell state (|00>+|11>)/√2 to itself.
	assertState(t, []complex128{complex(r, 0), 0, 0, complex(r, 0)}, d.State())
}

func TestRotationsLeavePreRotatedStateIntact(t *testing.T) {
	d, err := New(1)
	require.NoError(t, err)

	err = d.Apply(context.Background(), nil,
		[]statevector.Operation{statevector.Gate("Hadamard", []int{0})},
		[]statevector.Operation{statevector.Gate("Hadamard", []int{0})},
	)
	require.NoError(t, err)

	r := 1 / math.Sqrt2
	assertState(t, []complex128{complex(r, 0), complex(r, 0)}, d.PreRotatedState())
	assertState(t, []complex128{1, 0}, d.State())
	assert.InDeltaSlice(t, []float64{1, 0}, d.Probabilities(), tol)
}

func TestStateVectorPreparation(t *testing.T) {
	r := 1 / math.Sqrt2

	t.Run("all wires", func(t *testing.T) {
		d, err := New(2)
		require.NoError(t, err)
		amps := []complex128{0, complex(r, 0), 0, complex(0, r)}
		require.NoError(t, d.Apply(context.Background(), StateVector{Amplitudes: amps}, nil, nil))
		assertState(t, amps, d.State())
	})

	t.Run("subset of wires", func(t *testing.T) {
		d, err := New(3)
		require.NoError(t, err)
		// Wires[0] = 2 is the high bit of the two-wire vector: |10> sets wire 2.
		prep := StateVector{Amplitudes: []complex128{0, 0, 1, 0}, Wires: []int{2, 0}}
		require.NoError(t, d.Apply(context.Background(), prep, nil, nil))
		want := make([]complex128, 8)
		want[1<<2] = 1
		assertState(t, want, d.State())
	})

	t.Run("then operations", func(t *testing.T) {
		d, err := New(1)
		require.NoError(t, err)
		prep := StateVector{Amplitudes: []complex128{0, 1}}
		ops := []statevector.Operation{statevector.Gate("PauliX", []int{0})}
		require.NoError(t, d.Apply(context.Background(), prep, ops, nil))
		assertState(t, []complex128{1, 0}, d.State())
	})
}

func TestBasisStatePreparation(t *testing.T) {
	d, err := New(3)
	require.NoError(t, err)
	require.NoError(t, d.Apply(context.Background(), BasisState{Bits: []int{1, 0, 1}}, nil, nil))
	want := make([]complex128, 8)
	want[0b101] = 1
	assertState(t, want, d.State())

	d.Reset()
	require.NoError(t, d.Apply(context.Background(), BasisState{Bits: []int{1}, Wires: []int{1}}, nil, nil))
	want = make([]complex128, 8)
	want[0b010] = 1
	assertState(t, want, d.State())
}

func TestPreparationErrors(t *testing.T) {
	tests := []struct {
		name string
		prep Preparation
	}{
		{"wrong length", StateVector{Amplitudes: []complex128{1, 0}}},
		{"not normalised", StateVector{Amplitudes: []complex128{1, 1, 0, 0}}},
		{"subset length", StateVector{Amplitudes: []complex128{1, 0}, Wires: []int{0, 1}}},
		{"wire out of range", StateVector{Amplitudes: []complex128{1, 0}, Wires: []int{5}}},
		{"repeated wire", BasisState{Bits: []int{1, 1}, Wires: []int{0, 0}}},
		{"bit not binary", BasisState{Bits: []int{2}}},
		{"bits and wires differ", BasisState{Bits: []int{1, 0}, Wires: []int{0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(2)
			require.NoError(t, err)
			err = d.Apply(context.Background(), tt.prep, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidPreparation)
			assertState(t, statevector.New(2), d.State())
		})
	}
}

func TestPreparationAfterOperations(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, d.Apply(ctx, nil, []statevector.Operation{statevector.Gate("PauliX", []int{0})}, nil))
	err = d.Apply(ctx, BasisState{Bits: []int{1, 1}}, nil, nil)
	assert.ErrorIs(t, err, ErrPrepAfterOperations)

	d.Reset()
	assert.NoError(t, d.Apply(ctx, BasisState{Bits: []int{1, 1}}, nil, nil))
}

func TestApplyPropagatesOperationError(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)

	err = d.Apply(context.Background(), nil, []statevector.Operation{
		statevector.Gate("PauliX", []int{0}),
		statevector.Gate("Bogus", []int{1}),
	}, nil)

	var opErr *statevector.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 1, opErr.Index)
	// The first operation stays applied.
	assertState(t, []complex128{0, 1, 0, 0}, d.State())
}

func TestWireProbabilities(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	require.NoError(t, d.Apply(context.Background(), nil, []statevector.Operation{
		statevector.Gate("Hadamard", []int{0}),
		statevector.Gate("PauliX", []int{1}),
	}, nil))

	assert.InDeltaSlice(t, []float64{0.5, 1}, WireProbabilities(d.State()), tol)
	assert.Nil(t, WireProbabilities(make([]complex128, 3)))
}
