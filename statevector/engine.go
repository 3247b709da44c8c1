// Package statevector applies gate operations to a dense state vector in
// place.
//
// The state of N qubits is a []complex128 of length 2^N. Wire w is bit w of
// the amplitude index: amplitude k describes the basis state whose wire-w
// value is (k >> w) & 1.
package statevector

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"svsim/gates"
)

// New returns the |0...0> state of numQubits qubits.
func New(numQubits int) []complex128 {
	state := make([]complex128, 1<<numQubits)
	state[0] = 1
	return state
}

// NumQubits returns log2(len(state)).
func NumQubits(state []complex128) (int, error) {
	return numQubits(len(state))
}

// Norm returns the sum of squared amplitude magnitudes.
func Norm(state []complex128) float64 {
	var sum float64
	for _, a := range state {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return sum
}

// Engine applies operation lists. An Engine holds configuration only; it
// keeps no reference to a state between calls and may be shared.
type Engine struct {
	opts options
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{opts: o}
}

// Apply applies ops to state in order and returns state.
//
// Processing stops at the first failing operation; the returned error is an
// *OperationError and every operation before it has been applied. The
// context is consulted between operations, never during one.
//
// The caller must not read or write state concurrently with Apply.
func (e *Engine) Apply(ctx context.Context, state []complex128, ops []Operation) ([]complex128, error) {
	n, err := numQubits(len(state))
	if err != nil {
		return state, err
	}

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return state, &OperationError{Index: i, Op: op.String(), Err: err}
		}

		start := time.Now()
		qubits, kind, err := e.applyOne(state, n, op)
		elapsed := time.Since(start)
		e.opts.metrics.RecordOperation(op.Name, qubits, elapsed, err)

		if err != nil {
			e.opts.logger.ErrorContext(ctx, "operation failed",
				"index", i,
				"op", op.String(),
				"error", err,
			)
			return state, &OperationError{Index: i, Op: op.String(), Err: err}
		}

		if e.opts.logger.Enabled(ctx, slog.LevelDebug) {
			e.opts.logger.DebugContext(ctx, "operation applied",
				"index", i,
				"gate", op.Name,
				"wires", op.Wires,
				"inverse", op.Inverse,
				"kernel", string(kind),
				"duration", elapsed,
			)
		}
	}

	return state, nil
}

func (e *Engine) applyOne(state []complex128, n int, op Operation) (int, kernelKind, error) {
	u, err := resolve(op)
	if err != nil {
		return 0, "", err
	}
	m := u.Qubits()
	if err := checkWires(op.Wires, m, n); err != nil {
		return m, "", err
	}

	l := newLayout(op.Wires, n)
	k, kind := selectKernel(u, l, e.opts.forceGeneric)
	e.run(state, n, l.groups, k)
	return m, kind, nil
}

// run executes k over [0, groups). Groups are disjoint, so chunks can run
// concurrently without synchronisation.
func (e *Engine) run(state []complex128, n, groups int, k kernel) {
	workers := e.opts.workers
	if workers <= 1 || n < e.opts.parallelThreshold || groups < 2 {
		k(state, 0, groups)
		return
	}

	chunks := min(workers*chunksPerWorker, groups)
	size := int(math.Ceil(float64(groups) / float64(chunks)))

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < groups; lo += size {
		hi := min(lo+size, groups)
		g.Go(func() error {
			k(state, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// Apply applies ops to state with a one-off Engine built from opts.
func Apply(ctx context.Context, state []complex128, ops []Operation, opts ...Option) ([]complex128, error) {
	return NewEngine(opts...).Apply(ctx, state, ops)
}

// ApplyMatrix applies an explicit matrix to wires of state. It is the
// single-operation form of the generic fallback.
func ApplyMatrix(state []complex128, m *gates.Matrix, wires ...int) error {
	_, err := NewEngine().Apply(context.Background(), state, []Operation{Unitary(m, wires...)})
	return err
}
