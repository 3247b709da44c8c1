package statevector

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives one call per processed operation.
// Implement it to feed a monitoring system.
type MetricsCollector interface {
	// RecordOperation is called after each operation. qubits is the number
	// of wires the gate acts on, err is nil if the operation was applied.
	RecordOperation(gate string, qubits int, duration time.Duration, err error)
}

// NoopMetricsCollector discards everything.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOperation(string, int, time.Duration, error) {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	Operations  atomic.Int64
	Errors      atomic.Int64
	TotalNanos  atomic.Int64
	SingleQubit atomic.Int64
	TwoQubit    atomic.Int64
	MultiQubit  atomic.Int64
}

// RecordOperation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOperation(_ string, qubits int, duration time.Duration, err error) {
	b.Operations.Add(1)
	b.TotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.Errors.Add(1)
		return
	}
	switch qubits {
	case 1:
		b.SingleQubit.Add(1)
	case 2:
		b.TwoQubit.Add(1)
	default:
		b.MultiQubit.Add(1)
	}
}

// AverageLatency returns the mean time spent per operation.
func (b *BasicMetricsCollector) AverageLatency() time.Duration {
	n := b.Operations.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(b.TotalNanos.Load() / n)
}
