package statevector

import (
	"log/slog"
	"runtime"
)

const (
	// DefaultParallelThreshold is the smallest state, in qubits, whose groups
	// are split across workers.
	DefaultParallelThreshold = 14

	// chunksPerWorker controls how finely the group range is split.
	chunksPerWorker = 4
)

type options struct {
	workers           int
	parallelThreshold int
	logger            *slog.Logger
	metrics           MetricsCollector
	forceGeneric      bool
}

// Option configures an Engine.
type Option func(*options)

func defaultOptions() options {
	return options{
		workers:           runtime.GOMAXPROCS(0),
		parallelThreshold: DefaultParallelThreshold,
		logger:            slog.New(slog.DiscardHandler),
		metrics:           NoopMetricsCollector{},
	}
}

// WithWorkers bounds the goroutines used for one operation.
// Values below 1 make every operation run serially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithParallelThreshold sets the state size, in qubits, from which the
// group loop runs in parallel.
func WithParallelThreshold(qubits int) Option {
	return func(o *options) {
		o.parallelThreshold = qubits
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithMetrics sets the collector notified after every operation.
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// withGenericKernel routes every operation through the gather/scatter kernel.
func withGenericKernel() Option {
	return func(o *options) {
		o.forceGeneric = true
	}
}
