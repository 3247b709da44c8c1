package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"svsim/device"
	"svsim/internal/circuit"
	"svsim/statevector"
)

// RunOptions holds flags for commands that print a final state.
type RunOptions struct {
	*RootOptions
	Precision int
	Cutoff    float64
}

func (o *RunOptions) bindReportFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.Precision, "precision", 6, "decimal places in printed amplitudes")
	cmd.Flags().Float64Var(&o.Cutoff, "cutoff", 1e-10, "hide basis states with probability at or below this value")
}

func newRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <circuit-file>",
		Short: "Apply a circuit to |0...0> and print the final state",
		Long: `Load a circuit file, apply every operation to the all-zero state and
print the basis states with non-negligible probability.

Example:
  svsim run bell.qasm
  svsim run ansatz.yaml --format json --precision 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := circuit.Load(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load circuit", err)
			}
			return simulate(cmd, opts, c)
		},
	}
	opts.bindReportFlags(cmd)
	return cmd
}

// simulate applies c on a fresh device and writes the report.
func simulate(cmd *cobra.Command, opts *RunOptions, c *circuit.Circuit) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := &statevector.BasicMetricsCollector{}
	d, err := device.New(c.NumQubits, engineOptions(opts.RootOptions, logger, statevector.WithMetrics(metrics))...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create device", err)
	}

	logger.Debug("applying circuit", "circuit", c.Name, "qubits", c.NumQubits, "ops", len(c.Ops))
	start := time.Now()
	if err := d.Apply(ctx, nil, c.Ops, nil); err != nil {
		return WrapExitError(ExitFailure, "circuit failed", err)
	}
	logger.Info("circuit applied",
		"circuit", c.Name,
		"ops", metrics.Operations.Load(),
		"single_qubit", metrics.SingleQubit.Load(),
		"two_qubit", metrics.TwoQubit.Load(),
		"multi_qubit", metrics.MultiQubit.Load(),
		"avg_op", metrics.AverageLatency(),
		"elapsed", time.Since(start),
	)

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	report := newStateReport(c, d.State(), reportOptions{precision: opts.Precision, cutoff: opts.Cutoff})
	if err := f.Success(report); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}
