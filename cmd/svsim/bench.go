package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"svsim/device"
	"svsim/internal/circuit"
	"svsim/statevector"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Min    int
	Max    int
	Step   int
	Passes int
	Theta  float64
}

func (o *BenchOptions) validate() error {
	switch {
	case o.Min < circuit.MinBenchmarkQubits:
		return fmt.Errorf("--min must be at least %d, got %d", circuit.MinBenchmarkQubits, o.Min)
	case o.Max < o.Min:
		return fmt.Errorf("--max (%d) is below --min (%d)", o.Max, o.Min)
	case o.Max > device.MaxWires:
		return fmt.Errorf("--max must be at most %d, got %d", device.MaxWires, o.Max)
	case o.Step < 1:
		return fmt.Errorf("--step must be positive, got %d", o.Step)
	case o.Passes < 1:
		return fmt.Errorf("--passes must be positive, got %d", o.Passes)
	}
	return nil
}

func newBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time a layered circuit over a range of qubit counts",
		Long: `For each qubit count n from --min to --max, apply one layer of
H, RX, CNOT, RY, CNOT on every wire (ring topology) to a fresh state,
--passes times, and print one CSV row per n:

  qubits,sim,t0,...,t<passes-1>,t_total

Times are in seconds.

Example:
  svsim bench --min 6 --max 20 --step 2 --passes 10
  svsim bench --workers 1 > serial.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid flags", err)
			}
			return runBench(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Min, "min", 6, "smallest qubit count")
	cmd.Flags().IntVar(&opts.Max, "max", 20, "largest qubit count")
	cmd.Flags().IntVar(&opts.Step, "step", 2, "qubit count increment")
	cmd.Flags().IntVar(&opts.Passes, "passes", 10, "timed passes per qubit count")
	cmd.Flags().Float64Var(&opts.Theta, "theta", 0.1, "rotation angle for RX and RY")
	return cmd
}

func runBench(cmd *cobra.Command, opts *BenchOptions) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := statevector.NewEngine(engineOptions(opts.RootOptions, logger)...)
	sim := fmt.Sprintf("svsim-w%d", opts.Workers)

	w := csv.NewWriter(cmd.OutOrStdout())
	header := []string{"qubits", "sim"}
	for p := 0; p < opts.Passes; p++ {
		header = append(header, "t"+strconv.Itoa(p))
	}
	header = append(header, "t_total")
	if err := w.Write(header); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}

	for n := opts.Min; n <= opts.Max; n += opts.Step {
		c, err := circuit.BenchmarkLayer(n, opts.Theta)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid benchmark", err)
		}

		row := []string{strconv.Itoa(n), sim}
		var total time.Duration
		for p := 0; p < opts.Passes; p++ {
			state := statevector.New(n)
			start := time.Now()
			if _, err := engine.Apply(ctx, state, c.Ops); err != nil {
				return WrapExitError(ExitFailure, fmt.Sprintf("benchmark failed at %d qubits", n), err)
			}
			elapsed := time.Since(start)
			total += elapsed
			row = append(row, seconds(elapsed))
		}
		row = append(row, seconds(total))

		if err := w.Write(row); err != nil {
			return WrapExitError(ExitFailure, "failed to write output", err)
		}
		w.Flush()
		logger.Debug("benchmark row", "qubits", n, "total", total)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}
