package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"

	"github.com/spf13/cobra"

	"svsim/statevector"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose           bool
	Format            string // "json" | "text"
	Workers           int
	ParallelThreshold int
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// newRootCommand creates the svsim command tree bound to opts.
func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svsim",
		Short: "svsim - state-vector quantum circuit simulator",
		Long: `svsim applies unitary gate operations to a dense state vector.

Circuits are read from OpenQASM 2 (.qasm) or YAML (.yaml, .yml) files.
Basis states are printed with wire 0 as the rightmost bit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Workers < 1 {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("--workers must be at least 1, got %d", opts.Workers))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", runtime.GOMAXPROCS(0), "goroutines used per gate on large states")
	cmd.PersistentFlags().IntVar(&opts.ParallelThreshold, "parallel-threshold", statevector.DefaultParallelThreshold,
		"smallest qubit count that is processed in parallel")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newGHZCommand(opts))
	cmd.AddCommand(newBenchCommand(opts))
	cmd.AddCommand(newViewCommand(opts))

	return cmd
}

// newLogger builds the CLI logger: text on w, Debug with --verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// engineOptions maps the global flags onto engine options.
func engineOptions(opts *RootOptions, logger *slog.Logger, extra ...statevector.Option) []statevector.Option {
	o := []statevector.Option{
		statevector.WithWorkers(opts.Workers),
		statevector.WithParallelThreshold(opts.ParallelThreshold),
		statevector.WithLogger(logger),
	}
	return append(o, extra...)
}
