package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"svsim/device"
	"svsim/internal/circuit"
)

// GHZOptions holds flags for the ghz command.
type GHZOptions struct {
	RunOptions
	Qubits int
	QASM   bool
}

func newGHZCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GHZOptions{RunOptions: RunOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "ghz",
		Short: "Prepare an n-qubit GHZ state",
		Long: `Prepare (|0...0> + |1...1>)/sqrt(2) with a Hadamard on wire 0 followed by
a chain of CNOTs, and print the resulting state.

Example:
  svsim ghz --qubits 5
  svsim ghz --qubits 3 --qasm > ghz3.qasm`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Qubits < 1 || opts.Qubits > device.MaxWires {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("--qubits must be in [1, %d], got %d", device.MaxWires, opts.Qubits))
			}
			c := circuit.GHZ(opts.Qubits)
			if opts.QASM {
				qasm, err := circuit.ToQASM(c)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to render QASM", err)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), qasm)
				return err
			}
			return simulate(cmd, &opts.RunOptions, c)
		},
	}

	cmd.Flags().IntVarP(&opts.Qubits, "qubits", "n", 3, "number of qubits")
	cmd.Flags().BoolVar(&opts.QASM, "qasm", false, "print the circuit as OpenQASM instead of running it")
	opts.bindReportFlags(cmd)
	return cmd
}
