package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"svsim/device"
	"svsim/internal/circuit"
)

// Exit codes for CLI commands.
const (
	ExitFailure      = 1 // The circuit failed to apply
	ExitCommandError = 2 // Bad flags, unreadable or malformed circuit file
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response is the JSON envelope of every command.
type Response struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed command in JSON output.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StateReport is the result of running a circuit.
type StateReport struct {
	Circuit           string      `json:"circuit"`
	Qubits            int         `json:"qubits"`
	Operations        int         `json:"operations"`
	Depth             int         `json:"depth"`
	Amplitudes        []Amplitude `json:"amplitudes"`
	WireProbabilities []float64   `json:"wire_probabilities"`
}

// Amplitude is one basis state whose probability exceeds the cutoff. Basis
// is written with wire 0 as the rightmost character.
type Amplitude struct {
	Index       int     `json:"index"`
	Basis       string  `json:"basis"`
	Re          float64 `json:"re"`
	Im          float64 `json:"im"`
	Probability float64 `json:"probability"`
}

// reportOptions controls how a state is summarised.
type reportOptions struct {
	precision int
	cutoff    float64
}

func round(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0 // drop the sign of -0
	}
	return r
}

func newStateReport(c *circuit.Circuit, state []complex128, opts reportOptions) *StateReport {
	r := &StateReport{
		Circuit:    c.Name,
		Qubits:     c.NumQubits,
		Operations: len(c.Ops),
		Depth:      c.Depth(),
		Amplitudes: []Amplitude{},
	}
	for i, p := range device.Probabilities(state) {
		if p <= opts.cutoff {
			continue
		}
		r.Amplitudes = append(r.Amplitudes, Amplitude{
			Index:       i,
			Basis:       fmt.Sprintf("%0*b", c.NumQubits, i),
			Re:          round(real(state[i]), opts.precision),
			Im:          round(imag(state[i]), opts.precision),
			Probability: round(p, opts.precision),
		})
	}
	for _, p := range device.WireProbabilities(state) {
		r.WireProbabilities = append(r.WireProbabilities, round(p, opts.precision))
	}
	return r
}

// Formatter writes command results as text or JSON.
type Formatter struct {
	Format string
	Writer io.Writer
}

// Success writes a successful result.
func (f *Formatter) Success(data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	if r, ok := data.(*StateReport); ok {
		_, err := io.WriteString(f.Writer, r.Text())
		return err
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes a failure in the configured format.
func (f *Formatter) Error(err error) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{
			Status: "error",
			Error:  &ErrorBody{Code: GetExitCode(err), Message: err.Error()},
		})
	}
	_, werr := fmt.Fprintf(f.Writer, "%s %v\n", errorStyle.Render("Error:"), err)
	return werr
}

// Text renders the report as an aligned table.
func (r *StateReport) Text() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d qubit(s), %d op(s), depth %d",
		r.Circuit, r.Qubits, r.Operations, r.Depth)))
	sb.WriteString("\n\n")

	rows := make([]string, 0, len(r.Amplitudes)+1)
	rows = append(rows, headerStyle.Render(fmt.Sprintf("%-*s  %12s  %12s  %10s",
		max(r.Qubits, 5)+2, "basis", "re", "im", "prob")))
	for _, a := range r.Amplitudes {
		rows = append(rows, fmt.Sprintf("%s  %12g  %12g  %10g",
			basisStyle.Render(fmt.Sprintf("%-*s", max(r.Qubits, 5)+2, "|"+a.Basis+">")),
			a.Re, a.Im, a.Probability))
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	sb.WriteString("\n\n")

	sb.WriteString(headerStyle.Render("P(1) per wire"))
	sb.WriteString("\n")
	for w, p := range r.WireProbabilities {
		fmt.Fprintf(&sb, "  %s %g\n", qubitLabelStyle.Render(fmt.Sprintf("q[%d]", w)), p)
	}
	return sb.String()
}
