package main

import (
	"fmt"
	"math/cmplx"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"svsim/statevector"
)

// padCenter centres s within width visible columns.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// shortNames are the grid labels of catalog gates.
var shortNames = map[string]string{
	"Identity":              "I",
	"Hadamard":              "H",
	"PauliX":                "X",
	"PauliY":                "Y",
	"PauliZ":                "Z",
	"PhaseShift":            "P",
	"ControlledPhaseShift":  "P",
	"CNOT":                  "⊕",
	"Toffoli":               "⊕",
	"CY":                    "Y",
	"CZ":                    "●",
	"CH":                    "H",
	"CRX":                   "RX",
	"CRY":                   "RY",
	"CRZ":                   "RZ",
	"CRot":                  "Rot",
	"SWAP":                  "×",
	"CSWAP":                 "×",
	"SingleExcitation":      "G",
	"SingleExcitationPlus":  "G+",
	"SingleExcitationMinus": "G-",
	"DoubleExcitation":      "G2",
	"IsingXX":               "XX",
	"IsingYY":               "YY",
	"IsingZZ":               "ZZ",
}

// controlCount is the number of leading control wires of controlled gates.
var controlCount = map[string]int{
	"CNOT": 1, "CY": 1, "CZ": 1, "CH": 1,
	"CRX": 1, "CRY": 1, "CRZ": 1, "CRot": 1,
	"ControlledPhaseShift": 1, "CSWAP": 1,
	"Toffoli": 2,
}

// wireSymbols returns the grid label for each of op's wires.
func wireSymbols(op statevector.Operation) []string {
	label := op.Name
	if op.Name == "" {
		label = "U"
	} else if s, ok := shortNames[op.Name]; ok {
		label = s
	}
	if op.Inverse && op.Name != "" {
		label += "†"
	}

	syms := make([]string, len(op.Wires))
	controls := controlCount[op.Name]
	for i := range syms {
		if i < controls {
			syms[i] = "●"
		} else {
			syms[i] = label
		}
	}
	return syms
}

// renderGrid draws wires as rows and moments as columns, starting at moment
// first. Operations before step are drawn as applied, op step as next.
func renderGrid(m viewModel, first, count int) string {
	var sb strings.Builder

	header := strings.Repeat(" ", labelVisualW)
	for k := first; k < first+count && k < len(m.moments); k++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", k), cellW))
	}
	sb.WriteString(header + "\n")

	for w := 0; w < m.circuit.NumQubits; w++ {
		line := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", w))) + "──"
		for k := first; k < first+count && k < len(m.moments); k++ {
			cell := strings.Repeat("─", cellW)
			for _, idx := range m.moments[k] {
				op := m.circuit.Ops[idx]
				pos := slices.Index(op.Wires, w)
				if pos < 0 {
					continue
				}
				sym := padCenter(wireSymbols(op)[pos], cellW)
				switch {
				case idx < m.step:
					cell = appliedGateStyle.Render(sym)
				case idx == m.step:
					cell = activeGateStyle.Render(sym)
				default:
					cell = dimStyle.Render(sym)
				}
			}
			line += cell
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// topAmplitudes returns up to n basis indices ordered by falling
// probability, ties broken by index.
func topAmplitudes(state []complex128, n int) []int {
	idx := make([]int, 0, len(state))
	for i, a := range state {
		if cmplx.Abs(a) > 1e-12 {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		pa, pb := cmplx.Abs(state[a]), cmplx.Abs(state[b])
		switch {
		case pa > pb:
			return -1
		case pa < pb:
			return 1
		}
		return 0
	})
	if len(idx) > n {
		idx = idx[:n]
	}
	return idx
}

// formatAmplitude renders a + bi compactly.
func formatAmplitude(a complex128) string {
	return fmt.Sprintf("%+.4f%+.4fi", real(a), imag(a))
}
