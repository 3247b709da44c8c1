package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"svsim/device"
	"svsim/internal/circuit"
	"svsim/statevector"
)

type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.First, k.Last}, {k.Help, k.Quit}}
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n", " "),
		key.WithHelp("→/l", "apply next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "p"),
		key.WithHelp("←/h", "undo"),
	),
	First: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "reset"),
	),
	Last: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "apply all"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// viewModel steps through a circuit one operation at a time.
type viewModel struct {
	circuit  *circuit.Circuit
	engine   *statevector.Engine
	moments  [][]int
	momentOf []int

	step  int // operations applied so far
	state []complex128
	err   error

	keys keyMap
	help help.Model
	bar  progress.Model

	width int
}

func newViewModel(c *circuit.Circuit, engine *statevector.Engine) viewModel {
	m := viewModel{
		circuit:  c,
		engine:   engine,
		moments:  c.Moments(),
		momentOf: make([]int, len(c.Ops)),
		state:    statevector.New(c.NumQubits),
		keys:     keys,
		help:     help.New(),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
	}
	for k, layer := range m.moments {
		for _, idx := range layer {
			m.momentOf[idx] = k
		}
	}
	return m
}

// seek moves to target applied operations. Moving forward applies only the
// new operations; moving back replays from |0...0>.
func (m *viewModel) seek(target int) {
	target = max(0, min(target, len(m.circuit.Ops)))
	if target == m.step && m.err == nil {
		return
	}
	from := m.step
	if target < m.step || m.err != nil {
		m.state = statevector.New(m.circuit.NumQubits)
		from = 0
	}
	m.err = nil
	if _, err := m.engine.Apply(context.Background(), m.state, m.circuit.Ops[from:target]); err != nil {
		m.err = err
	}
	m.step = target
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.seek(m.step + 1)
		case key.Matches(msg, m.keys.Prev):
			m.seek(m.step - 1)
		case key.Matches(msg, m.keys.First):
			m.seek(0)
		case key.Matches(msg, m.keys.Last):
			m.seek(len(m.circuit.Ops))
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	width := m.width
	if width == 0 {
		width = 100
	}

	circuitPanel := m.renderCircuitPanel(width - 4)
	opsPanel := m.renderOpsPanel()
	statePanel := m.renderStatePanel()

	bottom := lipgloss.JoinHorizontal(lipgloss.Top, opsPanel, statePanel)
	return lipgloss.JoinVertical(lipgloss.Left, circuitPanel, bottom, m.help.View(m.keys))
}

func (m viewModel) renderCircuitPanel(width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s  (%d qubits, depth %d)",
		m.circuit.Name, m.circuit.NumQubits, len(m.moments))))
	sb.WriteString("\n\n")

	visible := max((width-labelVisualW-4)/cellW, 1)
	current := 0
	if m.step < len(m.momentOf) {
		current = m.momentOf[m.step]
	} else if len(m.moments) > 0 {
		current = len(m.moments) - 1
	}
	first := 0
	if current >= visible {
		first = current - visible + 1
	}
	if first > 0 {
		fmt.Fprintf(&sb, "  ◀ moments %d–%d\n", first, first+visible-1)
	}
	sb.WriteString(renderGrid(m, first, visible))

	return circuitStyle.Width(width).Render(sb.String())
}

func (m viewModel) renderOpsPanel() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Operations %d/%d", m.step, len(m.circuit.Ops))))
	sb.WriteString("\n\n")

	lo := max(0, m.step-maxAmpRows/2)
	hi := min(len(m.circuit.Ops), lo+maxAmpRows)
	for i := lo; i < hi; i++ {
		line := fmt.Sprintf("%3d %s", i, m.circuit.Ops[i])
		switch {
		case i < m.step:
			sb.WriteString(appliedGateStyle.Render("  " + line))
		case i == m.step:
			sb.WriteString(activeGateStyle.Render("▸ " + line))
		default:
			sb.WriteString(dimStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.err.Error()))
	}
	return opsStyle.Render(sb.String())
}

func (m viewModel) renderStatePanel() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("State"))
	sb.WriteString("\n\n")

	for _, i := range topAmplitudes(m.state, maxAmpRows) {
		a := m.state[i]
		p := real(a)*real(a) + imag(a)*imag(a)
		fmt.Fprintf(&sb, "%s  %s  %s\n",
			basisStyle.Render(fmt.Sprintf("|%0*b>", m.circuit.NumQubits, i)),
			formatAmplitude(a),
			dimStyle.Render(fmt.Sprintf("p=%.4f", p)))
	}

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("P(1) per wire"))
	sb.WriteString("\n")
	for w, p := range device.WireProbabilities(m.state) {
		fmt.Fprintf(&sb, "%s %s %.3f\n",
			qubitLabelStyle.Render(fmt.Sprintf("q[%d]", w)),
			m.bar.ViewAs(p),
			p)
	}
	return stateStyle.Render(sb.String())
}

func newViewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view <circuit-file>",
		Short: "Step through a circuit interactively",
		Long: `Open a terminal viewer that applies the circuit one operation at a time,
showing the circuit grid, the operation list, the largest amplitudes and
the probability of reading 1 on every wire.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := circuit.Load(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load circuit", err)
			}
			// The TUI owns the terminal, so engine logs are dropped.
			engine := statevector.NewEngine(engineOptions(rootOpts, nil)...)

			p := tea.NewProgram(newViewModel(c, engine),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return WrapExitError(ExitFailure, "viewer failed", err)
			}
			return nil
		},
	}
}
