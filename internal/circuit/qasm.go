package circuit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"svsim/gates"
	"svsim/statevector"
)

// ErrNonUnitary marks QASM statements that cannot become an operation
// (reset, classically conditioned gates).
var ErrNonUnitary = errors.New("non-unitary statement")

// ParseError locates a problem in circuit source.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	qregRegex = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]$`)
	gateRegex = regexp.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?\s+(.+)$`)
	argRegex  = regexp.MustCompile(`^(\w+)(?:\s*\[\s*(\d+)\s*\])?$`)
)

// qasmGate maps a qelib1 name onto a catalog gate.
type qasmGate struct {
	name    string
	inverse bool
}

var qasmGates = map[string]qasmGate{
	"id":    {"Identity", false},
	"h":     {"Hadamard", false},
	"x":     {"PauliX", false},
	"y":     {"PauliY", false},
	"z":     {"PauliZ", false},
	"s":     {"S", false},
	"sdg":   {"S", true},
	"t":     {"T", false},
	"tdg":   {"T", true},
	"sx":    {"SX", false},
	"sxdg":  {"SX", true},
	"cx":    {"CNOT", false},
	"cy":    {"CY", false},
	"cz":    {"CZ", false},
	"ch":    {"CH", false},
	"swap":  {"SWAP", false},
	"iswap": {"ISWAP", false},
	"ccx":   {"Toffoli", false},
	"cswap": {"CSWAP", false},
	"rx":    {"RX", false},
	"ry":    {"RY", false},
	"rz":    {"RZ", false},
	"p":     {"PhaseShift", false},
	"u1":    {"PhaseShift", false},
	"u2":    {"U2", false},
	"u3":    {"U3", false},
	"u":     {"U3", false},
	"crx":   {"CRX", false},
	"cry":   {"CRY", false},
	"crz":   {"CRZ", false},
	"cp":    {"ControlledPhaseShift", false},
	"cu1":   {"ControlledPhaseShift", false},
	"rxx":   {"IsingXX", false},
	"ryy":   {"IsingYY", false},
	"rzz":   {"IsingZZ", false},
}

// qasmAliases are accepted on input but never written.
var qasmAliases = map[string]bool{"p": true, "cp": true, "u": true}

// qasmNames is the reverse of qasmGates without the aliases.
var qasmNames = map[qasmGate]string{}

// catalogByLower resolves non-qelib1 statements written with a catalog name
// in any case, e.g. "singleexcitation(0.3) q[0], q[1];".
var catalogByLower = map[string]string{}

func init() {
	for q, g := range qasmGates {
		if !qasmAliases[q] {
			qasmNames[g] = q
		}
	}
	for _, name := range gates.Names() {
		catalogByLower[strings.ToLower(name)] = name
	}
}

// qasmParser holds register layout while statements are read.
type qasmParser struct {
	c       *Circuit
	regs    map[string]register
	errs    []error
	lineNum int
}

type register struct {
	offset, size int
}

// ParseQASM reads an OpenQASM 2 program restricted to unitary gates.
//
// Header, include, creg, measure and barrier statements are accepted and
// dropped. reset and if statements fail with ErrNonUnitary. Several qreg
// declarations are laid out one after another. Every malformed line is
// reported; the returned error joins one *ParseError per line.
func ParseQASM(src string) (*Circuit, error) {
	p := &qasmParser{
		c:    &Circuit{},
		regs: make(map[string]register),
	}

	for i, line := range strings.Split(src, "\n") {
		p.lineNum = i + 1
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := p.statement(stmt); err != nil {
				p.errs = append(p.errs, err)
			}
		}
	}

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	if p.c.NumQubits == 0 {
		return nil, &ParseError{Line: p.lineNum, Msg: "no qreg declared"}
	}
	return p.c, nil
}

func (p *qasmParser) fail(msg string, err error) error {
	return &ParseError{Line: p.lineNum, Msg: msg, Err: err}
}

func (p *qasmParser) statement(stmt string) error {
	keyword, _, _ := strings.Cut(stmt, " ")
	switch keyword {
	case "OPENQASM", "include", "creg", "barrier", "measure":
		return nil
	case "reset":
		return p.fail("reset", ErrNonUnitary)
	case "gate", "opaque":
		return p.fail(keyword+" definitions are not supported", nil)
	case "qreg":
		return p.qreg(stmt)
	}
	if keyword == "if" || strings.HasPrefix(stmt, "if(") {
		return p.fail("classically controlled gate", ErrNonUnitary)
	}
	return p.gate(stmt)
}

func (p *qasmParser) qreg(stmt string) error {
	m := qregRegex.FindStringSubmatch(stmt)
	if m == nil {
		return p.fail(fmt.Sprintf("malformed qreg %q", stmt), nil)
	}
	if _, ok := p.regs[m[1]]; ok {
		return p.fail(fmt.Sprintf("qreg %s redeclared", m[1]), nil)
	}
	size, err := strconv.Atoi(m[2])
	if err != nil || size < 1 {
		return p.fail(fmt.Sprintf("invalid qreg size %q", m[2]), err)
	}
	p.regs[m[1]] = register{offset: p.c.NumQubits, size: size}
	p.c.NumQubits += size
	return nil
}

func (p *qasmParser) gate(stmt string) error {
	m := gateRegex.FindStringSubmatch(stmt)
	if m == nil {
		return p.fail(fmt.Sprintf("unrecognised statement %q", stmt), nil)
	}
	qname, paramSrc, argSrc := m[1], m[2], m[3]

	g, ok := qasmGates[qname]
	if !ok {
		name, found := catalogByLower[strings.ToLower(qname)]
		if !found {
			return p.fail(qname, &gates.UnknownGateError{Name: qname})
		}
		g = qasmGate{name: name}
	}
	entry, _ := gates.Lookup(g.name)

	params, err := ParseAngles(paramSrc)
	if err != nil {
		return p.fail(qname, err)
	}
	if len(params) != entry.Params {
		return p.fail(qname, &gates.ParameterCountError{Name: entry.Name, Expected: entry.Params, Actual: len(params)})
	}

	args := strings.Split(argSrc, ",")
	if len(args) != entry.Qubits {
		return p.fail(fmt.Sprintf("%s takes %d qubit argument(s), got %d", qname, entry.Qubits, len(args)), nil)
	}

	wireSets, err := p.resolveArgs(args)
	if err != nil {
		return err
	}
	for _, wires := range wireSets {
		op := statevector.Gate(g.name, wires, params...)
		op.Inverse = g.inverse
		p.c.Ops = append(p.c.Ops, op)
	}
	return nil
}

// resolveArgs turns qubit arguments into wire lists. A bare register name
// broadcasts the gate over the register; every bare register in one
// statement must have the same size.
func (p *qasmParser) resolveArgs(args []string) ([][]int, error) {
	type arg struct {
		reg   register
		index int // -1 for a whole register
	}
	parsed := make([]arg, len(args))
	broadcast := 0
	for i, a := range args {
		a = strings.TrimSpace(a)
		m := argRegex.FindStringSubmatch(a)
		if m == nil {
			return nil, p.fail(fmt.Sprintf("malformed qubit argument %q", a), nil)
		}
		reg, ok := p.regs[m[1]]
		if !ok {
			return nil, p.fail(fmt.Sprintf("undeclared qreg %q", m[1]), nil)
		}
		if m[2] == "" {
			if broadcast != 0 && broadcast != reg.size {
				return nil, p.fail("broadcast over registers of different sizes", nil)
			}
			broadcast = reg.size
			parsed[i] = arg{reg: reg, index: -1}
			continue
		}
		idx, _ := strconv.Atoi(m[2])
		if idx >= reg.size {
			return nil, p.fail(fmt.Sprintf("%s[%d] out of range (size %d)", m[1], idx, reg.size), nil)
		}
		parsed[i] = arg{reg: reg, index: idx}
	}

	reps := max(broadcast, 1)
	sets := make([][]int, 0, reps)
	for r := 0; r < reps; r++ {
		wires := make([]int, len(parsed))
		seen := make(map[int]bool, len(parsed))
		for i, a := range parsed {
			idx := a.index
			if idx < 0 {
				idx = r
			}
			wires[i] = a.reg.offset + idx
			if seen[wires[i]] {
				return nil, p.fail(fmt.Sprintf("qubit %d used twice", wires[i]), nil)
			}
			seen[wires[i]] = true
		}
		sets = append(sets, wires)
	}
	return sets, nil
}

// ToQASM renders c as OpenQASM 2 over a single register q. Catalog gates
// without a qelib1 spelling are written under their catalog name, which
// ParseQASM reads back. Explicit matrices have no QASM form.
func ToQASM(c *Circuit) (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.NumQubits)

	for i, op := range c.Ops {
		if _, ok := gates.Lookup(op.Name); !ok {
			return "", fmt.Errorf("op %d (%s): no QASM form", i, op)
		}
		name, ok := qasmNames[qasmGate{op.Name, op.Inverse}]
		if !ok {
			if op.Inverse {
				return "", fmt.Errorf("op %d (%s): no QASM form for the adjoint", i, op)
			}
			name = strings.ToLower(op.Name)
		}

		sb.WriteString(name)
		if len(op.Params) > 0 {
			sb.WriteByte('(')
			for j, v := range op.Params {
				if j > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(FormatAngle(v))
			}
			sb.WriteByte(')')
		}
		for j, w := range op.Wires {
			if j == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "q[%d]", w)
		}
		sb.WriteString(";\n")
	}
	return sb.String(), nil
}
