package circuit

import "fmt"

// GHZ returns the n-qubit GHZ preparation: Hadamard on wire 0, then a CNOT
// chain from each wire to the next.
func GHZ(n int) *Circuit {
	c := &Circuit{Name: fmt.Sprintf("ghz%d", n), NumQubits: n}
	c.AddGate("Hadamard", []int{0})
	for i := 1; i < n; i++ {
		c.AddGate("CNOT", []int{i - 1, i})
	}
	return c
}

// MinBenchmarkQubits is the smallest register BenchmarkLayer accepts. Below
// it the ring CNOTs would repeat a wire.
const MinBenchmarkQubits = 3

// BenchmarkLayer returns one benchmark pass over n wires with rotation
// angle theta: for every wire i, H(i), RX(i), CNOT(i, i+1), RY(i),
// CNOT(i+1, i+2), with wire indices taken modulo n.
func BenchmarkLayer(n int, theta float64) (*Circuit, error) {
	if n < MinBenchmarkQubits {
		return nil, fmt.Errorf("benchmark needs at least %d qubits, got %d", MinBenchmarkQubits, n)
	}
	c := &Circuit{Name: fmt.Sprintf("bench%d", n), NumQubits: n}
	for i := 0; i < n; i++ {
		c.AddGate("Hadamard", []int{i})
		c.AddGate("RX", []int{i}, theta)
		c.AddGate("CNOT", []int{i, (i + 1) % n})
		c.AddGate("RY", []int{i}, theta)
		c.AddGate("CNOT", []int{(i + 1) % n, (i + 2) % n})
	}
	return c, nil
}
