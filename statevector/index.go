package statevector

import (
	"math/bits"
	"slices"
)

// layout is the bit-mask decomposition of the index space induced by a set
// of target wires. Group g (0 <= g < groups) owns the indices
// base(g) | offsets[r] for r in [0, 2^m).
type layout struct {
	sorted  []int // target wires, ascending
	offsets []int // offsets[r] scatters the bits of r onto the wires
	groups  int
}

func newLayout(wires []int, numQubits int) layout {
	m := len(wires)
	l := layout{
		sorted:  slices.Sorted(slices.Values(wires)),
		offsets: make([]int, 1<<m),
		groups:  1 << (numQubits - m),
	}
	for r := range l.offsets {
		off := 0
		for j, w := range wires {
			if r>>(m-1-j)&1 == 1 {
				off |= 1 << w
			}
		}
		l.offsets[r] = off
	}
	return l
}

// base inserts a zero bit at every target wire position of g.
func (l *layout) base(g int) int {
	for _, w := range l.sorted {
		g = insertZero(g, w)
	}
	return g
}

func insertZero(g, w int) int {
	low := g & (1<<w - 1)
	return (g>>w)<<(w+1) | low
}

// numQubits returns log2(n) or an error when n is not a positive power of two.
func numQubits(n int) (int, error) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, &NonPowerOfTwoLengthError{Length: n}
	}
	return bits.TrailingZeros(uint(n)), nil
}
