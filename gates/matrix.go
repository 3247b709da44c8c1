package gates

import (
	"math/bits"
	"math/cmplx"
)

// Matrix is a square complex matrix stored row-major. Its dimension is
// always a power of two no smaller than 2, so it acts on Qubits() wires.
type Matrix struct {
	dim  int
	data []complex128
}

// NewMatrix copies rows into a Matrix. It fails with *InvalidArityError when
// rows is empty, ragged, 1x1 or not a power of two in size.
func NewMatrix(rows [][]complex128) (*Matrix, error) {
	n := len(rows)
	if n < 2 || n&(n-1) != 0 {
		return nil, &InvalidArityError{Rows: n, Cols: rowWidth(rows)}
	}
	m := &Matrix{dim: n, data: make([]complex128, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, &InvalidArityError{Rows: n, Cols: len(row)}
		}
		copy(m.data[i*n:], row)
	}
	return m, nil
}

func rowWidth(rows [][]complex128) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// mat builds a matrix from literal rows that are known to be well formed.
func mat(rows ...[]complex128) *Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func diag(d ...complex128) *Matrix {
	n := len(d)
	m := &Matrix{dim: n, data: make([]complex128, n*n)}
	for i, v := range d {
		m.data[i*n+i] = v
	}
	return m
}

// Dim returns the number of rows (and columns).
func (m *Matrix) Dim() int { return m.dim }

// Qubits returns log2(Dim()).
func (m *Matrix) Qubits() int { return bits.TrailingZeros(uint(m.dim)) }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.dim+j] }

// Data exposes the row-major backing slice. Callers must not modify it.
func (m *Matrix) Data() []complex128 { return m.data }

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{dim: m.dim, data: make([]complex128, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Dagger returns the conjugate transpose.
func (m *Matrix) Dagger() *Matrix {
	n := m.dim
	d := &Matrix{dim: n, data: make([]complex128, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.data[j*n+i] = cmplx.Conj(m.data[i*n+j])
		}
	}
	return d
}

// Mul returns m·o. Both operands must have the same dimension.
func (m *Matrix) Mul(o *Matrix) *Matrix {
	n := m.dim
	if o.dim != n {
		panic("gates: dimension mismatch in Mul")
	}
	p := &Matrix{dim: n, data: make([]complex128, n*n)}
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m.data[i*n+k]
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				p.data[i*n+j] += a * o.data[k*n+j]
			}
		}
	}
	return p
}

// IsUnitary reports whether m·m† equals the identity to within tol.
func (m *Matrix) IsUnitary(tol float64) bool {
	p := m.Mul(m.Dagger())
	n := m.dim
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(p.data[i*n+j]-want) > tol {
				return false
			}
		}
	}
	return true
}

// Equal reports whether every element of m and o differs by at most tol.
func (m *Matrix) Equal(o *Matrix, tol float64) bool {
	if m.dim != o.dim {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// controlled embeds u as the target block of a gate whose most-significant
// acting wire is a control: diag(I, u).
func controlled(u *Matrix) *Matrix {
	n := u.dim
	d := 2 * n
	m := &Matrix{dim: d, data: make([]complex128, d*d)}
	for i := 0; i < n; i++ {
		m.data[i*d+i] = 1
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.data[(n+i)*d+n+j] = u.data[i*n+j]
		}
	}
	return m
}
