package gates

import (
	"math"
	"math/cmplx"
)

func halfAngle(theta float64) (c, s complex128) {
	return complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
}

func phase(phi float64) complex128 { return cmplx.Exp(complex(0, phi)) }

// rx is cos(θ/2)·I − i·sin(θ/2)·X.
func rx(theta float64) *Matrix {
	c, s := halfAngle(theta)
	return mat(
		[]complex128{c, -1i * s},
		[]complex128{-1i * s, c},
	)
}

func ry(theta float64) *Matrix {
	c, s := halfAngle(theta)
	return mat(
		[]complex128{c, -s},
		[]complex128{s, c},
	)
}

func rz(theta float64) *Matrix {
	return diag(phase(-theta/2), phase(theta/2))
}

func phaseShift(phi float64) *Matrix {
	return diag(1, phase(phi))
}

// rot is RZ(ω)·RY(θ)·RZ(φ).
func rot(phi, theta, omega float64) *Matrix {
	c, s := halfAngle(theta)
	return mat(
		[]complex128{phase(-(phi+omega)/2) * c, -phase((phi-omega)/2) * s},
		[]complex128{phase(-(phi-omega)/2) * s, phase((phi+omega)/2) * c},
	)
}

func u3(theta, phi, lambda float64) *Matrix {
	c, s := halfAngle(theta)
	return mat(
		[]complex128{c, -phase(lambda) * s},
		[]complex128{phase(phi) * s, phase(phi+lambda) * c},
	)
}

func isingXX(phi float64) *Matrix {
	c, s := halfAngle(phi)
	is := -1i * s
	return mat(
		[]complex128{c, 0, 0, is},
		[]complex128{0, c, is, 0},
		[]complex128{0, is, c, 0},
		[]complex128{is, 0, 0, c},
	)
}

func isingYY(phi float64) *Matrix {
	c, s := halfAngle(phi)
	is := 1i * s
	return mat(
		[]complex128{c, 0, 0, is},
		[]complex128{0, c, -is, 0},
		[]complex128{0, -is, c, 0},
		[]complex128{is, 0, 0, c},
	)
}

func isingZZ(phi float64) *Matrix {
	neg, pos := phase(-phi/2), phase(phi/2)
	return diag(neg, pos, pos, neg)
}

// singleExcitation rotates within the {|01>, |10>} subspace and multiplies
// |00> and |11> by corner.
func singleExcitation(theta float64, corner complex128) *Matrix {
	c, s := halfAngle(theta)
	return mat(
		[]complex128{corner, 0, 0, 0},
		[]complex128{0, c, -s, 0},
		[]complex128{0, s, c, 0},
		[]complex128{0, 0, 0, corner},
	)
}

// doubleExcitation rotates within the {|0011>, |1100>} subspace of four
// wires and leaves every other basis state alone.
func doubleExcitation(theta float64) *Matrix {
	c, s := halfAngle(theta)
	const lo, hi = 0b0011, 0b1100
	m := diag(ones(16)...)
	m.data[lo*16+lo] = c
	m.data[lo*16+hi] = -s
	m.data[hi*16+lo] = s
	m.data[hi*16+hi] = c
	return m
}

func ones(n int) []complex128 {
	d := make([]complex128, n)
	for i := range d {
		d[i] = 1
	}
	return d
}
