package statevector

import "svsim/gates"

// kernel updates the groups [lo, hi) of a layout in place.
type kernel func(state []complex128, lo, hi int)

type kernelKind string

const (
	kernel1q      kernelKind = "1q"
	kernel2q      kernelKind = "2q"
	kernelGeneric kernelKind = "generic"
)

// selectKernel picks the dedicated 2x2 or 4x4 loop when it applies and the
// gather/scatter loop otherwise. forceGeneric exists for tests.
func selectKernel(u *gates.Matrix, l layout, forceGeneric bool) (kernel, kernelKind) {
	switch {
	case forceGeneric:
		return genericKernel(u, l), kernelGeneric
	case u.Dim() == 2:
		return oneQubitKernel(u, l.sorted[0]), kernel1q
	case u.Dim() == 4:
		return twoQubitKernel(u, l), kernel2q
	default:
		return genericKernel(u, l), kernelGeneric
	}
}

func oneQubitKernel(u *gates.Matrix, wire int) kernel {
	u00, u01, u10, u11 := u.At(0, 0), u.At(0, 1), u.At(1, 0), u.At(1, 1)
	bit := 1 << wire
	mask := bit - 1
	return func(state []complex128, lo, hi int) {
		for g := lo; g < hi; g++ {
			i0 := (g&^mask)<<1 | g&mask
			i1 := i0 | bit
			a0, a1 := state[i0], state[i1]
			state[i0] = u00*a0 + u01*a1
			state[i1] = u10*a0 + u11*a1
		}
	}
}

func twoQubitKernel(u *gates.Matrix, l layout) kernel {
	var m [16]complex128
	copy(m[:], u.Data())
	lowW, highW := l.sorted[0], l.sorted[1]
	o1, o2, o3 := l.offsets[1], l.offsets[2], l.offsets[3]
	return func(state []complex128, lo, hi int) {
		for g := lo; g < hi; g++ {
			i0 := insertZero(insertZero(g, lowW), highW)
			i1, i2, i3 := i0|o1, i0|o2, i0|o3
			a0, a1, a2, a3 := state[i0], state[i1], state[i2], state[i3]
			state[i0] = m[0]*a0 + m[1]*a1 + m[2]*a2 + m[3]*a3
			state[i1] = m[4]*a0 + m[5]*a1 + m[6]*a2 + m[7]*a3
			state[i2] = m[8]*a0 + m[9]*a1 + m[10]*a2 + m[11]*a3
			state[i3] = m[12]*a0 + m[13]*a1 + m[14]*a2 + m[15]*a3
		}
	}
}

// genericKernel gathers each group into a scratch vector, multiplies it by
// u and scatters the result back. It serves any matrix size.
func genericKernel(u *gates.Matrix, l layout) kernel {
	dim := u.Dim()
	data := u.Data()
	return func(state []complex128, lo, hi int) {
		in := make([]complex128, dim)
		for g := lo; g < hi; g++ {
			base := l.base(g)
			for r, off := range l.offsets {
				in[r] = state[base|off]
			}
			for r, off := range l.offsets {
				row := data[r*dim : (r+1)*dim]
				var acc complex128
				for c, v := range row {
					acc += v * in[c]
				}
				state[base|off] = acc
			}
		}
	}
}
