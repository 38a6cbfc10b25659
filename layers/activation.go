package layers

import (
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// lutLookup implements the canonical LUT domain map shared by Sigmoid
// and Tanh: shifted = x + 8*ONE places x's valid range at [0, 16*ONE];
// index selects the surrounding table entries in steps of ONE/16;
// frac is the 8-bit position between them, interpolated linearly.
// Inputs outside [-8, 8] saturate to the table's first or last entry,
// which are themselves the saturated values per the 0/ONE tail
// convention.
func lutLookup(table *[257]kernel.Fixed, x kernel.Fixed) kernel.Fixed {
	const eight = 8 * kernel.ONE
	if x <= -eight {
		return table[0]
	}
	if x >= eight {
		return table[256]
	}
	shifted := int64(x) + int64(eight)
	index := shifted >> 12
	frac := (shifted >> 4) & 0xFF
	y0 := int64(table[index])
	y1 := int64(table[index+1])
	return kernel.Fixed(y0 + ((y1-y0)*frac)>>8)
}

// Sigmoid evaluates the logistic function at x via the embedded Q16.16
// LUT with linear interpolation.
func Sigmoid(x kernel.Fixed) kernel.Fixed {
	return lutLookup(&sigmoidLUT, x)
}

// SigmoidDerivative returns sigma*(ONE - sigma) for an already-computed
// sigmoid output sigma, using the DVM's saturating primitives.
func SigmoidDerivative(sigma kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	oneMinus := dvm.Sub(kernel.ONE, sigma, faults)
	return dvm.Mul(sigma, oneMinus, faults)
}

// Tanh evaluates the hyperbolic tangent at x via the embedded Q16.16
// LUT with linear interpolation.
func Tanh(x kernel.Fixed) kernel.Fixed {
	return lutLookup(&tanhLUT, x)
}

// TanhDerivative returns ONE - tanh^2 for an already-computed tanh
// output t.
func TanhDerivative(t kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	sq := dvm.Mul(t, t, faults)
	return dvm.Sub(kernel.ONE, sq, faults)
}

// ReLU returns max(0, x).
func ReLU(x kernel.Fixed) kernel.Fixed {
	if x < 0 {
		return 0
	}
	return x
}

// ReLUDerivative is ONE where the pre-activation x was strictly
// positive, else 0. Gating uses the pre-activation, not the output, per
// the backward pass's contract.
func ReLUDerivative(x kernel.Fixed) kernel.Fixed {
	if x > 0 {
		return kernel.ONE
	}
	return 0
}
