// Package backward implements the Q8.24 gradient pipeline: the loss
// gradient, each layer's backward pass, and the gradient-health
// monitor, all built on the same dvm/accum primitives the forward pass
// uses, just at a different fixed-point format.
package backward

import (
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// formatShift is the bit-width difference between Q8.24 and Q16.16
// (24 - 16): converting up is an exact left shift by this many bits;
// converting down is a right shift with rounding and clamping.
const formatShift = kernel.HPFracBits - kernel.FracBits

// ToHP widens a Q16.16 forward-pass value into Q8.24 for use in the
// backward pass. The extra fractional bits are exact (a pure left
// shift); only the clamp can introduce a fault, when x's magnitude
// already left little headroom in the shared int32 storage width.
func ToHP(x kernel.Fixed, faults *kernel.Faults) kernel.FixedHP {
	widened := kernel.Acc64(x) << formatShift
	return clampHP(widened, faults)
}

// FromHP narrows a Q8.24 gradient back down to Q16.16, rounding to
// nearest-even and clamping, per the system's single rounding mode.
func FromHP(g kernel.FixedHP, faults *kernel.Faults) kernel.Fixed {
	return dvm.RoundShiftRNE(kernel.Acc64(g), formatShift, faults)
}

// clampHP saturates x to the int32 storage range shared by Fixed and
// FixedHP, setting the corresponding fault exactly like dvm.Clamp32.
func clampHP(x kernel.Acc64, faults *kernel.Faults) kernel.FixedHP {
	switch {
	case x > kernel.MaxFixed:
		faults.Set(kernel.FaultOverflow)
		return kernel.FixedHP(kernel.MaxFixed)
	case x < kernel.MinFixed:
		faults.Set(kernel.FaultUnderflow)
		return kernel.FixedHP(kernel.MinFixed)
	default:
		return kernel.FixedHP(x)
	}
}

// addHP, subHP, and mulHP mirror dvm's saturating Add/Sub/Mul over
// FixedHP, since the DVM package only operates on Q16.16 Fixed values.
func addHP(a, b kernel.FixedHP, faults *kernel.Faults) kernel.FixedHP {
	return clampHP(kernel.Acc64(a)+kernel.Acc64(b), faults)
}

func subHP(a, b kernel.FixedHP, faults *kernel.Faults) kernel.FixedHP {
	return clampHP(kernel.Acc64(a)-kernel.Acc64(b), faults)
}

func mulHP(a, b kernel.FixedHP, faults *kernel.Faults) kernel.FixedHP {
	product := kernel.Acc64(a) * kernel.Acc64(b)
	rounded := dvm.RoundShiftRNE(product, kernel.HPFracBits, faults)
	return kernel.FixedHP(rounded)
}
