// SPDX-License-Identifier: MIT
package dvm

import (
	"math/bits"

	"github.com/williamofai/ctrain/kernel"
)

// Sqrt computes the deterministic square root of a nonnegative Q16.16
// value. A negative input sets kernel.FaultDomain and returns 0.
//
// The algorithm scales x up by 2^16 into a 48-bit unsigned intermediate
// (so that an integer square root of the scaled value is itself the
// Q16.16-encoded result), then runs exactly 8 Newton iterations from a
// power-of-two initial guess derived from the intermediate's bit
// length. An iteration is skipped as soon as it would not decrease the
// guess: at that point the next step is already a fixed point, so
// stopping early changes nothing about the result and keeps the
// function free of any data-dependent iteration count beyond the fixed
// cap of 8.
func Sqrt(x kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	if x < 0 {
		faults.Set(kernel.FaultDomain)
		return 0
	}
	if x == 0 {
		return 0
	}

	v := uint64(x) << kernel.FracBits

	// Initial guess: the smallest power of two with roughly half the
	// bit length of v, i.e. in the neighborhood of sqrt(v).
	guess := uint64(1) << uint((bits.Len64(v)+1)/2)

	for i := 0; i < 8; i++ {
		next := (guess + v/guess) / 2
		if next >= guess {
			break
		}
		guess = next
	}

	return Clamp32(kernel.Acc64(guess), faults)
}
