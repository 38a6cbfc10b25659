// SPDX-License-Identifier: MIT
// Package dvm implements the Deterministic Virtual Machine: the
// saturating fixed-point arithmetic primitives every other numeric
// package in ctrain is built from.
//
// Every primitive here widens to a 64-bit intermediate, computes the
// exact mathematical result, and only then clamps and flags. None of
// them ever panics or returns an error: faults are sticky flags on a
// caller-owned *kernel.Faults, per spec's "primitives never fail by
// return" propagation policy.
package dvm

import "github.com/williamofai/ctrain/kernel"

// Add computes a + b, saturating to the int32 storage range and setting
// kernel.FaultOverflow or kernel.FaultUnderflow on faults if the exact
// sum does not fit.
func Add(a, b kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	sum := kernel.Acc64(a) + kernel.Acc64(b)
	return Clamp32(sum, faults)
}

// Sub computes a - b with the same saturation contract as Add.
func Sub(a, b kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	diff := kernel.Acc64(a) - kernel.Acc64(b)
	return Clamp32(diff, faults)
}

// Mul computes a * b as a 64-bit product, then rounds the Q16.16
// fractional result back down with round-to-nearest-even and clamps.
func Mul(a, b kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	product := kernel.Acc64(a) * kernel.Acc64(b)
	return RoundShiftRNE(product, kernel.FracBits, faults)
}

// DivInt32 performs truncating (toward-zero) integer division. A zero
// divisor sets kernel.FaultDivZero and returns 0.
func DivInt32(a, b int32, faults *kernel.Faults) int32 {
	if b == 0 {
		faults.Set(kernel.FaultDivZero)
		return 0
	}
	return a / b // Go's / on signed integers already truncates toward zero
}

// DivQ divides a by b and interprets the quotient as a fixed-point value
// with fracBits fractional bits: it shifts a left by fracBits before
// dividing, then clamps the quotient to the int32 storage range.
//
// A zero divisor sets kernel.FaultDivZero and returns 0. fracBits > 62
// sets kernel.FaultDomain and returns 0, since the left shift would not
// be representable in the 64-bit intermediate alongside a meaningful
// quotient.
func DivQ(a, b int32, fracBits uint, faults *kernel.Faults) kernel.Fixed {
	if b == 0 {
		faults.Set(kernel.FaultDivZero)
		return 0
	}
	if fracBits > 62 {
		faults.Set(kernel.FaultDomain)
		return 0
	}
	numerator := kernel.Acc64(a) << fracBits
	quotient := numerator / kernel.Acc64(b)
	return Clamp32(quotient, faults)
}

// Clamp32 saturates a 64-bit value to the int32 storage range
// [kernel.MinFixed, kernel.MaxFixed], setting kernel.FaultOverflow above
// the maximum or kernel.FaultUnderflow below the minimum.
func Clamp32(x kernel.Acc64, faults *kernel.Faults) kernel.Fixed {
	switch {
	case x > kernel.MaxFixed:
		faults.Set(kernel.FaultOverflow)
		return kernel.Fixed(kernel.MaxFixed)
	case x < kernel.MinFixed:
		faults.Set(kernel.FaultUnderflow)
		return kernel.Fixed(kernel.MinFixed)
	default:
		return kernel.Fixed(x)
	}
}

// Abs64Sat returns the saturating absolute value of x. The single value
// that cannot be negated without overflow, math.MinInt64, sets
// kernel.FaultOverflow and returns math.MaxInt64 instead of wrapping.
func Abs64Sat(x int64, faults *kernel.Faults) int64 {
	if x == minInt64 {
		faults.Set(kernel.FaultOverflow)
		return maxInt64
	}
	if x < 0 {
		return -x
	}
	return x
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)

// RoundShiftRNE is the rounding mode of the whole system: round the
// fixed-point value x (with shift fractional bits) to the nearest
// integer, ties resolved to even, then clamp to the int32 storage range.
//
// shift == 0 is a pure clamp. shift > 62 sets kernel.FaultDomain and
// returns 0, since no meaningful halfway/mask pair exists at that width.
//
// Because Go's >> on a signed integer is an arithmetic (sign-extending)
// shift and its & is a plain two's-complement bitwise AND, the formula
// below is correct for negative x without any special-casing: quot is
// already floor(x / 2^shift), and frac is already in [0, 2^shift).
func RoundShiftRNE(x kernel.Acc64, shift uint, faults *kernel.Faults) kernel.Fixed {
	if shift == 0 {
		return Clamp32(x, faults)
	}
	if shift > 62 {
		faults.Set(kernel.FaultDomain)
		return 0
	}

	halfway := kernel.Acc64(1) << (shift - 1)
	mask := (kernel.Acc64(1) << shift) - 1
	frac := x & mask
	quot := x >> shift // arithmetic shift: floor(x / 2^shift)

	switch {
	case frac < halfway:
		// round down, quot already correct
	case frac > halfway:
		quot++
	default: // frac == halfway: round to even
		quot += quot & 1
	}

	return Clamp32(quot, faults)
}
