// SPDX-License-Identifier: MIT
// Package kernel defines the fixed-point numeric types, the sticky fault
// bit-field, and the closed error-kind taxonomy shared by every other
// ctrain package.
//
// Nothing in this package allocates, ranges over a map, reads the clock, or
// otherwise introduces a source of cross-platform variance: it is pure
// data-shape definition, imported by every numeric package below it.
package kernel

// Fixed is a Q16.16 signed fixed-point value: 16 integer bits, 16
// fractional bits, stored as a two's-complement int32.
//
// value = int32(Fixed) / 2^16
type Fixed int32

// FixedHP is a Q8.24 signed fixed-point value, used exclusively for
// gradient tensors in the backward pass.
//
// value = int32(FixedHP) / 2^24
type FixedHP int32

// Acc64 is the signed 64-bit intermediate type used for products and
// running accumulations before they are rounded back down to Fixed or
// FixedHP.
type Acc64 int64

const (
	// FracBits is the number of fractional bits in Fixed (Q16.16).
	FracBits = 16
	// ONE is the Fixed representation of the value 1.0.
	ONE Fixed = 1 << FracBits
	// HALF is the Fixed representation of the value 0.5.
	HALF Fixed = 1 << (FracBits - 1)

	// HPFracBits is the number of fractional bits in FixedHP (Q8.24).
	HPFracBits = 24
	// HPOne is the FixedHP representation of the value 1.0.
	HPOne FixedHP = 1 << HPFracBits

	// MaxFixed and MinFixed are the int32 storage bounds that every
	// saturating Fixed-producing primitive clamps to. These are the
	// storage bounds, not the Q16.16-interpreted value range: spec's
	// "Range [-32768, 32767.99998...]" describes int32/2^16, the same
	// bound expressed in units of 1.0 rather than units of 2^-16.
	MaxFixed Acc64 = Acc64(int64(1<<31) - 1)
	MinFixed Acc64 = Acc64(-int64(1 << 31))
)
