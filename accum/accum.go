// SPDX-License-Identifier: MIT
// Package accum implements the Neumaier compensated accumulator: a
// (sum, err) pair of signed 64-bit integers where sum+err represents
// the true accumulated value and err tracks rounding lost at each add.
//
// The accumulator's result is a function of both the multiset of added
// values AND the order they were added in; reduce fixes that order with
// a binary tree topology so the result is reproducible regardless of
// hardware parallelism.
package accum

import "github.com/williamofai/ctrain/kernel"

// Accumulator is a Neumaier compensated sum. The zero value is a valid
// empty accumulator (sum=0, err=0).
type Accumulator struct {
	Sum int64
	Err int64
}

// Add folds v into the accumulator, tracking the rounding error lost in
// the 64-bit add so that Finalize can recover it.
//
// The add from sum to t is itself saturating: if sum+v would overflow
// int64, the result clamps to math.MaxInt64/MinInt64 and sets
// kernel.FaultOverflow/FaultUnderflow, exactly like every other ctrain
// primitive.
func (a *Accumulator) Add(v int64, faults *kernel.Faults) {
	t := saturatingAdd64(a.Sum, v, faults)

	var e int64
	if abs64(a.Sum) >= abs64(v) {
		e = (a.Sum - t) + v
	} else {
		e = (v - t) + a.Sum
	}

	a.Sum = t
	a.Err = saturatingAdd64(a.Err, e, faults)
}

// Finalize returns the best available approximation of the true
// accumulated value: sum + err.
func (a *Accumulator) Finalize() int64 {
	return a.Sum + a.Err
}

// Merge folds src into dst: src.Sum is added via the same compensated
// add as Add, and src.Err is folded directly into dst.Err.
func (dst *Accumulator) Merge(src *Accumulator, faults *kernel.Faults) {
	dst.Add(src.Sum, faults)
	dst.Err = saturatingAdd64(dst.Err, src.Err, faults)
}

// Reset zeroes the accumulator in place without reallocating, per the
// kernel's "reset mutable parts without reallocating" lifecycle rule.
func (a *Accumulator) Reset() {
	a.Sum = 0
	a.Err = 0
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// saturatingAdd64 adds a and b, clamping to the int64 range and setting
// the corresponding fault flag on overflow. Neither addend is itself
// presumed to be in range already; both are arbitrary int64 values.
func saturatingAdd64(a, b int64, faults *kernel.Faults) int64 {
	sum := a + b
	// Overflow/underflow in two's-complement addition is detectable by
	// comparing the sign of the operands to the sign of the result: a
	// same-signed pair of addends can never legitimately flip sign.
	if a >= 0 && b >= 0 && sum < 0 {
		faults.Set(kernel.FaultOverflow)
		return 1<<63 - 1
	}
	if a < 0 && b < 0 && sum >= 0 {
		faults.Set(kernel.FaultUnderflow)
		return -1 << 63
	}
	return sum
}
