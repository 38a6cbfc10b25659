package prng

import (
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// StochasticRound rounds x (a fixed-point value with shift fractional
// bits) up or down based on one fresh draw from prng, rather than always
// rounding to nearest. It draws exactly one 32-bit sample and advances
// the state by one, regardless of which way the rounding goes.
//
// threshold is the draw's top shift bits; the fractional part rounds up
// whenever it strictly exceeds threshold, giving an unbiased stochastic
// rounding scheme whose expected value matches the unrounded input.
func StochasticRound(x kernel.Acc64, shift uint, state *State, faults *kernel.Faults) kernel.Fixed {
	if shift == 0 {
		return dvm.Clamp32(x, faults)
	}
	if shift > 32 {
		faults.Set(kernel.FaultDomain)
		return 0
	}

	r := state.Next()
	mask := (kernel.Acc64(1) << shift) - 1
	frac := x & mask
	quot := x >> shift

	threshold := kernel.Acc64(r >> (32 - shift))
	if frac > threshold {
		quot++
	}

	return dvm.Clamp32(quot, faults)
}
