// SPDX-License-Identifier: MIT
package layers

import (
	"github.com/williamofai/ctrain/accum"
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// emaMomentum is the exponential-moving-average weight applied to the
// running mean/variance on every Forward call: running <- (ONE-m)*running + m*batch.
const emaMomentum = kernel.ONE / 10 // 0.1 in Q16.16

// Norm is the shared state of a BatchNorm or LayerNorm layer: per-feature
// affine parameters plus running statistics updated by EMA. BatchNorm
// reduces over the batch dimension per feature; LayerNorm reduces over
// the feature dimension per sample. Both share this type and differ
// only in which axis Forward is told to reduce.
type Norm struct {
	Gamma       []kernel.Fixed
	Beta        []kernel.Fixed
	RunningMean []kernel.Fixed
	RunningVar  []kernel.Fixed
	Epsilon     kernel.Fixed
}

// NewNorm allocates a Norm for n features/positions with gamma=ONE,
// beta=0, and zeroed running statistics — the standard untrained-affine
// initial state.
func NewNorm(n int, epsilon kernel.Fixed) *Norm {
	gamma := make([]kernel.Fixed, n)
	for i := range gamma {
		gamma[i] = kernel.ONE
	}
	return &Norm{
		Gamma:       gamma,
		Beta:        make([]kernel.Fixed, n),
		RunningMean: make([]kernel.Fixed, n),
		RunningVar:  make([]kernel.Fixed, n),
		Epsilon:     epsilon,
	}
}

// mean computes the Q16.16 mean of values via the compensated
// accumulator, treating each value as a raw int64 term (no widening
// multiply is needed for a plain sum).
func mean(values []kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	var acc accum.Accumulator
	for _, v := range values {
		acc.Add(int64(v), faults)
	}
	return dvm.DivQ(int32(acc.Finalize()), int32(len(values)), 0, faults)
}

// varianceAround computes the population variance of values around mu,
// accumulating each squared deviation (a true 64-bit widened product)
// with the compensated accumulator before the final division.
func varianceAround(values []kernel.Fixed, mu kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	var acc accum.Accumulator
	for _, v := range values {
		d := dvm.Sub(v, mu, faults)
		sq := int64(d) * int64(d)
		acc.Add(sq, faults)
	}
	sumSq := dvm.RoundShiftRNE(kernel.Acc64(acc.Finalize()), kernel.FracBits, faults)
	return dvm.DivQ(int32(sumSq), int32(len(values)), 0, faults)
}

// Forward normalizes values in place over the reduction group (a batch
// column for BatchNorm, a sample row for LayerNorm — the caller decides
// which slice it passes), then applies the affine gamma/beta, and folds
// the group's statistics into the running EMA.
func (n *Norm) Forward(values []kernel.Fixed, featureIdx int, faults *kernel.Faults) {
	mu := mean(values, faults)
	variance := varianceAround(values, mu, faults)
	invStd := dvm.DivQ(int32(kernel.ONE), int32(dvm.Sqrt(dvm.Add(variance, n.Epsilon, faults), faults)), kernel.FracBits, faults)

	for i, v := range values {
		centered := dvm.Sub(v, mu, faults)
		normalized := dvm.Mul(centered, invStd, faults)
		scaled := dvm.Mul(normalized, n.Gamma[featureIdx], faults)
		values[i] = dvm.Add(scaled, n.Beta[featureIdx], faults)
	}

	n.RunningMean[featureIdx] = ema(n.RunningMean[featureIdx], mu, faults)
	n.RunningVar[featureIdx] = ema(n.RunningVar[featureIdx], variance, faults)
}

func ema(running, batch kernel.Fixed, faults *kernel.Faults) kernel.Fixed {
	kept := dvm.Mul(dvm.Sub(kernel.ONE, emaMomentum, faults), running, faults)
	added := dvm.Mul(emaMomentum, batch, faults)
	return dvm.Add(kept, added, faults)
}
