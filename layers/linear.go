// SPDX-License-Identifier: MIT
// Package layers implements the forward-pass building blocks (Linear,
// the LUT-based activations, BatchNorm/LayerNorm, Conv2D) that compose
// into a trainable network, all built strictly on dvm/accum/tensor.
package layers

import (
	"github.com/williamofai/ctrain/accum"
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/tensor"
)

const opLinearForward = "layers.LinearForward"

// Linear holds a fully-connected layer's weights and bias: y = W*x + b,
// with W stored row-major as (outputs x inputs).
type Linear struct {
	Weights *tensor.Tensor // shape [outputs, inputs]
	Bias    *tensor.Tensor // shape [outputs]
	Inputs  int
	Outputs int
}

// NewLinear validates that weights and bias carry the shapes a
// (outputs x inputs) layer requires.
func NewLinear(weights, bias *tensor.Tensor, inputs, outputs int) (*Linear, error) {
	const op = "layers.NewLinear"
	if weights.Shape.Rank != 2 || weights.Shape.Dims[0] != outputs || weights.Shape.Dims[1] != inputs {
		return nil, kernel.Errorf(op, kernel.Dimension, "weights shape must be [%d,%d]", outputs, inputs)
	}
	if bias.Shape.Rank != 1 || bias.Shape.Dims[0] != outputs {
		return nil, kernel.Errorf(op, kernel.Dimension, "bias shape must be [%d]", outputs)
	}
	return &Linear{Weights: weights, Bias: bias, Inputs: inputs, Outputs: outputs}, nil
}

// Forward computes y = W*x + b into out. Each output row's dot product
// accumulates its products (one 64-bit widened multiply per term) in a
// fresh compensated accumulator before rounding back down to Q16.16 and
// adding the bias, per the canonical forward-pass contract.
func (l *Linear) Forward(x []kernel.Fixed, out []kernel.Fixed, faults *kernel.Faults) error {
	if len(x) != l.Inputs {
		return kernel.Errorf(opLinearForward, kernel.Dimension, "input has %d elements, want %d", len(x), l.Inputs)
	}
	if len(out) != l.Outputs {
		return kernel.Errorf(opLinearForward, kernel.Dimension, "output has %d elements, want %d", len(out), l.Outputs)
	}

	w := l.Weights.Buffer
	for j := 0; j < l.Outputs; j++ {
		var acc accum.Accumulator
		base := j * l.Inputs
		for i := 0; i < l.Inputs; i++ {
			product := int64(w[base+i]) * int64(x[i])
			acc.Add(product, faults)
		}
		rounded := dvm.RoundShiftRNE(kernel.Acc64(acc.Finalize()), kernel.FracBits, faults)
		out[j] = dvm.Add(rounded, l.Bias.Buffer[j], faults)
	}
	return nil
}
