// SPDX-License-Identifier: MIT
package tensor

import "github.com/williamofai/ctrain/kernel"

const opTensor = "tensor.New"
const opGrad = "tensor.NewGrad"

// Tensor is a forward-pass descriptor over a caller-owned, borrowed
// Q16.16 buffer. The descriptor never allocates or frees the buffer; it
// only describes its shape and stride.
type Tensor struct {
	Buffer  []kernel.Fixed
	Shape   Shape
	Strides [MaxRank]int
}

// New builds a contiguous row-major Tensor over buf with the given
// dimensions. len(buf) must exactly equal the shape's element count.
func New(buf []kernel.Fixed, dims ...int) (*Tensor, error) {
	shape, err := NewShape(dims...)
	if err != nil {
		return nil, kernel.Wrap(opTensor, kernel.Dimension, err)
	}
	if len(buf) != shape.Count() {
		return nil, kernel.Errorf(opTensor, kernel.Memory, "buffer has %d elements, shape needs %d", len(buf), shape.Count())
	}
	return &Tensor{Buffer: buf, Shape: shape, Strides: shape.ContiguousStrides()}, nil
}

// Contiguous reports whether t's strides match its shape's row-major
// contiguous layout. Only contiguous tensors may be canonically
// serialized or hashed.
func (t *Tensor) Contiguous() bool {
	return t.Shape.IsContiguous(t.Strides)
}

// GradTensor mirrors Tensor over a Q8.24 buffer, used exclusively for
// gradients in the backward pass.
type GradTensor struct {
	Buffer  []kernel.FixedHP
	Shape   Shape
	Strides [MaxRank]int
}

// NewGrad builds a contiguous row-major GradTensor over buf.
func NewGrad(buf []kernel.FixedHP, dims ...int) (*GradTensor, error) {
	shape, err := NewShape(dims...)
	if err != nil {
		return nil, kernel.Wrap(opGrad, kernel.Dimension, err)
	}
	if len(buf) != shape.Count() {
		return nil, kernel.Errorf(opGrad, kernel.Memory, "buffer has %d elements, shape needs %d", len(buf), shape.Count())
	}
	return &GradTensor{Buffer: buf, Shape: shape, Strides: shape.ContiguousStrides()}, nil
}

// Contiguous reports whether g's strides match its shape's row-major
// contiguous layout.
func (g *GradTensor) Contiguous() bool {
	return g.Shape.IsContiguous(g.Strides)
}
