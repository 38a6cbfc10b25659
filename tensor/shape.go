// SPDX-License-Identifier: MIT
// Package tensor defines the tensor descriptor (a borrowed buffer plus
// shape metadata) and the canonical little-endian serialization that
// merklechain hashes to commit weights into the chain (SerializeGrad
// gives gradient tensors the same encoding).
package tensor

import "github.com/williamofai/ctrain/kernel"

const opShape = "tensor.NewShape"

// MaxRank is the maximum number of dimensions a Shape supports.
const MaxRank = 4

// Shape is up to 4 dimension sizes plus the rank actually in use. Unused
// dimension slots beyond Rank are always 0.
type Shape struct {
	Dims [MaxRank]int
	Rank int
}

// NewShape builds a Shape from 1 to MaxRank positive dimension sizes.
func NewShape(dims ...int) (Shape, error) {
	var s Shape
	if len(dims) == 0 || len(dims) > MaxRank {
		return s, kernel.Errorf(opShape, kernel.Dimension, "rank must be in [1,%d], got %d", MaxRank, len(dims))
	}
	for i, d := range dims {
		if d <= 0 {
			return s, kernel.Errorf(opShape, kernel.Dimension, "dims[%d] = %d must be positive", i, d)
		}
		s.Dims[i] = d
	}
	s.Rank = len(dims)
	return s, nil
}

// Count returns the cached total element count: the product of
// Dims[:Rank].
func (s Shape) Count() int {
	n := 1
	for i := 0; i < s.Rank; i++ {
		n *= s.Dims[i]
	}
	return n
}

// ContiguousStrides returns the row-major contiguous stride for each
// used dimension: stride[i] = product of dims[j] for j > i. Unused
// slots (i >= Rank) are 0.
func (s Shape) ContiguousStrides() [MaxRank]int {
	var strides [MaxRank]int
	acc := 1
	for i := s.Rank - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s.Dims[i]
	}
	return strides
}

// IsContiguous reports whether strides matches the row-major contiguous
// layout for this shape.
func (s Shape) IsContiguous(strides [MaxRank]int) bool {
	return strides == s.ContiguousStrides()
}
