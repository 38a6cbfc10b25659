// SPDX-License-Identifier: MIT
package tensor

import (
	"encoding/binary"

	"github.com/williamofai/ctrain/kernel"
)

// DType identifies the element encoding of a canonically serialized
// tensor.
type DType uint32

const (
	// DTypeQ16_16 is the forward-pass weight/activation encoding.
	DTypeQ16_16 DType = 0
	// DTypeQ8_24 is the backward-pass gradient encoding.
	DTypeQ8_24 DType = 1
	// DTypeQ32_32 is reserved for a wider intermediate encoding; no
	// descriptor in this package currently produces it, but the
	// canonical format reserves the tag so a future 64-bit tensor type
	// can serialize without a header format change.
	DTypeQ32_32 DType = 2
)

// FormatVersion is the canonical serialization format's version field.
const FormatVersion uint32 = 1

// HeaderSize is the fixed byte size of the canonical header: version(4)
// + dtype(4) + ndims(4) + dims[4](16) + total_size(8).
const HeaderSize = 4 + 4 + 4 + 4*4 + 8

const opSerialize = "tensor.Serialize"

// encodeHeader writes the canonical header for dtype/shape/total into a
// fresh HeaderSize-byte buffer.
func encodeHeader(dtype DType, shape Shape, total uint64) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], FormatVersion)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(dtype))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(shape.Rank))
	for i := 0; i < MaxRank; i++ {
		binary.LittleEndian.PutUint32(buf[12+4*i:16+4*i], uint32(shape.Dims[i]))
	}
	binary.LittleEndian.PutUint64(buf[28:36], total)
	return buf
}

// Serialize produces the canonical byte encoding of t: the header
// followed by each element written as a little-endian two's-complement
// int32. t must be contiguous.
func Serialize(t *Tensor) ([]byte, error) {
	if !t.Contiguous() {
		return nil, kernel.Errorf(opSerialize, kernel.State, "tensor is not contiguous")
	}
	out := encodeHeader(DTypeQ16_16, t.Shape, uint64(len(t.Buffer)))
	elems := make([]byte, 4*len(t.Buffer))
	for i, v := range t.Buffer {
		binary.LittleEndian.PutUint32(elems[4*i:4*i+4], uint32(int32(v)))
	}
	return append(out, elems...), nil
}

// SerializeGrad is Serialize's Q8.24 counterpart for gradient tensors.
func SerializeGrad(g *GradTensor) ([]byte, error) {
	if !g.Contiguous() {
		return nil, kernel.Errorf(opSerialize, kernel.State, "gradient tensor is not contiguous")
	}
	out := encodeHeader(DTypeQ8_24, g.Shape, uint64(len(g.Buffer)))
	elems := make([]byte, 4*len(g.Buffer))
	for i, v := range g.Buffer {
		binary.LittleEndian.PutUint32(elems[4*i:4*i+4], uint32(int32(v)))
	}
	return append(out, elems...), nil
}
