// Package merklechain binds a sequence of training steps into a
// cryptographic chain: each step's hash commits to the previous hash,
// the new weights, and the batch indices used, so any third party can
// replay and verify the chain without trusting the party that produced
// it.
package merklechain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"

	"github.com/williamofai/ctrain/tensor"
)

// HashSize is the length in bytes of every hash this package produces.
const HashSize = sha256.Size

// Hash is a 32-byte SHA-256 digest.
type Hash [HashSize]byte

// sum256 is the sole place this package computes a SHA-256 digest (via
// crypto/sha256.New over the concatenated parts), kept as a named
// wrapper so every hashing step in the chain is visible at a single
// definition.
func sum256(parts ...[]byte) Hash {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Equal does a constant-time comparison of two hashes. Used anywhere a
// hash comparison result could otherwise leak timing information about
// how many leading bytes matched.
func (h Hash) Equal(other Hash) bool {
	return subtle.ConstantTimeCompare(h[:], other[:]) == 1
}

// HashTensor computes the canonical hash of a contiguous weight tensor:
// SHA-256 of its canonical little-endian serialization.
func HashTensor(t *tensor.Tensor) (Hash, error) {
	enc, err := tensor.Serialize(t)
	if err != nil {
		return Hash{}, err
	}
	return sum256(enc), nil
}

// HashIndices computes SHA-256 over a little-endian u32 concatenation of
// batch indices, per the canonical batch-hash encoding.
func HashIndices(indices []uint32) Hash {
	buf := make([]byte, 4*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[4*i:4*i+4], idx)
	}
	return sum256(buf)
}

// HashConfig computes SHA-256 over raw configuration bytes. An empty or
// nil config hashes to SHA-256 of 32 zero bytes, per the genesis
// contract's "32 zero bytes if none" fallback.
func HashConfig(config []byte) Hash {
	if len(config) == 0 {
		return sum256(make([]byte, 32))
	}
	return sum256(config)
}

func le64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}
