// Package permute implements the cycle-walking Feistel dataset
// permutation and its batch indexer: a bijection on [0, N) built from a
// fixed 4-round Feistel network over a power-of-two domain, re-applied
// ("cycle-walked") until its output lands back inside [0, N).
package permute

import "github.com/williamofai/ctrain/kernel"

const rounds = 4

// Permutation is a deterministic bijection on [0, N), parameterized by
// a seed and an epoch (so every training epoch gets its own independent
// shuffle of the same dataset).
type Permutation struct {
	Seed     uint64
	Epoch    uint64
	N        uint32
	K        uint // bit width of the padded domain, rounded up to even
	HalfBits uint
	HalfMask uint32
	Range    uint32 // 2^K
}

const opName = "permute.Build"

// Build constructs a Permutation over [0, N) for the given seed and
// epoch. N must be positive.
func Build(seed, epoch uint64, n uint32) (*Permutation, error) {
	if n == 0 {
		return nil, kernel.Errorf(opName, kernel.Dimension, "N must be positive")
	}

	k := bitLen(n)
	if k%2 != 0 {
		k++
	}
	halfBits := k / 2
	halfMask := uint32(0)
	if halfBits > 0 {
		halfMask = (uint32(1) << halfBits) - 1
	}

	return &Permutation{
		Seed:     seed,
		Epoch:    epoch,
		N:        n,
		K:        k,
		HalfBits: halfBits,
		HalfMask: halfMask,
		Range:    uint32(1) << k,
	}, nil
}

// bitLen returns ceil(log2(n)) for n >= 1: the smallest k such that
// 2^k >= n.
func bitLen(n uint32) uint {
	if n <= 1 {
		return 0
	}
	k := uint(0)
	v := uint64(1)
	for v < uint64(n) {
		v <<= 1
		k++
	}
	return k
}

// roundF is the fixed multiplicative/xor-shift Feistel round mixer. It
// folds seed, epoch, round, and the half-value x into one 32-bit
// result using the fixed constants 0x9E3779B9, 0x85EBCA6B, and
// 0xC2B2AE35, finished by an xor-shift-16 then xor-shift-13 pair.
func roundF(seed, epoch, round uint64, x uint32) uint32 {
	h := x
	h ^= uint32(seed)
	h ^= uint32(seed >> 32)
	h ^= uint32(epoch) * 0x9E3779B9
	h ^= uint32(round) * 0x85EBCA6B
	h *= 0xC2B2AE35
	h ^= h >> 16
	h *= 0x85EBCA6B
	h ^= h >> 13
	return h
}

// feistelOnce runs the fixed 4-round Feistel network forward once over
// the padded domain [0, Range).
func (p *Permutation) feistelOnce(x uint32) uint32 {
	l := x >> p.HalfBits
	r := x & p.HalfMask
	for round := uint64(0); round < rounds; round++ {
		fp := roundF(p.Seed, p.Epoch, round, r) & p.HalfMask
		l, r = r, l^fp
	}
	return (l << p.HalfBits) | r
}

// feistelInverseOnce runs the inverse of the fixed 4-round Feistel
// network once, by undoing rounds in reverse order (3, 2, 1, 0).
func (p *Permutation) feistelInverseOnce(x uint32) uint32 {
	l := x >> p.HalfBits
	r := x & p.HalfMask
	for round := int64(rounds - 1); round >= 0; round-- {
		fp := roundF(p.Seed, p.Epoch, uint64(round), l) & p.HalfMask
		l, r = r^fp, l
	}
	return (l << p.HalfBits) | r
}

// Apply maps i (0 <= i < N) to its permuted index, by cycle-walking the
// Feistel network: re-applying it to its own output until the result
// lands inside [0, N). The walk is capped at Range iterations; if it is
// exceeded (which cannot happen for a correctly constructed Permutation,
// since the Feistel network is a bijection on a superset of [0, N) and
// must cycle back within Range steps) kernel.FaultDomain is set and
// i mod N is returned as a safe fallback.
func (p *Permutation) Apply(i uint32, faults *kernel.Faults) uint32 {
	x := i
	for iter := uint32(0); iter < p.Range; iter++ {
		x = p.feistelOnce(x)
		if x < p.N {
			return x
		}
	}
	faults.Set(kernel.FaultDomain)
	return i % p.N
}

// Inverse maps a permuted index back to its original index, by
// cycle-walking the inverse Feistel network the same way Apply does.
func (p *Permutation) Inverse(j uint32, faults *kernel.Faults) uint32 {
	x := j
	for iter := uint32(0); iter < p.Range; iter++ {
		x = p.feistelInverseOnce(x)
		if x < p.N {
			return x
		}
	}
	faults.Set(kernel.FaultDomain)
	return j % p.N
}
