// Package prng implements ctrain's counter-based, Philox-style
// deterministic random source: core is a pure function of (seed, op_id,
// step), so any caller that knows those three values can reproduce any
// sample without replaying the ones before it.
package prng

// Core is the pure counter-based mixing function. Given a seed, an
// operation id, and a step, it deterministically produces one 32-bit
// sample. Calling Core twice with the same arguments, on any platform,
// always yields the same result.
func Core(seed uint64, opID uint64, step uint64) uint32 {
	ctr := (opID << 32) | (step & 0xFFFFFFFF)
	key := seed ^ (opID * 0x9E3779B97F4A7C15)

	for i := 0; i < 10; i++ {
		ctr = (ctr * 0xD2511F53) ^ key
		key = (key * 0xCD9E8D57) + 0x9E3779B9
	}

	return uint32(ctr)
}

// State is an immutable (seed, op_id) pair plus a monotonically
// increasing step counter. Advancing the step is State's only mutation.
type State struct {
	Seed uint64
	OpID uint64
	step uint64
}

// NewState constructs a State at step 0.
func NewState(seed, opID uint64) *State {
	return &State{Seed: seed, OpID: opID}
}

// Step reports the state's current step counter.
func (s *State) Step() uint64 {
	return s.step
}

// Next draws one sample at the current step, then advances the step.
func (s *State) Next() uint32 {
	v := Core(s.Seed, s.OpID, s.step)
	s.step++
	return v
}

// Peek returns the sample that would be drawn at the given step without
// advancing the state. Useful for look-ahead without consuming entropy.
func (s *State) Peek(step uint64) uint32 {
	return Core(s.Seed, s.OpID, step)
}

// MakeOpID deterministically mixes a layer index, a tensor index, and an
// element index into a single 64-bit operation id, so that every scalar
// in a network has its own independent PRNG stream derived from the same
// top-level seed.
func MakeOpID(layer, tensor, element uint64) uint64 {
	x := layer*0x9E3779B97F4A7C15 + tensor*0xBF58476D1CE4E5B9 + element
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}
