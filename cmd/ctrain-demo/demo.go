package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/merklechain"
	"github.com/williamofai/ctrain/tensor"
)

// demoConfigBytes is the 20-byte ASCII config used by the genesis and
// step scenarios below: "verify_step_demo_v1\0".
func demoConfigBytes() []byte {
	return append([]byte("verify_step_demo_v1"), 0)
}

// parseSeed parses a 64-bit seed given as a decimal or 0x-prefixed hex
// string.
func parseSeed(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

// signDisplayWeights builds the 16-value demo weight tensor referenced
// below: a buffer whose signs alternate so that a sign change in any
// single entry is visually obvious, each magnitude an integer number of
// ONE units (the verify tamper check adds 1 LSB to one entry).
func signDisplayWeights() (*tensor.Tensor, []kernel.Fixed, error) {
	buf := make([]kernel.Fixed, 16)
	for i := range buf {
		mag := kernel.Fixed((i + 1) * int(kernel.ONE))
		if i%2 == 1 {
			mag = -mag
		}
		buf[i] = mag
	}
	t, err := tensor.New(buf, 16)
	return t, buf, err
}

// parseIndices parses a comma-separated list of unsigned 32-bit batch
// indices, e.g. "42,17,99,3".
func parseIndices(s string) ([]uint32, error) {
	if s == "" {
		return nil, fmt.Errorf("indices must not be empty")
	}
	var out []uint32
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			v, err := strconv.ParseUint(s[start:i], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid index %q: %w", s[start:i], err)
			}
			out = append(out, uint32(v))
			start = i + 1
		}
	}
	return out, nil
}

func hashHex(h merklechain.Hash) string {
	return hex.EncodeToString(h[:])
}
