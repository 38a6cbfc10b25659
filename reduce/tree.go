// SPDX-License-Identifier: MIT
// Package reduce implements the fixed-topology binary reduction tree:
// the same merge order runs on every platform regardless of threading
// or vector width, so summing a batch of values always produces the
// same bit-exact compensated sum.
package reduce

import (
	"github.com/williamofai/ctrain/accum"
	"github.com/williamofai/ctrain/kernel"
)

const opName = "reduce.Build"

// MaxLeaves is the largest leaf count a Tree supports, per spec.
const MaxLeaves = 65536

// absent marks a Node's Left/Right/Parent as having no such pointer.
const absent = -1

// Node is one node of the reduction tree. Leaves occupy indices
// [0, Leaves); internal nodes occupy [Leaves, 2*Leaves-2]; the root is
// always at index 2*Leaves-2 (for Leaves==1, the sole leaf is its own
// root). Parent/Left/Right are plain slice indices, not pointers: the
// tree is built once and traversed by index, never by pointer chasing.
type Node struct {
	Left, Right, Parent int
	OpID                uint64
}

// Tree is a reduction tree built for a fixed leaf count.
type Tree struct {
	Nodes  []Node
	Leaves int
	Root   int
}

// Build constructs a reduction tree for the given number of leaves.
// Each leaf i is assigned OpID = baseOpID+i; each internal node's OpID
// continues the same sequence at its own index, so every node in the
// tree has a distinct, deterministic operation id suitable for seeding
// the PRNG if a reduction needs per-element randomness.
//
// Internal nodes are assigned breadth-first, left to right, pairing
// adjacent nodes of the current level two at a time. When a level has
// an odd number of nodes, the resolution of spec's reduction-tree
// pairing open question applies: the final, unpaired node of that level
// is carried up unchanged to be paired at the next level, rather than
// being merged early or padded with a phantom zero leaf. This keeps
// every merge a real two-child merge and keeps the rule single and
// deterministic for any leaf count.
func Build(leaves int, baseOpID uint64) (*Tree, error) {
	if leaves <= 0 {
		return nil, kernel.Errorf(opName, kernel.Dimension, "leaves must be positive, got %d", leaves)
	}
	if leaves > MaxLeaves {
		return nil, kernel.Errorf(opName, kernel.Dimension, "leaves %d exceeds MaxLeaves %d", leaves, MaxLeaves)
	}

	nodes := make([]Node, 2*leaves-1)
	for i := 0; i < leaves; i++ {
		nodes[i] = Node{Left: absent, Right: absent, Parent: absent, OpID: baseOpID + uint64(i)}
	}

	level := make([]int, leaves)
	for i := range level {
		level[i] = i
	}

	next := leaves
	for len(level) > 1 {
		nextLevel := make([]int, 0, (len(level)+1)/2)
		i := 0
		for i+1 < len(level) {
			left, right := level[i], level[i+1]
			idx := next
			next++
			nodes[idx] = Node{Left: left, Right: right, Parent: absent, OpID: baseOpID + uint64(idx)}
			nodes[left].Parent = idx
			nodes[right].Parent = idx
			nextLevel = append(nextLevel, idx)
			i += 2
		}
		if i < len(level) {
			// Odd leaf of this level: carry it up unpaired.
			nextLevel = append(nextLevel, level[i])
		}
		level = nextLevel
	}

	return &Tree{Nodes: nodes, Leaves: leaves, Root: level[0]}, nil
}

// Reduce sums values (one per leaf, in leaf order) using the tree's
// fixed topology: each leaf's Neumaier accumulator is seeded with its
// value, then internal nodes are merged in increasing index order,
// which guarantees every node's children are merged before it is
// (children always have a strictly smaller index than their parent).
// The finalized root accumulator is the bit-exact compensated sum.
func (t *Tree) Reduce(values []int64, faults *kernel.Faults) (int64, error) {
	const op = "reduce.Reduce"
	if len(values) != t.Leaves {
		return 0, kernel.Errorf(op, kernel.Dimension, "got %d values, want %d leaves", len(values), t.Leaves)
	}

	accs := make([]accum.Accumulator, len(t.Nodes))
	for i := 0; i < t.Leaves; i++ {
		accs[i].Add(values[i], faults)
	}

	for i := t.Leaves; i < len(t.Nodes); i++ {
		n := t.Nodes[i]
		accs[i] = accs[n.Left]
		accs[i].Merge(&accs[n.Right], faults)
	}

	return accs[t.Root].Finalize(), nil
}
