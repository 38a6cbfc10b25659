package merklechain

import (
	"github.com/williamofai/ctrain/internal/audit"
	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/tensor"
)

const (
	opInit       = "merklechain.Init"
	opStep       = "merklechain.Step"
	opVerifyStep = "merklechain.VerifyStep"
)

// Context is a Merkle chain's mutable state. It holds no weight or
// batch data itself; callers pass those to Step each time.
type Context struct {
	InitialHash Hash
	CurrentHash Hash
	StepNum     uint64
	Epoch       uint32
	Initialized bool
	Faulted     bool

	// Logger receives the faulted-transition warning. A nil Logger
	// discards it; the fault is still reported through the returned
	// error regardless of whether a logger is attached.
	Logger *audit.Logger
}

// StepRecord is the auditable artifact of a single committed step: the
// inputs and output hash that anyone can recompute and compare via
// VerifyStep.
type StepRecord struct {
	PrevHash    Hash
	WeightsHash Hash
	BatchHash   Hash
	StepNumber  uint64
	StepHash    Hash
}

// Init computes the genesis hash h0 = SHA256(H(weights) || H(config) ||
// seed_le64) and sets both InitialHash and CurrentHash to it. Two
// independent Init calls with identical weights, config, and seed
// produce byte-identical hashes: genesis reproducibility depends on
// nothing but its three arguments.
func (c *Context) Init(weights *tensor.Tensor, config []byte, seed uint64) error {
	wh, err := HashTensor(weights)
	if err != nil {
		return kernel.Wrap(opInit, kernel.Dimension, err)
	}
	ch := HashConfig(config)
	h0 := sum256(wh[:], ch[:], le64(seed))

	c.InitialHash = h0
	c.CurrentHash = h0
	c.StepNum = 0
	c.Epoch = 0
	c.Initialized = true
	c.Faulted = false
	return nil
}

// Step extends the chain by one training step. If the context is
// already faulted, or faultsIn carries any of the chain-invalidating
// flags (overflow, underflow, div_zero, domain), Step transitions the
// context to faulted and returns a Fault error without advancing
// CurrentHash or Step. Otherwise it computes h_t = SHA256(h_{t-1} ||
// H(weights) || H(batch) || t_le64), advances CurrentHash and Step, and
// returns the StepRecord an auditor would need to replay it.
func (c *Context) Step(weights *tensor.Tensor, batchIndices []uint32, faultsIn kernel.Faults) (StepRecord, error) {
	if !c.Initialized {
		return StepRecord{}, kernel.Errorf(opStep, kernel.State, "context not initialized")
	}
	if c.Faulted || faultsIn.HasFault() {
		wasAlreadyFaulted := c.Faulted
		c.Faulted = true
		if !wasAlreadyFaulted {
			c.Logger.Warn("merkle chain transitioned to faulted", "step", c.StepNum, "faults", faultsIn.String())
		}
		return StepRecord{}, kernel.Errorf(opStep, kernel.Fault, "chain faulted at step %d", c.StepNum)
	}

	wh, err := HashTensor(weights)
	if err != nil {
		return StepRecord{}, kernel.Wrap(opStep, kernel.Dimension, err)
	}
	bh := HashIndices(batchIndices)
	prev := c.CurrentHash
	stepHash := sum256(prev[:], wh[:], bh[:], le64(c.StepNum))

	record := StepRecord{
		PrevHash:    prev,
		WeightsHash: wh,
		BatchHash:   bh,
		StepNumber:  c.StepNum,
		StepHash:    stepHash,
	}

	c.CurrentHash = stepHash
	c.StepNum++
	return record, nil
}

// VerifyStep recomputes a step's hash from expectedPrevHash, weights,
// and batchIndices, and checks it byte-for-byte against record. It
// returns Ok when every component matches, or Hash when any of the
// previous hash, the weights, the batch indices, or the step counter
// was perturbed.
func VerifyStep(record StepRecord, expectedPrevHash Hash, weights *tensor.Tensor, batchIndices []uint32) error {
	if !record.PrevHash.Equal(expectedPrevHash) {
		return kernel.Errorf(opVerifyStep, kernel.Hash, "prev hash mismatch")
	}
	wh, err := HashTensor(weights)
	if err != nil {
		return kernel.Wrap(opVerifyStep, kernel.Dimension, err)
	}
	if !wh.Equal(record.WeightsHash) {
		return kernel.Errorf(opVerifyStep, kernel.Hash, "weights hash mismatch")
	}
	bh := HashIndices(batchIndices)
	if !bh.Equal(record.BatchHash) {
		return kernel.Errorf(opVerifyStep, kernel.Hash, "batch hash mismatch")
	}
	recomputed := sum256(record.PrevHash[:], wh[:], bh[:], le64(record.StepNumber))
	if !recomputed.Equal(record.StepHash) {
		return kernel.Errorf(opVerifyStep, kernel.Hash, "step hash mismatch")
	}
	return nil
}
