package merklechain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/tensor"
)

func mustTensor(t *testing.T, vals []kernel.Fixed) *tensor.Tensor {
	t.Helper()
	tn, err := tensor.New(vals, len(vals))
	require.NoError(t, err)
	return tn
}

func xorWeights() []kernel.Fixed {
	w := make([]kernel.Fixed, 16)
	for i := range w {
		w[i] = kernel.Fixed(i) * kernel.ONE
	}
	return w
}

const demoConfig = "verify_step_demo_v1\x00"
const demoSeed = 0x123456789ABCDEF0

// TestGenesis_Reproducible checks that two independent Init calls over
// identical weights, config, and seed produce byte-identical
// current_hash.
func TestGenesis_Reproducible(t *testing.T) {
	weights := mustTensor(t, xorWeights())

	var ctxA, ctxB Context
	require.NoError(t, ctxA.Init(weights, []byte(demoConfig), demoSeed))
	require.NoError(t, ctxB.Init(weights, []byte(demoConfig), demoSeed))
	assert.True(t, ctxA.CurrentHash.Equal(ctxB.CurrentHash), "two independent Init calls with identical inputs diverged")
}

// TestStep_SingleStepReplay checks that replaying a step from the same genesis is deterministic.
func TestStep_SingleStepReplay(t *testing.T) {
	weights := mustTensor(t, xorWeights())
	batch := []uint32{42, 17, 99, 3}

	var ctxA, ctxB Context
	require.NoError(t, ctxA.Init(weights, []byte(demoConfig), demoSeed))
	require.NoError(t, ctxB.Init(weights, []byte(demoConfig), demoSeed))

	var faults kernel.Faults
	_, err := ctxA.Step(weights, batch, faults)
	require.NoError(t, err)
	_, err = ctxB.Step(weights, batch, faults)
	require.NoError(t, err)

	assert.True(t, ctxA.CurrentHash.Equal(ctxB.CurrentHash), "replaying the same step from the same genesis diverged")
}

// TestStep_TamperDetection checks that perturbing weights[0] by +1 LSB,
// the last batch index, or the seed each changes current_hash relative
// to the legitimate run.
func TestStep_TamperDetection(t *testing.T) {
	weights := mustTensor(t, xorWeights())
	batch := []uint32{42, 17, 99, 3}

	var legit Context
	require.NoError(t, legit.Init(weights, []byte(demoConfig), demoSeed))
	var faults kernel.Faults
	_, err := legit.Step(weights, batch, faults)
	require.NoError(t, err)

	tamperedVals := xorWeights()
	tamperedVals[0]++
	tamperedWeights := mustTensor(t, tamperedVals)
	var tamperedCtx Context
	require.NoError(t, tamperedCtx.Init(weights, []byte(demoConfig), demoSeed))
	_, err = tamperedCtx.Step(tamperedWeights, batch, faults)
	require.NoError(t, err)
	assert.False(t, legit.CurrentHash.Equal(tamperedCtx.CurrentHash), "perturbing weights[0] by 1 LSB should change current_hash")

	tamperedBatch := []uint32{42, 17, 99, 4}
	var batchCtx Context
	require.NoError(t, batchCtx.Init(weights, []byte(demoConfig), demoSeed))
	_, err = batchCtx.Step(weights, tamperedBatch, faults)
	require.NoError(t, err)
	assert.False(t, legit.CurrentHash.Equal(batchCtx.CurrentHash), "perturbing the last batch index should change current_hash")

	var seedCtx Context
	require.NoError(t, seedCtx.Init(weights, []byte(demoConfig), demoSeed+1))
	_, err = seedCtx.Step(weights, batch, faults)
	require.NoError(t, err)
	assert.False(t, legit.CurrentHash.Equal(seedCtx.CurrentHash), "perturbing the seed should change current_hash")
}

func TestStep_FaultTransitionsChainAndFreezesHash(t *testing.T) {
	weights := mustTensor(t, xorWeights())
	batch := []uint32{1, 2, 3}

	var ctx Context
	require.NoError(t, ctx.Init(weights, nil, 1))
	before := ctx.CurrentHash

	var faulted kernel.Faults
	faulted.Set(kernel.FaultOverflow)
	_, err := ctx.Step(weights, batch, faulted)
	assert.Error(t, err, "expected Step to return an error when faults has overflow set")
	assert.True(t, ctx.Faulted, "context should transition to faulted")
	assert.True(t, ctx.CurrentHash.Equal(before), "current_hash must not change on a faulted step")

	var clean kernel.Faults
	_, err = ctx.Step(weights, batch, clean)
	assert.Error(t, err, "a faulted context must refuse further steps even with clean faults")
}

// TestVerifyStep_DetectsEachPerturbation checks that VerifyStep returns
// Ok on the correct inputs and a Hash error on any single perturbed
// input: prev hash, a weight, a batch index, or the step counter.
func TestVerifyStep_DetectsEachPerturbation(t *testing.T) {
	weights := mustTensor(t, xorWeights())
	batch := []uint32{5, 6, 7}

	var ctx Context
	require.NoError(t, ctx.Init(weights, nil, 7))
	prevHash := ctx.CurrentHash
	var faults kernel.Faults
	record, err := ctx.Step(weights, batch, faults)
	require.NoError(t, err)

	assert.NoError(t, VerifyStep(record, prevHash, weights, batch), "VerifyStep on correct inputs")

	wrongPrev := prevHash
	wrongPrev[0] ^= 0xFF
	assert.Error(t, VerifyStep(record, wrongPrev, weights, batch), "expected Hash error for wrong prev hash")

	tamperedVals := xorWeights()
	tamperedVals[0]++
	tamperedWeights := mustTensor(t, tamperedVals)
	assert.Error(t, VerifyStep(record, prevHash, tamperedWeights, batch), "expected Hash error for tampered weights")

	tamperedBatch := []uint32{5, 6, 8}
	assert.Error(t, VerifyStep(record, prevHash, weights, tamperedBatch), "expected Hash error for tampered batch")

	tamperedRecord := record
	tamperedRecord.StepNumber++
	assert.Error(t, VerifyStep(tamperedRecord, prevHash, weights, batch), "expected Hash error for tampered step counter")
}
