package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/merklechain"
	"github.com/williamofai/ctrain/prng"
)

var checkpointIndices string

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Args:  cobra.NoArgs,
	Short: "Round-trip a checkpoint through its 164-byte wire layout",
	Long: `Runs genesis+step, snapshots a Checkpoint, serializes it to the
canonical 164-byte layout, deserializes it back, and confirms the two
checkpoints' CheckpointHash values match (excluding timestamp) and that
Restore reproduces step/epoch/current_hash.`,
	RunE: runCheckpoint,
}

func init() {
	checkpointCmd.Flags().StringVar(&checkpointIndices, "indices", "42,17,99,3", "comma-separated batch indices")
}

func runCheckpoint(cmd *cobra.Command, args []string) error {
	seed, err := parseSeed(seedHex)
	if err != nil {
		return fmt.Errorf("invalid --seed: %w", err)
	}
	indices, err := parseIndices(checkpointIndices)
	if err != nil {
		return fmt.Errorf("invalid --indices: %w", err)
	}

	weights, _, err := signDisplayWeights()
	if err != nil {
		return fmt.Errorf("building demo weights: %w", err)
	}

	var ctx merklechain.Context
	if err := ctx.Init(weights, demoConfigBytes(), seed); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	var faults kernel.Faults
	if _, err := ctx.Step(weights, indices, faults); err != nil {
		return fmt.Errorf("step: %w", err)
	}

	weightsHash, err := merklechain.HashTensor(weights)
	if err != nil {
		return fmt.Errorf("hashing weights: %w", err)
	}
	configHash := merklechain.HashConfig(demoConfigBytes())
	prngState := prng.NewState(seed, 0)

	original := merklechain.Checkpoint{
		Version:      merklechain.CheckpointVersion,
		StepNum:      ctx.StepNum,
		Epoch:        ctx.Epoch,
		MerkleHash:   ctx.CurrentHash,
		WeightsHash:  weightsHash,
		ConfigHash:   configHash,
		PRNGSeed:     prngState.Seed,
		PRNGOpID:     prngState.OpID,
		PRNGStep:     prngState.Step(),
		FaultFlags:   faults,
		TimestampSec: 1700000000,
	}

	wire := merklechain.SerializeCheckpoint(original)
	roundTripped, err := merklechain.DeserializeCheckpoint(wire)
	if err != nil {
		return fmt.Errorf("deserialize: %w", err)
	}

	originalHash := merklechain.CheckpointHash(original)
	roundTrippedHash := merklechain.CheckpointHash(roundTripped)
	if originalHash != roundTrippedHash {
		return fmt.Errorf("checkpoint hash mismatch after round-trip: %x != %x", originalHash[:], roundTrippedHash[:])
	}

	var restored merklechain.Context
	merklechain.Restore(&restored, roundTripped)
	if restored.CurrentHash != ctx.CurrentHash || restored.StepNum != ctx.StepNum || restored.Epoch != ctx.Epoch {
		return fmt.Errorf("restore did not reproduce original chain state")
	}

	fmt.Printf("checkpoint_bytes:  %d\n", len(wire))
	fmt.Printf("checkpoint_hash:   %x\n", originalHash[:])
	fmt.Printf("restored_step:     %d\n", restored.StepNum)
	fmt.Printf("restored_epoch:    %d\n", restored.Epoch)
	fmt.Printf("restored_hash:     %x\n", restored.CurrentHash[:])
	fmt.Println("round-trip matched")
	return nil
}
