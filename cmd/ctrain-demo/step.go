package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/merklechain"
)

var stepIndices string

var stepCmd = &cobra.Command{
	Use:   "step",
	Args:  cobra.NoArgs,
	Short: "Run one Merkle chain step over the demo weights",
	Long:  `Runs Context.Init followed by one Context.Step over the batch given by --indices, and prints the resulting step record. Two invocations with identical --seed and --indices produce byte-identical hashes.`,
	RunE:  runStep,
}

func init() {
	stepCmd.Flags().StringVar(&stepIndices, "indices", "42,17,99,3", "comma-separated batch indices")
}

func runStep(cmd *cobra.Command, args []string) error {
	seed, err := parseSeed(seedHex)
	if err != nil {
		return fmt.Errorf("invalid --seed: %w", err)
	}
	indices, err := parseIndices(stepIndices)
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
	record, err := ctx.Step(weights, indices, faults)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}

	fmt.Printf("prev_hash:    %s\n", hashHex(record.PrevHash))
	fmt.Printf("weights_hash: %s\n", hashHex(record.WeightsHash))
	fmt.Printf("batch_hash:   %s\n", hashHex(record.BatchHash))
	fmt.Printf("step_number:  %d\n", record.StepNumber)
	fmt.Printf("step_hash:    %s\n", hashHex(record.StepHash))
	return nil
}
