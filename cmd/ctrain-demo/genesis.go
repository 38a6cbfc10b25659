package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williamofai/ctrain/merklechain"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Args:  cobra.NoArgs,
	Short: "Print the genesis hash of the demo weight tensor",
	Long:  `Builds the 16-value demo weight tensor and the 20-byte demo config, runs Context.Init, and prints the resulting current_hash. Two invocations with the same --seed always print the same hash.`,
	RunE:  runGenesis,
}

func runGenesis(cmd *cobra.Command, args []string) error {
	seed, err := parseSeed(seedHex)
	if err != nil {
		return fmt.Errorf("invalid --seed: %w", err)
	}

	weights, _, err := signDisplayWeights()
	if err != nil {
		return fmt.Errorf("building demo weights: %w", err)
	}

	var ctx merklechain.Context
	if err := ctx.Init(weights, demoConfigBytes(), seed); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	fmt.Printf("current_hash: %s\n", hashHex(ctx.CurrentHash))
	return nil
}
