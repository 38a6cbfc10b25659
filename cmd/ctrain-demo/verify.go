package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/merklechain"
)

var (
	verifyIndices   string
	verifyPerturb   string
	verifyPerturbAt int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Args:  cobra.NoArgs,
	Short: "Run the step scenario twice and check tamper detection",
	Long: `Runs genesis+step twice with identical inputs and
confirms the hashes match, then perturbs one input (--perturb: weight,
indices, or seed) and confirms the hash changes.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyIndices, "indices", "42,17,99,3", "comma-separated batch indices")
	verifyCmd.Flags().StringVar(&verifyPerturb, "perturb", "indices", "which input to perturb: weight, indices, or seed")
	verifyCmd.Flags().IntVar(&verifyPerturbAt, "perturb-weight-index", 0, "weight index to perturb by +1 LSB when --perturb=weight")
}

func runVerify(cmd *cobra.Command, args []string) error {
	seed, err := parseSeed(seedHex)
	if err != nil {
		return fmt.Errorf("invalid --seed: %w", err)
	}
	indices, err := parseIndices(verifyIndices)
	if err != nil {
		return fmt.Errorf("invalid --indices: %w", err)
	}

	legitHash, err := genesisAndStepHash(seed, indices)
	if err != nil {
		return err
	}
	replayHash, err := genesisAndStepHash(seed, indices)
	if err != nil {
		return err
	}
	if legitHash != replayHash {
		return fmt.Errorf("replay mismatch: two identical runs produced different hashes")
	}
	fmt.Printf("legitimate_hash: %x\n", legitHash[:])
	fmt.Println("replay matched legitimate hash")

	perturbedSeed := seed
	perturbedIndices := append([]uint32(nil), indices...)
	perturbWeight := -1
	switch verifyPerturb {
	case "seed":
		perturbedSeed = seed + 1
	case "indices":
		if len(perturbedIndices) == 0 {
			return fmt.Errorf("no indices to perturb")
		}
		perturbedIndices[len(perturbedIndices)-1]++
	case "weight":
		perturbWeight = verifyPerturbAt
	default:
		return fmt.Errorf("unknown --perturb value %q", verifyPerturb)
	}

	perturbedHash, err := genesisAndStepHashPerturbed(perturbedSeed, perturbedIndices, perturbWeight)
	if err != nil {
		return err
	}
	if perturbedHash == legitHash {
		return fmt.Errorf("tamper detection failed: perturbed run produced the legitimate hash")
	}
	fmt.Printf("perturbed_hash:  %x\n", perturbedHash[:])
	fmt.Printf("tamper on %q detected: hash differs from legitimate\n", verifyPerturb)
	return nil
}

func genesisAndStepHash(seed uint64, indices []uint32) (merklechain.Hash, error) {
	return genesisAndStepHashPerturbed(seed, indices, -1)
}

// genesisAndStepHashPerturbed runs genesis+step, optionally flipping the
// low bit of weights[perturbIndex] by +1 LSB before hashing (perturbIndex
// < 0 means no perturbation).
func genesisAndStepHashPerturbed(seed uint64, indices []uint32, perturbIndex int) (merklechain.Hash, error) {
	weights, buf, err := signDisplayWeights()
	if err != nil {
		return merklechain.Hash{}, fmt.Errorf("building demo weights: %w", err)
	}
	if perturbIndex >= 0 && perturbIndex < len(buf) {
		buf[perturbIndex]++
	}

	var ctx merklechain.Context
	if err := ctx.Init(weights, demoConfigBytes(), seed); err != nil {
		return merklechain.Hash{}, fmt.Errorf("init: %w", err)
	}
	var faults kernel.Faults
	record, err := ctx.Step(weights, indices, faults)
	if err != nil {
		return merklechain.Hash{}, fmt.Errorf("step: %w", err)
	}
	return record.StepHash, nil
}
