package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williamofai/ctrain/backward"
	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/layers"
	"github.com/williamofai/ctrain/merklechain"
	"github.com/williamofai/ctrain/optim"
	"github.com/williamofai/ctrain/permute"
	"github.com/williamofai/ctrain/prng"
	"github.com/williamofai/ctrain/tensor"
)

var (
	xorEpochs     int
	xorLearnRate  float64
	xorPrintEvery int
)

var trainXORCmd = &cobra.Command{
	Use:   "train-xor",
	Args:  cobra.NoArgs,
	Short: "Train a 2-8-1 ReLU/sigmoid network on XOR, Merkle-committing every epoch",
	Long: `Trains a 2-8-1 network (ReLU hidden, sigmoid
output) on the four XOR pairs with plain SGD, committing the whole
parameter tensor to a Merkle chain once per epoch. Two runs with the
same --seed produce byte-identical current_hash at every epoch.`,
	RunE: runTrainXOR,
}

func init() {
	trainXORCmd.Flags().IntVar(&xorEpochs, "epochs", 5000, "number of training epochs")
	trainXORCmd.Flags().Float64Var(&xorLearnRate, "lr", 0.5, "SGD learning rate")
	trainXORCmd.Flags().IntVar(&xorPrintEvery, "print-every", 1000, "print loss/hash every N epochs (0 disables progress output)")
}

type xorSample struct {
	x      [2]kernel.Fixed
	target kernel.Fixed
}

func xorDataset() []xorSample {
	return []xorSample{
		{[2]kernel.Fixed{0, 0}, 0},
		{[2]kernel.Fixed{0, kernel.ONE}, kernel.ONE},
		{[2]kernel.Fixed{kernel.ONE, 0}, kernel.ONE},
		{[2]kernel.Fixed{kernel.ONE, kernel.ONE}, 0},
	}
}

// initWeight draws a small deterministic pseudo-random Q16.16 value for
// weight element idx of tensor tensorID in layer, by scaling down one
// PRNG sample. Biases always start at zero.
func initWeight(seed uint64, layer, tensorID uint64, idx int) kernel.Fixed {
	opID := prng.MakeOpID(layer, tensorID, uint64(idx))
	sample := int32(prng.Core(seed, opID, 0))
	return kernel.Fixed(sample >> 20)
}

func runTrainXOR(cmd *cobra.Command, args []string) error {
	seed, err := parseSeed(seedHex)
	if err != nil {
		return fmt.Errorf("invalid --seed: %w", err)
	}
	if xorEpochs <= 0 {
		return fmt.Errorf("--epochs must be positive")
	}
	lr := kernel.Fixed(xorLearnRate * float64(kernel.ONE))

	// A single flat parameter slab backs every sub-tensor, so the whole
	// network's state hashes as one contiguous theta_t per epoch.
	const (
		hidden   = 8
		w1Count  = hidden * 2
		b1Count  = hidden
		w2Count  = 1 * hidden
		b2Count  = 1
	)
	params := make([]kernel.Fixed, w1Count+b1Count+w2Count+b2Count)
	w1 := params[0:w1Count]
	b1 := params[w1Count : w1Count+b1Count]
	w2 := params[w1Count+b1Count : w1Count+b1Count+w2Count]
	b2 := params[w1Count+b1Count+w2Count:]

	for i := range w1 {
		w1[i] = initWeight(seed, 1, 0, i)
	}
	for i := range w2 {
		w2[i] = initWeight(seed, 2, 0, i)
	}

	w1Tensor, err := tensor.New(w1, hidden, 2)
	if err != nil {
		return err
	}
	b1Tensor, err := tensor.New(b1, hidden)
	if err != nil {
		return err
	}
	w2Tensor, err := tensor.New(w2, 1, hidden)
	if err != nil {
		return err
	}
	b2Tensor, err := tensor.New(b2, 1)
	if err != nil {
		return err
	}
	paramsTensor, err := tensor.New(params, len(params))
	if err != nil {
		return err
	}

	layer1, err := layers.NewLinear(w1Tensor, b1Tensor, 2, hidden)
	if err != nil {
		return err
	}
	layer2, err := layers.NewLinear(w2Tensor, b2Tensor, hidden, 1)
	if err != nil {
		return err
	}

	sgd := &optim.SGD{LearningRate: lr}

	var ctx merklechain.Context
	if err := ctx.Init(paramsTensor, demoConfigBytes(), seed); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	dataset := xorDataset()
	n := int64(len(dataset))

	for epoch := 0; epoch < xorEpochs; epoch++ {
		var faults kernel.Faults

		gw1Sum := make([]int64, w1Count)
		gb1Sum := make([]int64, b1Count)
		gw2Sum := make([]int64, w2Count)
		gb2Sum := make([]int64, b2Count)
		var totalLoss kernel.Fixed

		for _, sample := range dataset {
			hPre := make([]kernel.Fixed, hidden)
			if err := layer1.Forward(sample.x[:], hPre, &faults); err != nil {
				return fmt.Errorf("epoch %d: layer1 forward: %w", epoch, err)
			}
			h := make([]kernel.Fixed, hidden)
			for i, v := range hPre {
				h[i] = layers.ReLU(v)
			}

			outPre := make([]kernel.Fixed, 1)
			if err := layer2.Forward(h, outPre, &faults); err != nil {
				return fmt.Errorf("epoch %d: layer2 forward: %w", epoch, err)
			}
			y := layers.Sigmoid(outPre[0])

			loss, err := backward.MSELoss([]kernel.Fixed{y}, []kernel.Fixed{sample.target}, &faults)
			if err != nil {
				return fmt.Errorf("epoch %d: mse loss: %w", epoch, err)
			}
			totalLoss += loss

			gradY := make([]kernel.FixedHP, 1)
			if err := backward.MSEGradient([]kernel.Fixed{y}, []kernel.Fixed{sample.target}, gradY, &faults); err != nil {
				return fmt.Errorf("epoch %d: mse gradient: %w", epoch, err)
			}
			gradOutPre := make([]kernel.FixedHP, 1)
			if err := backward.SigmoidBackward([]kernel.Fixed{y}, gradY, gradOutPre, &faults); err != nil {
				return fmt.Errorf("epoch %d: sigmoid backward: %w", epoch, err)
			}

			gradH := make([]kernel.FixedHP, hidden)
			gradW2 := make([]kernel.FixedHP, w2Count)
			gradB2 := make([]kernel.FixedHP, b2Count)
			if err := backward.LinearBackward(w2, h, gradOutPre, hidden, 1, gradH, gradW2, gradB2, &faults); err != nil {
				return fmt.Errorf("epoch %d: layer2 backward: %w", epoch, err)
			}

			gradHPre := make([]kernel.FixedHP, hidden)
			if err := backward.ReLUBackward(hPre, gradH, gradHPre, &faults); err != nil {
				return fmt.Errorf("epoch %d: relu backward: %w", epoch, err)
			}

			gradX := make([]kernel.FixedHP, 2)
			gradW1 := make([]kernel.FixedHP, w1Count)
			gradB1 := make([]kernel.FixedHP, b1Count)
			if err := backward.LinearBackward(w1, sample.x[:], gradHPre, 2, hidden, gradX, gradW1, gradB1, &faults); err != nil {
				return fmt.Errorf("epoch %d: layer1 backward: %w", epoch, err)
			}

			sampleGrad := append(append(append(append([]kernel.FixedHP{}, gradW1...), gradB1...), gradW2...), gradB2...)
			if gt, err := tensor.NewGrad(sampleGrad, len(sampleGrad)); err == nil {
				backward.GradientHealth(gt, nil)
			}

			for i, g := range gradW1 {
				gw1Sum[i] += int64(g)
			}
			for i, g := range gradB1 {
				gb1Sum[i] += int64(g)
			}
			for i, g := range gradW2 {
				gw2Sum[i] += int64(g)
			}
			for i, g := range gradB2 {
				gb2Sum[i] += int64(g)
			}
		}

		meanGrad := func(sum []int64) []kernel.Fixed {
			out := make([]kernel.Fixed, len(sum))
			for i, s := range sum {
				out[i] = backward.FromHP(kernel.FixedHP(s/n), &faults)
			}
			return out
		}

		if err := sgd.Step(w1, meanGrad(gw1Sum), &faults); err != nil {
			return fmt.Errorf("epoch %d: sgd w1: %w", epoch, err)
		}
		if err := sgd.Step(b1, meanGrad(gb1Sum), &faults); err != nil {
			return fmt.Errorf("epoch %d: sgd b1: %w", epoch, err)
		}
		if err := sgd.Step(w2, meanGrad(gw2Sum), &faults); err != nil {
			return fmt.Errorf("epoch %d: sgd w2: %w", epoch, err)
		}
		if err := sgd.Step(b2, meanGrad(gb2Sum), &faults); err != nil {
			return fmt.Errorf("epoch %d: sgd b2: %w", epoch, err)
		}

		perm, err := permute.Build(seed, uint64(epoch), uint32(len(dataset)))
		if err != nil {
			return fmt.Errorf("epoch %d: permute.Build: %w", epoch, err)
		}
		indices, err := perm.Batch(0, len(dataset), &faults)
		if err != nil {
			return fmt.Errorf("epoch %d: permute.Batch: %w", epoch, err)
		}

		record, err := ctx.Step(paramsTensor, indices, faults)
		if err != nil {
			return fmt.Errorf("epoch %d: merkle step: %w", epoch, err)
		}

		if xorPrintEvery > 0 && (epoch%xorPrintEvery == 0 || epoch == xorEpochs-1) {
			fmt.Printf("epoch %5d  loss_sum=%d  current_hash=%x\n", epoch, totalLoss, record.StepHash[:])
		}
	}

	fmt.Printf("final current_hash: %x\n", ctx.CurrentHash[:])
	return nil
}
