package backward

import (
	"github.com/williamofai/ctrain/accum"
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// LinearBackward computes a fully-connected layer's gradients from its
// Q8.24 output gradient: gradInput = W^T * gradOutput, gradWeights[j,i]
// = gradOutput[j]*input[i], gradBias[j] = gradOutput[j]. weights and
// input are the forward pass's Q16.16 values, converted up once so the
// whole computation runs in Q8.24.
func LinearBackward(
	weights []kernel.Fixed, // row-major [outputs, inputs]
	input []kernel.Fixed, // [inputs]
	gradOutput []kernel.FixedHP, // [outputs]
	inputs, outputs int,
	gradInput []kernel.FixedHP, // [inputs], written
	gradWeights []kernel.FixedHP, // row-major [outputs, inputs], written
	gradBias []kernel.FixedHP, // [outputs], written
	faults *kernel.Faults,
) error {
	const op = "backward.LinearBackward"
	if len(weights) != inputs*outputs || len(input) != inputs || len(gradOutput) != outputs {
		return kernel.Errorf(op, kernel.Dimension, "shape mismatch: weights=%d input=%d gradOutput=%d for inputs=%d outputs=%d", len(weights), len(input), len(gradOutput), inputs, outputs)
	}
	if len(gradInput) != inputs || len(gradWeights) != inputs*outputs || len(gradBias) != outputs {
		return kernel.Errorf(op, kernel.Dimension, "output buffer shape mismatch")
	}

	inputHP := make([]kernel.FixedHP, inputs)
	for i, v := range input {
		inputHP[i] = ToHP(v, faults)
	}
	weightsHP := make([]kernel.FixedHP, len(weights))
	for i, v := range weights {
		weightsHP[i] = ToHP(v, faults)
	}

	accs := make([]accum.Accumulator, inputs)

	for j := 0; j < outputs; j++ {
		gradBias[j] = gradOutput[j]
		base := j * inputs
		for i := 0; i < inputs; i++ {
			gradWeights[base+i] = mulHP(gradOutput[j], inputHP[i], faults)
			product := int64(weightsHP[base+i]) * int64(gradOutput[j])
			accs[i].Add(product, faults)
		}
	}
	for i := range gradInput {
		gradInput[i] = kernel.FixedHP(dvm.RoundShiftRNE(kernel.Acc64(accs[i].Finalize()), kernel.HPFracBits, faults))
	}
	return nil
}
