package backward

import (
	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/layers"
)

// ReLUBackward gates each upstream gradient by the sign of its
// corresponding *pre*-activation value, not the forward output: a
// pre-activation of exactly zero gates the gradient to zero, matching
// layers.ReLUDerivative's strict-positivity convention.
func ReLUBackward(preActivation []kernel.Fixed, gradOutput []kernel.FixedHP, gradInput []kernel.FixedHP, faults *kernel.Faults) error {
	const op = "backward.ReLUBackward"
	if len(preActivation) != len(gradOutput) || len(preActivation) != len(gradInput) {
		return kernel.Errorf(op, kernel.Dimension, "preActivation (%d), gradOutput (%d), and gradInput (%d) must have equal length", len(preActivation), len(gradOutput), len(gradInput))
	}
	for i, x := range preActivation {
		if x > 0 {
			gradInput[i] = gradOutput[i]
		} else {
			gradInput[i] = 0
		}
	}
	return nil
}

// SigmoidBackward scales each upstream gradient by sigma*(1-sigma) at
// the forward pass's output, converting the Q16.16 derivative up to
// Q8.24 before multiplying.
func SigmoidBackward(output []kernel.Fixed, gradOutput []kernel.FixedHP, gradInput []kernel.FixedHP, faults *kernel.Faults) error {
	const op = "backward.SigmoidBackward"
	if len(output) != len(gradOutput) || len(output) != len(gradInput) {
		return kernel.Errorf(op, kernel.Dimension, "output (%d), gradOutput (%d), and gradInput (%d) must have equal length", len(output), len(gradOutput), len(gradInput))
	}
	for i, sigma := range output {
		deriv := layers.SigmoidDerivative(sigma, faults)
		gradInput[i] = mulHP(gradOutput[i], ToHP(deriv, faults), faults)
	}
	return nil
}

// TanhBackward scales each upstream gradient by 1-tanh^2 at the forward
// pass's output.
func TanhBackward(output []kernel.Fixed, gradOutput []kernel.FixedHP, gradInput []kernel.FixedHP, faults *kernel.Faults) error {
	const op = "backward.TanhBackward"
	if len(output) != len(gradOutput) || len(output) != len(gradInput) {
		return kernel.Errorf(op, kernel.Dimension, "output (%d), gradOutput (%d), and gradInput (%d) must have equal length", len(output), len(gradOutput), len(gradInput))
	}
	for i, t := range output {
		deriv := layers.TanhDerivative(t, faults)
		gradInput[i] = mulHP(gradOutput[i], ToHP(deriv, faults), faults)
	}
	return nil
}
