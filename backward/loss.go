package backward

import (
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// MSEGradient computes the gradient of mean-squared-error loss with
// respect to predicted, writing grad[i] = (2/N)*(predicted[i]-target[i])
// in Q8.24. predicted and target are Q16.16 forward-pass values,
// converted up before the subtraction so the whole computation runs in
// the backward pass's native format.
func MSEGradient(predicted, target []kernel.Fixed, grad []kernel.FixedHP, faults *kernel.Faults) error {
	const op = "backward.MSEGradient"
	if len(predicted) != len(target) || len(predicted) != len(grad) {
		return kernel.Errorf(op, kernel.Dimension, "predicted (%d), target (%d), and grad (%d) must have equal length", len(predicted), len(target), len(grad))
	}
	n := len(predicted)
	if n == 0 {
		return nil
	}

	twoOverN := kernel.FixedHP((2 * int64(kernel.HPOne)) / int64(n))
	for i := 0; i < n; i++ {
		diff := subHP(ToHP(predicted[i], faults), ToHP(target[i], faults), faults)
		grad[i] = mulHP(twoOverN, diff, faults)
	}
	return nil
}

// MSELoss computes mean-squared-error in Q16.16: (1/N) * sum((p-t)^2).
// Used by tests and the demo to confirm MSELoss == 0 iff predicted ==
// target for every element.
func MSELoss(predicted, target []kernel.Fixed, faults *kernel.Faults) (kernel.Fixed, error) {
	const op = "backward.MSELoss"
	if len(predicted) != len(target) {
		return 0, kernel.Errorf(op, kernel.Dimension, "predicted (%d) and target (%d) must have equal length", len(predicted), len(target))
	}
	if len(predicted) == 0 {
		return 0, nil
	}

	var sumSq int64
	for i := range predicted {
		d := int64(predicted[i]) - int64(target[i])
		sumSq += d * d
	}
	meanSq := sumSq / int64(len(predicted))
	return dvm.RoundShiftRNE(kernel.Acc64(meanSq), kernel.FracBits, faults), nil
}
