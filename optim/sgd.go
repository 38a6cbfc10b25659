// Package optim implements the update rules (SGD, SGD-momentum, Adam)
// and learning-rate schedulers (constant, step, warmup, cosine) that
// drive a training loop, plus the YAML configuration surface that
// selects and parameterizes them.
package optim

import (
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

const opSGDStep = "optim.SGD.Step"

// SGD implements plain (optionally weight-decayed) gradient descent:
// theta -= lr * (g + weightDecay*theta).
type SGD struct {
	LearningRate kernel.Fixed
	WeightDecay  kernel.Fixed
}

// Step applies one SGD update in place over theta, given the
// already-converted-to-Q16.16 gradient grad. Both slices must have
// equal length.
func (s *SGD) Step(theta []kernel.Fixed, grad []kernel.Fixed, faults *kernel.Faults) error {
	if len(theta) != len(grad) {
		return kernel.Errorf(opSGDStep, kernel.Dimension, "theta has %d elements, grad has %d", len(theta), len(grad))
	}
	for i := range theta {
		decayed := grad[i]
		if s.WeightDecay != 0 {
			decayed = dvm.Add(grad[i], dvm.Mul(s.WeightDecay, theta[i], faults), faults)
		}
		update := dvm.Mul(s.LearningRate, decayed, faults)
		theta[i] = dvm.Sub(theta[i], update, faults)
	}
	return nil
}

const opSGDMomentumStep = "optim.SGDMomentum.Step"

// SGDMomentum implements v <- beta*v + g; theta <- theta - lr*(v +
// weightDecay*theta). Velocity is caller-owned so that it persists
// across steps and can be checkpointed alongside theta.
type SGDMomentum struct {
	LearningRate kernel.Fixed
	Momentum     kernel.Fixed
	WeightDecay  kernel.Fixed
}

// Step applies one momentum update in place over theta and velocity.
// All three slices (theta, grad, velocity) must have equal length.
func (s *SGDMomentum) Step(theta, grad, velocity []kernel.Fixed, faults *kernel.Faults) error {
	if len(theta) != len(grad) || len(theta) != len(velocity) {
		return kernel.Errorf(opSGDMomentumStep, kernel.Dimension, "theta/grad/velocity length mismatch: %d/%d/%d", len(theta), len(grad), len(velocity))
	}
	for i := range theta {
		velocity[i] = dvm.Add(dvm.Mul(s.Momentum, velocity[i], faults), grad[i], faults)
		decayed := velocity[i]
		if s.WeightDecay != 0 {
			decayed = dvm.Add(velocity[i], dvm.Mul(s.WeightDecay, theta[i], faults), faults)
		}
		update := dvm.Mul(s.LearningRate, decayed, faults)
		theta[i] = dvm.Sub(theta[i], update, faults)
	}
	return nil
}
