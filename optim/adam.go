package optim

import (
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

const opAdamStep = "optim.Adam.Step"

// DefaultAdamEpsilon is the smallest positive value Q16.16 can
// represent (2^-16 ~= 1.5e-5). Spec's "~1e-8" default is not
// representable in Q16.16 at all (it would round to exactly 0, making
// the epsilon term a no-op); this is the closest nonzero stand-in and
// is documented as an explicit open-question resolution.
const DefaultAdamEpsilon kernel.Fixed = 1

// Adam implements Adam with AdamW-style decoupled weight decay. M and V
// are the first and second moment estimates, one entry per parameter;
// Beta1Pow and Beta2Pow are the running powers beta1^t, beta2^t,
// updated multiplicatively each Step call rather than recomputed from
// t, per the determinism contract.
type Adam struct {
	LearningRate kernel.Fixed
	Beta1        kernel.Fixed
	Beta2        kernel.Fixed
	Epsilon      kernel.Fixed
	WeightDecay  kernel.Fixed

	M         []kernel.Fixed
	V         []kernel.Fixed
	Beta1Pow  kernel.Fixed
	Beta2Pow  kernel.Fixed
}

// NewAdam allocates an Adam optimiser for n parameters with the given
// hyperparameters. Beta1Pow and Beta2Pow start at beta1^1 and beta2^1,
// matching the first call to Step acting as t=1.
func NewAdam(learningRate, beta1, beta2, epsilon, weightDecay kernel.Fixed, n int) *Adam {
	return &Adam{
		LearningRate: learningRate,
		Beta1:        beta1,
		Beta2:        beta2,
		Epsilon:      epsilon,
		WeightDecay:  weightDecay,
		M:            make([]kernel.Fixed, n),
		V:            make([]kernel.Fixed, n),
		Beta1Pow:     beta1,
		Beta2Pow:     beta2,
	}
}

// Step applies one Adam update in place over theta given grad, then
// advances Beta1Pow and Beta2Pow by one more multiplicative factor of
// Beta1 and Beta2 respectively. theta and grad must have length equal
// to len(a.M).
func (a *Adam) Step(theta []kernel.Fixed, grad []kernel.Fixed, faults *kernel.Faults) error {
	if len(theta) != len(a.M) || len(grad) != len(a.M) {
		return kernel.Errorf(opAdamStep, kernel.Dimension, "theta/grad length must match optimiser size %d, got %d/%d", len(a.M), len(theta), len(grad))
	}

	oneMinusBeta1Pow := dvm.Sub(kernel.ONE, a.Beta1Pow, faults)
	oneMinusBeta2Pow := dvm.Sub(kernel.ONE, a.Beta2Pow, faults)

	for i := range theta {
		if a.WeightDecay != 0 {
			decay := dvm.Mul(a.LearningRate, dvm.Mul(a.WeightDecay, theta[i], faults), faults)
			theta[i] = dvm.Sub(theta[i], decay, faults)
		}

		oneMinusBeta1 := dvm.Sub(kernel.ONE, a.Beta1, faults)
		oneMinusBeta2 := dvm.Sub(kernel.ONE, a.Beta2, faults)

		a.M[i] = dvm.Add(dvm.Mul(a.Beta1, a.M[i], faults), dvm.Mul(oneMinusBeta1, grad[i], faults), faults)
		gradSq := dvm.Mul(grad[i], grad[i], faults)
		a.V[i] = dvm.Add(dvm.Mul(a.Beta2, a.V[i], faults), dvm.Mul(oneMinusBeta2, gradSq, faults), faults)

		mHat := dvm.DivQ(int32(a.M[i]), int32(oneMinusBeta1Pow), kernel.FracBits, faults)
		vHat := dvm.DivQ(int32(a.V[i]), int32(oneMinusBeta2Pow), kernel.FracBits, faults)

		denom := dvm.Add(dvm.Sqrt(vHat, faults), a.Epsilon, faults)
		ratio := dvm.DivQ(int32(mHat), int32(denom), kernel.FracBits, faults)
		update := dvm.Mul(a.LearningRate, ratio, faults)
		theta[i] = dvm.Sub(theta[i], update, faults)
	}

	a.Beta1Pow = dvm.Mul(a.Beta1Pow, a.Beta1, faults)
	a.Beta2Pow = dvm.Mul(a.Beta2Pow, a.Beta2, faults)
	return nil
}
