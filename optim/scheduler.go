package optim

import (
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// Scheduler is the closed set of learning-rate schedules. Each variant
// is a tagged struct with an explicit Value method; there is no shared
// interface so that every call site names its variant directly, per the
// audit requirement that dispatch stay visible.

// Constant always returns the same learning rate.
type Constant struct {
	LR kernel.Fixed
}

// Value returns the constant rate, ignoring step and epoch.
func (c Constant) Value(step uint64, epoch uint32) kernel.Fixed {
	return c.LR
}

// Step decays the learning rate by Gamma every StepSizeEpochs epoch
// boundaries: lr = InitialLR * Gamma^floor(epoch / StepSizeEpochs).
type Step struct {
	InitialLR      kernel.Fixed
	Gamma          kernel.Fixed
	StepSizeEpochs uint32
}

// Value computes the decayed rate for the given epoch. step is ignored:
// decay happens only on epoch boundaries.
func (s Step) Value(step uint64, epoch uint32) kernel.Fixed {
	if s.StepSizeEpochs == 0 {
		return s.InitialLR
	}
	drops := epoch / s.StepSizeEpochs
	lr := s.InitialLR
	var faults kernel.Faults
	for i := uint32(0); i < drops; i++ {
		lr = dvm.Mul(lr, s.Gamma, &faults)
	}
	return lr
}

// Warmup ramps linearly from 0 to TargetLR over WarmupSteps steps, then
// holds at TargetLR: lr = target*step/warmup until step >= warmup.
type Warmup struct {
	TargetLR    kernel.Fixed
	WarmupSteps uint64
}

// Value computes the warmup rate for the given step. epoch is ignored.
func (w Warmup) Value(step uint64, epoch uint32) kernel.Fixed {
	if w.WarmupSteps == 0 || step >= w.WarmupSteps {
		return w.TargetLR
	}
	var faults kernel.Faults
	scaled := kernel.Acc64(w.TargetLR) * kernel.Acc64(step) / kernel.Acc64(w.WarmupSteps)
	return dvm.Clamp32(scaled, &faults)
}

// Cosine anneals from InitialLR down to MinLR over TotalSteps, following
// lr = min + 0.5*(initial-min)*(1+cos(pi*t/T)), with cos looked up in
// the 257-entry cosineLUT over [0, pi] via linear interpolation.
type Cosine struct {
	InitialLR  kernel.Fixed
	MinLR      kernel.Fixed
	TotalSteps uint64
}

// Value computes the annealed rate for the given step. epoch is
// ignored. step is clamped to [0, TotalSteps].
func (c Cosine) Value(step uint64, epoch uint32) kernel.Fixed {
	if c.TotalSteps == 0 {
		return c.InitialLR
	}
	t := step
	if t > c.TotalSteps {
		t = c.TotalSteps
	}

	var faults kernel.Faults
	// fraction = t/T in Q16.16, in [0, ONE].
	fraction := dvm.DivQ(int32(t), int32(c.TotalSteps), kernel.FracBits, &faults)
	cosVal := cosineLUTLookup(fraction)

	span := dvm.Sub(c.InitialLR, c.MinLR, &faults)
	onePlusCos := dvm.Add(kernel.ONE, cosVal, &faults)
	half := dvm.Mul(span, onePlusCos, &faults)
	half = dvm.Mul(half, kernel.HALF, &faults)
	return dvm.Add(c.MinLR, half, &faults)
}

// cosineLUTLookup maps fraction (Q16.16 in [0, ONE], representing t/T)
// onto the 257-entry cosineLUT spanning [0, pi] with linear
// interpolation between adjacent table entries.
func cosineLUTLookup(fraction kernel.Fixed) kernel.Fixed {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > kernel.ONE {
		fraction = kernel.ONE
	}

	// scaled spans [0, 256<<16]; index and frac split it into the
	// table entry and the sub-interval position between entries.
	scaled := int64(fraction) * 256
	index := scaled >> kernel.FracBits
	if index >= 256 {
		return cosineLUT[256]
	}
	frac := (scaled >> (kernel.FracBits - 8)) & 0xFF

	y0 := int64(cosineLUT[index])
	y1 := int64(cosineLUT[index+1])
	return kernel.Fixed(y0 + ((y1-y0)*frac)>>8)
}
