package backward

import (
	"github.com/williamofai/ctrain/internal/audit"
	"github.com/williamofai/ctrain/kernel"
	"github.com/williamofai/ctrain/tensor"
)

// vanishingThreshold is the zero-gradient fraction (Q16.16, 5%) above
// which GradientHealth reports "vanishing". It is informational only:
// the caller does not stop training on this report, and no fault flag
// is set by crossing it (kernel.FaultGradFloor is left untouched).
const vanishingThreshold kernel.Fixed = kernel.ONE / 20

// Health is the gradient-health report for one backward pass: how many
// of a gradient tensor's elements were exactly zero, and that count as
// a Q16.16 fraction of the total.
type Health struct {
	Total    int
	Zero     int
	Fraction kernel.Fixed
}

// GradientHealth reports the fraction of grad's elements that are
// exactly zero, and logs a "vanishing" warning via logger when that
// fraction exceeds vanishingThreshold. A nil logger is legal and simply
// means the report is not logged; the returned Health is unaffected
// either way, and GradientHealth never halts training or returns an
// error.
func GradientHealth(grad *tensor.GradTensor, logger *audit.Logger) Health {
	if grad == nil || len(grad.Buffer) == 0 {
		return Health{}
	}

	zero := 0
	for _, g := range grad.Buffer {
		if g == 0 {
			zero++
		}
	}

	total := len(grad.Buffer)
	fraction := kernel.Fixed((int64(zero) * int64(kernel.ONE)) / int64(total))
	health := Health{Total: total, Zero: zero, Fraction: fraction}

	if fraction > vanishingThreshold {
		logger.Warn("vanishing gradient", "zero_fraction_q16", int(fraction), "zero", zero, "total", total)
	}
	return health
}
