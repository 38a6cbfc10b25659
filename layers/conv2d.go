package layers

import (
	"github.com/williamofai/ctrain/accum"
	"github.com/williamofai/ctrain/dvm"
	"github.com/williamofai/ctrain/kernel"
)

// Conv2D holds a single convolutional layer's weights and bias. Kernel
// is stored as [outChannels][inChannels][kernelH][kernelW] flattened
// row-major; Bias has one entry per output channel.
type Conv2D struct {
	Kernel      []kernel.Fixed
	Bias        []kernel.Fixed
	InChannels  int
	OutChannels int
	KernelH     int
	KernelW     int
	PadH        int
	PadW        int
}

func (c *Conv2D) kernelAt(oc, ic, kh, kw int) kernel.Fixed {
	idx := ((oc*c.InChannels+ic)*c.KernelH+kh)*c.KernelW + kw
	return c.Kernel[idx]
}

// Forward runs the explicit quadruple-nested convolution (out-channel x
// output-row x output-col x input-contribution) over a single
// [InChannels, H, W] input, zero-padding at the boundaries, writing an
// [OutChannels, outH, outW] result into out. Each output cell
// accumulates its products in a fresh compensated accumulator before
// rounding back to Q16.16 and adding the bias.
func (c *Conv2D) Forward(input []kernel.Fixed, h, w int, out []kernel.Fixed, faults *kernel.Faults) {
	outH := h + 2*c.PadH - c.KernelH + 1
	outW := w + 2*c.PadW - c.KernelW + 1

	for oc := 0; oc < c.OutChannels; oc++ {
		for oy := 0; oy < outH; oy++ {
			for ox := 0; ox < outW; ox++ {
				var acc accum.Accumulator
				for ic := 0; ic < c.InChannels; ic++ {
					for kh := 0; kh < c.KernelH; kh++ {
						iy := oy + kh - c.PadH
						if iy < 0 || iy >= h {
							continue
						}
						for kw := 0; kw < c.KernelW; kw++ {
							ix := ox + kw - c.PadW
							if ix < 0 || ix >= w {
								continue
							}
							inVal := input[(ic*h+iy)*w+ix]
							kVal := c.kernelAt(oc, ic, kh, kw)
							acc.Add(int64(inVal)*int64(kVal), faults)
						}
					}
				}
				rounded := dvm.RoundShiftRNE(kernel.Acc64(acc.Finalize()), kernel.FracBits, faults)
				outIdx := (oc*outH+oy)*outW + ox
				out[outIdx] = dvm.Add(rounded, c.Bias[oc], faults)
			}
		}
	}
}

// OutputShape returns the [outH, outW] this layer produces for an
// [h, w] input.
func (c *Conv2D) OutputShape(h, w int) (int, int) {
	return h + 2*c.PadH - c.KernelH + 1, w + 2*c.PadW - c.KernelW + 1
}
