package layers

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestSigmoid_ZeroIsHalf(t *testing.T) {
	got := Sigmoid(0)
	if got != kernel.HALF {
		t.Fatalf("Sigmoid(0) = %d, want %d", got, kernel.HALF)
	}
}

func TestSigmoid_SaturatesOutsideDomain(t *testing.T) {
	if got := Sigmoid(-100 * kernel.ONE); got != sigmoidLUT[0] {
		t.Fatalf("Sigmoid far below -8 should saturate to the LUT's first entry, got %d", got)
	}
	if got := Sigmoid(100 * kernel.ONE); got != sigmoidLUT[256] {
		t.Fatalf("Sigmoid far above 8 should saturate to the LUT's last entry, got %d", got)
	}
}

func TestSigmoid_TailsMatchSaturationConvention(t *testing.T) {
	if got := Sigmoid(-8 * kernel.ONE); got != 0 {
		t.Fatalf("Sigmoid(-8) should saturate to 0, got %d", got)
	}
	if got := Sigmoid(8 * kernel.ONE); got != kernel.ONE {
		t.Fatalf("Sigmoid(8) should saturate to ONE, got %d", got)
	}
}

func TestSigmoid_Monotonic(t *testing.T) {
	prev := Sigmoid(-8 * kernel.ONE)
	for x := -7 * kernel.ONE; x <= 8*kernel.ONE; x += kernel.ONE / 4 {
		cur := Sigmoid(x)
		if cur < prev {
			t.Fatalf("Sigmoid not monotonic at x=%d: %d < %d", x, cur, prev)
		}
		prev = cur
	}
}

func TestTanh_ZeroIsZero(t *testing.T) {
	if got := Tanh(0); got != 0 {
		t.Fatalf("Tanh(0) = %d, want 0", got)
	}
}

func TestTanh_SaturatesOutsideDomain(t *testing.T) {
	if got := Tanh(-100 * kernel.ONE); got != tanhLUT[0] {
		t.Fatalf("Tanh far below -8 should saturate, got %d", got)
	}
	if got := Tanh(100 * kernel.ONE); got != tanhLUT[256] {
		t.Fatalf("Tanh far above 8 should saturate, got %d", got)
	}
}

func TestReLU(t *testing.T) {
	if got := ReLU(-5 * kernel.ONE); got != 0 {
		t.Fatalf("ReLU(-5) = %d, want 0", got)
	}
	if got := ReLU(5 * kernel.ONE); got != 5*kernel.ONE {
		t.Fatalf("ReLU(5) = %d, want %d", got, 5*kernel.ONE)
	}
	if got := ReLU(0); got != 0 {
		t.Fatalf("ReLU(0) = %d, want 0", got)
	}
}

func TestReLUDerivative(t *testing.T) {
	if ReLUDerivative(kernel.ONE) != kernel.ONE {
		t.Fatalf("ReLUDerivative(positive) should be ONE")
	}
	if ReLUDerivative(0) != 0 {
		t.Fatalf("ReLUDerivative(0) should be 0")
	}
	if ReLUDerivative(-kernel.ONE) != 0 {
		t.Fatalf("ReLUDerivative(negative) should be 0")
	}
}

func TestSigmoidDerivative_MaxAtZero(t *testing.T) {
	var faults kernel.Faults
	sigma := Sigmoid(0)
	d := SigmoidDerivative(sigma, &faults)
	if d != kernel.ONE/4 {
		t.Fatalf("sigmoid'(0) should be 0.25 in Q16.16 (%d), got %d", kernel.ONE/4, d)
	}
	if faults.HasFault() {
		t.Fatalf("unexpected fault %s", faults)
	}
}

func TestTanhDerivative_MaxAtZero(t *testing.T) {
	var faults kernel.Faults
	d := TanhDerivative(Tanh(0), &faults)
	if d != kernel.ONE {
		t.Fatalf("tanh'(0) should be ONE, got %d", d)
	}
}
