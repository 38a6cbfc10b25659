package backward

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestMSELoss_ZeroIffEqual(t *testing.T) {
	var faults kernel.Faults
	predicted := []kernel.Fixed{kernel.ONE, 2 * kernel.ONE, -kernel.ONE}
	target := []kernel.Fixed{kernel.ONE, 2 * kernel.ONE, -kernel.ONE}
	loss, err := MSELoss(predicted, target, &faults)
	if err != nil {
		t.Fatal(err)
	}
	if loss != 0 {
		t.Fatalf("MSELoss of identical vectors should be 0, got %d", loss)
	}

	target[1] = 3 * kernel.ONE
	loss, err = MSELoss(predicted, target, &faults)
	if err != nil {
		t.Fatal(err)
	}
	if loss == 0 {
		t.Fatalf("MSELoss of differing vectors should be nonzero")
	}
}

func TestMSELoss_RejectsLengthMismatch(t *testing.T) {
	var faults kernel.Faults
	_, err := MSELoss([]kernel.Fixed{1}, []kernel.Fixed{1, 2}, &faults)
	if err == nil {
		t.Fatalf("expected dimension error")
	}
}

func TestMSEGradient_ZeroWhenEqual(t *testing.T) {
	var faults kernel.Faults
	predicted := []kernel.Fixed{kernel.ONE, -kernel.ONE}
	target := []kernel.Fixed{kernel.ONE, -kernel.ONE}
	grad := make([]kernel.FixedHP, 2)
	if err := MSEGradient(predicted, target, grad, &faults); err != nil {
		t.Fatal(err)
	}
	for i, g := range grad {
		if g != 0 {
			t.Fatalf("grad[%d] = %d, want 0", i, g)
		}
	}
}

func TestMSEGradient_Sign(t *testing.T) {
	var faults kernel.Faults
	predicted := []kernel.Fixed{2 * kernel.ONE}
	target := []kernel.Fixed{kernel.ONE}
	grad := make([]kernel.FixedHP, 1)
	if err := MSEGradient(predicted, target, grad, &faults); err != nil {
		t.Fatal(err)
	}
	if grad[0] <= 0 {
		t.Fatalf("grad should be positive when predicted > target, got %d", grad[0])
	}
}

func TestMSEGradient_RejectsShapeMismatch(t *testing.T) {
	var faults kernel.Faults
	grad := make([]kernel.FixedHP, 1)
	err := MSEGradient([]kernel.Fixed{1, 2}, []kernel.Fixed{1, 2}, grad, &faults)
	if err == nil {
		t.Fatalf("expected dimension error for mismatched grad length")
	}
}
