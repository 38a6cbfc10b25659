package backward

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestReLUBackward_GatesOnPreActivationSign(t *testing.T) {
	var faults kernel.Faults
	pre := []kernel.Fixed{-kernel.ONE, 0, kernel.ONE}
	gradOutput := []kernel.FixedHP{kernel.HPOne, kernel.HPOne, kernel.HPOne}
	gradInput := make([]kernel.FixedHP, 3)

	if err := ReLUBackward(pre, gradOutput, gradInput, &faults); err != nil {
		t.Fatal(err)
	}
	if gradInput[0] != 0 {
		t.Fatalf("negative pre-activation should gate gradient to 0")
	}
	if gradInput[1] != 0 {
		t.Fatalf("zero pre-activation should gate gradient to 0")
	}
	if gradInput[2] != kernel.HPOne {
		t.Fatalf("positive pre-activation should pass gradient through unchanged")
	}
}

func TestSigmoidBackward_MaxGradientAtZero(t *testing.T) {
	var faults kernel.Faults
	output := []kernel.Fixed{kernel.HALF} // sigmoid(0)
	gradOutput := []kernel.FixedHP{kernel.HPOne}
	gradInput := make([]kernel.FixedHP, 1)

	if err := SigmoidBackward(output, gradOutput, gradInput, &faults); err != nil {
		t.Fatal(err)
	}
	want := ToHP(kernel.ONE/4, &faults)
	if gradInput[0] != want {
		t.Fatalf("gradInput = %d, want ~%d", gradInput[0], want)
	}
}

func TestTanhBackward_MaxGradientAtZero(t *testing.T) {
	var faults kernel.Faults
	output := []kernel.Fixed{0} // tanh(0)
	gradOutput := []kernel.FixedHP{kernel.HPOne}
	gradInput := make([]kernel.FixedHP, 1)

	if err := TanhBackward(output, gradOutput, gradInput, &faults); err != nil {
		t.Fatal(err)
	}
	if gradInput[0] != kernel.HPOne {
		t.Fatalf("tanh'(0)*1 should be HPOne, got %d", gradInput[0])
	}
}
