package backward

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestLinearBackward_GradBias(t *testing.T) {
	var faults kernel.Faults
	weights := []kernel.Fixed{kernel.ONE, 0, 0, kernel.ONE} // 2x2 identity
	input := []kernel.Fixed{kernel.ONE, 2 * kernel.ONE}
	gradOutput := []kernel.FixedHP{kernel.HPOne, -kernel.HPOne}

	gradInput := make([]kernel.FixedHP, 2)
	gradWeights := make([]kernel.FixedHP, 4)
	gradBias := make([]kernel.FixedHP, 2)

	if err := LinearBackward(weights, input, gradOutput, 2, 2, gradInput, gradWeights, gradBias, &faults); err != nil {
		t.Fatal(err)
	}
	if gradBias[0] != gradOutput[0] || gradBias[1] != gradOutput[1] {
		t.Fatalf("gradBias should equal gradOutput directly, got %v", gradBias)
	}
	// Identity weights: gradInput should equal gradOutput.
	if gradInput[0] != gradOutput[0] || gradInput[1] != gradOutput[1] {
		t.Fatalf("gradInput with identity weights should equal gradOutput, got %v", gradInput)
	}
}

func TestLinearBackward_RejectsShapeMismatch(t *testing.T) {
	var faults kernel.Faults
	weights := make([]kernel.Fixed, 4)
	input := make([]kernel.Fixed, 2)
	gradOutput := make([]kernel.FixedHP, 3) // wrong: should be 2
	gradInput := make([]kernel.FixedHP, 2)
	gradWeights := make([]kernel.FixedHP, 4)
	gradBias := make([]kernel.FixedHP, 2)

	err := LinearBackward(weights, input, gradOutput, 2, 2, gradInput, gradWeights, gradBias, &faults)
	if err == nil {
		t.Fatalf("expected dimension error")
	}
}
