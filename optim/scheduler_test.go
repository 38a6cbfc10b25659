package optim

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestConstant_AlwaysSameValue(t *testing.T) {
	c := Constant{LR: float64ToFixed(0.1)}
	if c.Value(0, 0) != c.Value(1000, 50) {
		t.Fatalf("Constant should ignore step/epoch")
	}
}

func TestStep_DecaysOnEpochBoundaries(t *testing.T) {
	s := Step{InitialLR: kernel.ONE, Gamma: float64ToFixed(0.5), StepSizeEpochs: 10}
	if got := s.Value(0, 0); got != kernel.ONE {
		t.Fatalf("epoch 0: lr = %d, want %d", got, kernel.ONE)
	}
	got := s.Value(0, 10)
	want := float64ToFixed(0.5)
	if got != want {
		t.Fatalf("epoch 10: lr = %d, want %d", got, want)
	}
	got = s.Value(0, 25)
	want = float64ToFixed(0.25)
	if got != want {
		t.Fatalf("epoch 25: lr = %d, want %d", got, want)
	}
}

func TestWarmup_RampsLinearlyThenHolds(t *testing.T) {
	w := Warmup{TargetLR: kernel.ONE, WarmupSteps: 100}
	if got := w.Value(0, 0); got != 0 {
		t.Fatalf("step 0: lr = %d, want 0", got)
	}
	if got := w.Value(50, 0); got != kernel.ONE/2 {
		t.Fatalf("step 50: lr = %d, want %d", got, kernel.ONE/2)
	}
	if got := w.Value(100, 0); got != kernel.ONE {
		t.Fatalf("step 100 (>= warmup): lr = %d, want %d", got, kernel.ONE)
	}
	if got := w.Value(500, 0); got != kernel.ONE {
		t.Fatalf("step 500 (past warmup): lr = %d, want %d", got, kernel.ONE)
	}
}

func TestCosine_EndpointsMatchInitialAndMin(t *testing.T) {
	c := Cosine{InitialLR: kernel.ONE, MinLR: 0, TotalSteps: 1000}
	start := c.Value(0, 0)
	if start != kernel.ONE {
		t.Fatalf("t=0: lr = %d, want %d (cos(0)=1)", start, kernel.ONE)
	}
	end := c.Value(1000, 0)
	if end != 0 {
		t.Fatalf("t=T: lr = %d, want 0 (cos(pi)=-1)", end)
	}
}

func TestCosine_MidpointIsHalfway(t *testing.T) {
	c := Cosine{InitialLR: kernel.ONE, MinLR: 0, TotalSteps: 1000}
	mid := c.Value(500, 0)
	// cos(pi/2) = 0, so lr = 0 + 0.5*(1-0)*(1+0) = 0.5
	diff := mid - kernel.ONE/2
	if diff < -4 || diff > 4 {
		t.Fatalf("t=T/2: lr = %d, want ~%d (within LUT interpolation error)", mid, kernel.ONE/2)
	}
}

func TestCosine_ClampsBeyondTotalSteps(t *testing.T) {
	c := Cosine{InitialLR: kernel.ONE, MinLR: 0, TotalSteps: 1000}
	if got := c.Value(5000, 0); got != c.Value(1000, 0) {
		t.Fatalf("step beyond TotalSteps should clamp: got %d, want %d", got, c.Value(1000, 0))
	}
}
