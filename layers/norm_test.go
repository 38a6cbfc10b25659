package layers

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestNorm_Forward_ZeroMeanUnitVariance(t *testing.T) {
	n := NewNorm(1, kernel.ONE/1000)
	values := []kernel.Fixed{0, 2 * kernel.ONE, 4 * kernel.ONE, 6 * kernel.ONE}

	var faults kernel.Faults
	n.Forward(values, 0, &faults)
	if faults.HasFault() {
		t.Fatalf("unexpected fault %s", faults)
	}

	mu := mean(values, &faults)
	if mu < -kernel.ONE/100 || mu > kernel.ONE/100 {
		t.Fatalf("normalized mean should be ~0, got %d", mu)
	}
	variance := varianceAround(values, mu, &faults)
	if variance < kernel.ONE-kernel.ONE/100 || variance > kernel.ONE+kernel.ONE/100 {
		t.Fatalf("normalized variance should be ~1, got %d", variance)
	}
}

func TestNorm_Forward_UpdatesRunningStats(t *testing.T) {
	n := NewNorm(1, kernel.ONE/1000)
	values := []kernel.Fixed{kernel.ONE, 3 * kernel.ONE}
	var faults kernel.Faults
	n.Forward(values, 0, &faults)

	if n.RunningMean[0] == 0 {
		t.Fatalf("running mean should have moved away from its zero initial state")
	}
}

func TestMean_Simple(t *testing.T) {
	var faults kernel.Faults
	values := []kernel.Fixed{2 * kernel.ONE, 4 * kernel.ONE}
	got := mean(values, &faults)
	want := 3 * kernel.ONE
	if got != want {
		t.Fatalf("mean = %d, want %d", got, want)
	}
}

func TestVarianceAround_ConstantValuesIsZero(t *testing.T) {
	var faults kernel.Faults
	values := []kernel.Fixed{5 * kernel.ONE, 5 * kernel.ONE, 5 * kernel.ONE}
	got := varianceAround(values, 5*kernel.ONE, &faults)
	if got != 0 {
		t.Fatalf("variance of constant values should be 0, got %d", got)
	}
}
