package backward

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestToHP_FromHP_RoundTripsExactValues(t *testing.T) {
	var faults kernel.Faults
	for _, v := range []kernel.Fixed{0, kernel.ONE, -kernel.ONE, kernel.HALF, -kernel.HALF, 1000} {
		hp := ToHP(v, &faults)
		back := FromHP(hp, &faults)
		if back != v {
			t.Fatalf("round trip for %d: got %d", v, back)
		}
	}
	if faults.HasFault() {
		t.Fatalf("unexpected fault %s", faults)
	}
}

func TestToHP_OneIsHPOne(t *testing.T) {
	var faults kernel.Faults
	if got := ToHP(kernel.ONE, &faults); got != kernel.HPOne {
		t.Fatalf("ToHP(ONE) = %d, want %d", got, kernel.HPOne)
	}
}

func TestFromHP_RoundsNearestEven(t *testing.T) {
	var faults kernel.Faults
	// Half of one Q16.16 LSB: construct a value whose low formatShift
	// bits sit exactly halfway.
	half := kernel.FixedHP(1) << (formatShift - 1)
	got := FromHP(half, &faults)
	if got != 0 {
		t.Fatalf("halfway-to-even rounding from 0: got %d, want 0", got)
	}
}

func TestClampHP_SaturatesAndFlags(t *testing.T) {
	var faults kernel.Faults
	got := clampHP(kernel.MaxFixed+1, &faults)
	if got != kernel.FixedHP(kernel.MaxFixed) {
		t.Fatalf("clampHP should saturate to MaxFixed")
	}
	if !faults.Has(kernel.FaultOverflow) {
		t.Fatalf("expected overflow fault")
	}
}

func TestMulHP_Identity(t *testing.T) {
	var faults kernel.Faults
	got := mulHP(kernel.HPOne, 12345, &faults)
	if got != 12345 {
		t.Fatalf("mulHP(HPOne, x) = %d, want 12345", got)
	}
}
