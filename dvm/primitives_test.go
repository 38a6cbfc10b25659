package dvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamofai/ctrain/kernel"
)

func TestAdd_ReferenceVector(t *testing.T) {
	var f kernel.Faults
	got := Add(kernel.ONE, kernel.HALF, &f)
	assert.Equal(t, kernel.Fixed(0x00018000), got)
	assert.False(t, f.HasFault(), "unexpected fault %s", f)
}

func TestAdd_SaturatesAndFlagsOverflow(t *testing.T) {
	var f kernel.Faults
	max := kernel.Fixed(kernel.MaxFixed)
	got := Add(max, kernel.ONE, &f)
	assert.Equal(t, kernel.Fixed(kernel.MaxFixed), got)
	assert.True(t, f.Has(kernel.FaultOverflow), "expected overflow flag, got %s", f)
}

func TestSub_SaturatesAndFlagsUnderflow(t *testing.T) {
	var f kernel.Faults
	min := kernel.Fixed(kernel.MinFixed)
	got := Sub(min, kernel.ONE, &f)
	assert.Equal(t, kernel.Fixed(kernel.MinFixed), got)
	assert.True(t, f.Has(kernel.FaultUnderflow), "expected underflow flag, got %s", f)
}

func TestMul_ReferenceVector(t *testing.T) {
	var f kernel.Faults
	threeHalf := 3 * kernel.ONE
	got := Mul(threeHalf, kernel.HALF, &f)
	assert.Equal(t, kernel.Fixed(0x00018000), got)
	assert.False(t, f.HasFault(), "unexpected fault %s", f)
}

// TestChain_ReferenceVector checks the mandatory chain vector:
// ((3.0 * 0.5) + 1.0) * 2.0 == 0x00050000.
func TestChain_ReferenceVector(t *testing.T) {
	var f kernel.Faults
	step1 := Mul(3*kernel.ONE, kernel.HALF, &f)
	step2 := Add(step1, kernel.ONE, &f)
	step3 := Mul(step2, 2*kernel.ONE, &f)
	require.Equal(t, kernel.Fixed(0x00050000), step3)
	assert.False(t, f.HasFault(), "unexpected fault %s", f)
}

func TestDivInt32_DivByZero(t *testing.T) {
	var f kernel.Faults
	got := DivInt32(10, 0, &f)
	assert.Equal(t, int32(0), got)
	assert.True(t, f.Has(kernel.FaultDivZero), "expected div_zero flag, got %s", f)
}

func TestDivInt32_TruncatesTowardZero(t *testing.T) {
	var f kernel.Faults
	got := DivInt32(-7, 2, &f)
	assert.Equal(t, int32(-3), got)
	assert.False(t, f.HasFault(), "unexpected fault %s", f)
}

func TestDivQ_DomainOnLargeFracBits(t *testing.T) {
	var f kernel.Faults
	got := DivQ(1, 1, 63, &f)
	assert.Equal(t, kernel.Fixed(0), got)
	assert.True(t, f.Has(kernel.FaultDomain), "expected domain flag, got %s", f)
}

func TestDivQ_Basic(t *testing.T) {
	var f kernel.Faults
	// 1/4 in Q16.16 == 0.25 * 65536 == 16384
	got := DivQ(1, 4, kernel.FracBits, &f)
	assert.Equal(t, kernel.Fixed(16384), got)
	assert.False(t, f.HasFault(), "unexpected fault %s", f)
}

func TestAbs64Sat_MinInt64Saturates(t *testing.T) {
	var f kernel.Faults
	got := Abs64Sat(minInt64, &f)
	assert.Equal(t, int64(maxInt64), got)
	assert.True(t, f.Has(kernel.FaultOverflow), "expected overflow flag, got %s", f)
}

func TestAbs64Sat_Normal(t *testing.T) {
	var f kernel.Faults
	got := Abs64Sat(-42, &f)
	assert.EqualValues(t, 42, got)
	assert.False(t, f.HasFault(), "unexpected fault %s", f)
}

// TestRoundShiftRNE_MandatoryTable checks the required
// round-to-nearest-even table, each case encoded as a Q1.1 value
// (shift=1) so frac=.5 ties land exactly halfway.
func TestRoundShiftRNE_MandatoryTable(t *testing.T) {
	cases := []struct {
		x    kernel.Acc64
		want kernel.Fixed
	}{
		{3, 2},   // 1.5 -> 2
		{5, 2},   // 2.5 -> 2
		{7, 4},   // 3.5 -> 4
		{9, 4},   // 4.5 -> 4
		{11, 6},  // 5.5 -> 6
		{-3, -2}, // -1.5 -> -2
		{-5, -2}, // -2.5 -> -2
		{-7, -4}, // -3.5 -> -4
	}
	for _, c := range cases {
		var f kernel.Faults
		got := RoundShiftRNE(c.x, 1, &f)
		assert.Equalf(t, c.want, got, "RoundShiftRNE(%d, 1)", c.x)
		assert.Falsef(t, f.HasFault(), "unexpected fault %s for x=%d", f, c.x)
	}
}

func TestRoundShiftRNE_ShiftZeroIsClamp(t *testing.T) {
	var f kernel.Faults
	got := RoundShiftRNE(42, 0, &f)
	assert.Equal(t, kernel.Fixed(42), got)
}

func TestRoundShiftRNE_ShiftOverflowSetsDomain(t *testing.T) {
	var f kernel.Faults
	got := RoundShiftRNE(1, 63, &f)
	assert.Equal(t, kernel.Fixed(0), got)
	assert.True(t, f.Has(kernel.FaultDomain), "expected domain flag, got %s", f)
}

func TestClamp32_Bounds(t *testing.T) {
	var f kernel.Faults
	got := Clamp32(kernel.MaxFixed+1, &f)
	assert.Equal(t, kernel.Fixed(kernel.MaxFixed), got)
	assert.True(t, f.Has(kernel.FaultOverflow), "expected overflow flag, got %s", f)

	f.Reset()
	got = Clamp32(kernel.MinFixed-1, &f)
	assert.Equal(t, kernel.Fixed(kernel.MinFixed), got)
	assert.True(t, f.Has(kernel.FaultUnderflow), "expected underflow flag, got %s", f)
}
