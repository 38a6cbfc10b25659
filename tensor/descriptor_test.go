package tensor

import (
	"testing"

	"github.com/williamofai/ctrain/kernel"
)

func TestNew_ValidBuffer(t *testing.T) {
	buf := make([]kernel.Fixed, 6)
	tn, err := New(buf, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tn.Contiguous() {
		t.Fatalf("freshly built tensor should be contiguous")
	}
}

func TestNew_RejectsMismatchedBufferLength(t *testing.T) {
	buf := make([]kernel.Fixed, 5)
	if _, err := New(buf, 2, 3); err == nil {
		t.Fatalf("expected error for buffer/shape size mismatch")
	}
}

func TestNew_PropagatesShapeError(t *testing.T) {
	buf := make([]kernel.Fixed, 0)
	if _, err := New(buf); err == nil {
		t.Fatalf("expected error for rank 0")
	}
}

func TestTensor_NonContiguousStrides(t *testing.T) {
	buf := make([]kernel.Fixed, 6)
	tn, err := New(buf, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	tn.Strides[0] = 1
	tn.Strides[1] = 1
	if tn.Contiguous() {
		t.Fatalf("expected non-contiguous strides to be detected")
	}
}

func TestNewGrad_ValidBuffer(t *testing.T) {
	buf := make([]kernel.FixedHP, 4)
	g, err := NewGrad(buf, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Contiguous() {
		t.Fatalf("freshly built grad tensor should be contiguous")
	}
}

func TestNewGrad_RejectsMismatchedBufferLength(t *testing.T) {
	buf := make([]kernel.FixedHP, 3)
	if _, err := NewGrad(buf, 4); err == nil {
		t.Fatalf("expected error for buffer/shape size mismatch")
	}
}
