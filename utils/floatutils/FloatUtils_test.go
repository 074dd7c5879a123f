package floatutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestClip(t *testing.T) {
	if c := Clip(2.0, -1.0, 1.0); c != 1.0 {
		t.Errorf("have %v, want 1.0", c)
	}
	if c := Clip(-2.0, -1.0, 1.0); c != -1.0 {
		t.Errorf("have %v, want -1.0", c)
	}
	if c := Clip(0.5, -1.0, 1.0); c != 0.5 {
		t.Errorf("have %v, want 0.5", c)
	}
}

func TestClipSliceCopies(t *testing.T) {
	values := []float64{-3.0, 0.25, 3.0}
	clipped := ClipSlice(values, -1.0, 1.0)

	want := []float64{-1.0, 0.25, 1.0}
	for i := range want {
		if clipped[i] != want[i] {
			t.Errorf("index %v: have %v, want %v", i, clipped[i], want[i])
		}
	}
	if values[0] != -3.0 {
		t.Error("ClipSlice should not modify its argument")
	}
}

func TestAllFinite(t *testing.T) {
	v := mat.NewVecDense(3, []float64{1.0, -2.0, 0.0})
	if !AllFinite(v) {
		t.Error("finite vector reported as non-finite")
	}

	v.SetVec(1, math.NaN())
	if AllFinite(v) {
		t.Error("NaN not detected")
	}

	v.SetVec(1, math.Inf(-1))
	if AllFinite(v) {
		t.Error("-Inf not detected")
	}
}
