package thermal

import (
	"math"
	"testing"
)

func TestFieldClone(t *testing.T) {
	f := NewField(3, 4, 7.0)
	f.Set(1, 2, 42)

	c := f.Clone()
	if !c.Equal(f) {
		t.Fatal("clone should equal original")
	}

	c.Set(1, 2, -1)
	if f.At(1, 2) != 42 {
		t.Error("mutating clone leaked into original")
	}
}

func TestFieldRowWritesThrough(t *testing.T) {
	f := NewField(3, 3, 0)
	row := f.Row(1)
	row[2] = 9

	if f.At(1, 2) != 9 {
		t.Errorf("expected 9 at (1,2), got %f", f.At(1, 2))
	}
}

func TestFieldMinMax(t *testing.T) {
	f := NewField(2, 2, 5)
	f.Set(0, 1, -3)
	f.Set(1, 0, 11)

	min, max := f.MinMax()
	if min != -3 {
		t.Errorf("expected min -3, got %f", min)
	}
	if max != 11 {
		t.Errorf("expected max 11, got %f", max)
	}
}

func TestFieldIsFinite(t *testing.T) {
	f := NewField(2, 2, 1)
	if !f.IsFinite() {
		t.Error("expected finite field")
	}

	f.Set(0, 0, math.NaN())
	if f.IsFinite() {
		t.Error("expected NaN to be detected")
	}

	f.Set(0, 0, math.Inf(1))
	if f.IsFinite() {
		t.Error("expected Inf to be detected")
	}
}

func TestFieldEqualShape(t *testing.T) {
	a := NewField(2, 3, 0)
	b := NewField(3, 2, 0)
	if a.Equal(b) {
		t.Error("fields of different shape should not be equal")
	}
}
