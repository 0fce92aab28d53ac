package chassis

import (
	"math"
	"testing"
)

func TestDeadzone(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{0.04, 0},
		{-0.04, 0},
		{0.05, 0.05}, // no rescale above the threshold
		{0.06, 0.06},
		{-0.5, -0.5},
		{1, 1},
	}

	for _, tt := range tests {
		got := Deadzone(tt.in, DefaultDeadzone)
		if got != tt.expected {
			t.Errorf("Deadzone(%f) = %f, want %f", tt.in, got, tt.expected)
		}
	}
}

func TestCurve(t *testing.T) {
	// Sign preserved, |curve(x)| == |x|^factor, endpoints fixed.
	for _, x := range []float64{-1, -0.5, -0.1, 0, 0.1, 0.5, 1} {
		got := Curve(x, DefaultCurveFactor)
		want := math.Pow(math.Abs(x), DefaultCurveFactor)
		if math.Abs(math.Abs(got)-want) > 1e-9 {
			t.Errorf("|Curve(%f)| = %f, want %f", x, math.Abs(got), want)
		}
		if x != 0 && math.Signbit(got) != math.Signbit(x) {
			t.Errorf("Curve(%f) = %f, sign not preserved", x, got)
		}
	}
	if Curve(0, DefaultCurveFactor) != 0 {
		t.Error("Curve(0) != 0")
	}
	if Curve(1, DefaultCurveFactor) != 1 || Curve(-1, DefaultCurveFactor) != -1 {
		t.Error("Curve(±1) != ±1")
	}
}

func TestMixArcade(t *testing.T) {
	// drive=0.5, turn already scaled by 0.8: contribution 0.4. No
	// normalization since neither side exceeds 1.0.
	left, right := MixArcade(0.5, 0.5*DefaultTurnScale)
	if math.Abs(left-0.9) > 1e-9 || math.Abs(right-0.1) > 1e-9 {
		t.Errorf("MixArcade(0.5, 0.4) = %f, %f, want 0.9, 0.1", left, right)
	}
}

func TestMixArcade_Normalizes(t *testing.T) {
	// drive=1.0, turn=1.0 post-scale: raw 2.0/0.0 normalizes to 1.0/0.0.
	left, right := MixArcade(1.0, 1.0)
	if math.Abs(left-1.0) > 1e-9 || math.Abs(right) > 1e-9 {
		t.Errorf("MixArcade(1, 1) = %f, %f, want 1, 0", left, right)
	}

	left, right = MixArcade(-1.0, 1.0)
	if math.Abs(left) > 1e-9 || math.Abs(right+1.0) > 1e-9 {
		t.Errorf("MixArcade(-1, 1) = %f, %f, want 0, -1", left, right)
	}

	if m := math.Max(math.Abs(left), math.Abs(right)); m > 1.0 {
		t.Errorf("normalized output magnitude %f exceeds 1.0", m)
	}
}
