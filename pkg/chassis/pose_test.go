package chassis

import (
	"math"
	"testing"

	"github.com/gwillem/fieldbot/pkg/field"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{3.2, 3.2 - 2*math.Pi}, // ~-3.083
		{-3.2, -3.2 + 2*math.Pi},
		{math.Pi, math.Pi},       // pi stays in range
		{-math.Pi, math.Pi},      // -pi maps to pi, range is (-pi, pi]
		{2 * math.Pi, 0},
		{5 * math.Pi, math.Pi},
	}

	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("WrapAngle(%f) = %f, want %f", tt.in, got, tt.expected)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("WrapAngle(%f) = %f, outside (-pi, pi]", tt.in, got)
		}
	}
}

func TestPose_DistanceTo(t *testing.T) {
	p := Pose{X: 3, Y: 4}
	got := p.DistanceTo(field.Point{X: 0, Y: 0})
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("DistanceTo = %f, want 5", got)
	}
}

func TestPose_BearingTo(t *testing.T) {
	tests := []struct {
		target   field.Point
		expected float64
	}{
		{field.Point{X: 1, Y: 0}, 0},
		{field.Point{X: 0, Y: 1}, math.Pi / 2},
		{field.Point{X: -1, Y: 0}, math.Pi},
		{field.Point{X: 1, Y: 1}, math.Pi / 4},
	}

	p := Pose{}
	for _, tt := range tests {
		got := p.BearingTo(tt.target)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("BearingTo(%+v) = %f, want %f", tt.target, got, tt.expected)
		}
	}
}
