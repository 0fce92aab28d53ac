package chassis

import "math"

// Default input-shaping parameters, shared by all drive modes.
const (
	DefaultDeadzone    = 0.05
	DefaultCurveFactor = 1.5
	DefaultTurnScale   = 0.8
)

// Deadzone returns 0 when |x| is below threshold and x unchanged
// otherwise. The remaining range is not rescaled, so there is a step
// at the threshold boundary.
func Deadzone(x, threshold float64) float64 {
	if math.Abs(x) < threshold {
		return 0
	}
	return x
}

// Curve applies sign-preserving exponential shaping: sign(x)*|x|^factor.
// Factors above 1 flatten the response near zero for finer low-speed
// control.
func Curve(x, factor float64) float64 {
	if x < 0 {
		return -math.Pow(-x, factor)
	}
	return math.Pow(x, factor)
}

// MixArcade blends a drive and a (pre-scaled) turn input into left and
// right side outputs. If either side exceeds 1.0 in magnitude, both are
// divided by the larger magnitude so neither clips.
func MixArcade(drive, turn float64) (left, right float64) {
	left = drive + turn
	right = drive - turn
	if m := math.Max(math.Abs(left), math.Abs(right)); m > 1.0 {
		left /= m
		right /= m
	}
	return left, right
}
