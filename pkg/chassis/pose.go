// Package chassis provides the robot's motion controller: actuator
// management, manual-drive input mixing, closed-loop point-to-point
// navigation, and pluggable odometry.
package chassis

import (
	"math"

	"github.com/gwillem/fieldbot/pkg/field"
)

// Pose is the robot's estimated position and heading in the field
// frame. Heading is in radians, normalized to (-pi, pi].
type Pose struct {
	X, Y    float64
	Heading float64
}

// DistanceTo returns the Euclidean distance from the pose to target.
func (p Pose) DistanceTo(target field.Point) float64 {
	dx := target.X - p.X
	dy := target.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BearingTo returns the absolute field bearing from the pose to target.
func (p Pose) BearingTo(target field.Point) float64 {
	return math.Atan2(target.Y-p.Y, target.X-p.X)
}

// WrapAngle normalizes an angle into (-pi, pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
