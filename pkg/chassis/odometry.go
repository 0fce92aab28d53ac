package chassis

import (
	"context"
	"math"
)

// DriveType selects the drivetrain geometry.
type DriveType int

const (
	DriveTank DriveType = iota
	DriveHolonomic
	DriveMecanum
)

// OdomType selects the position-estimation strategy. It is fixed at
// construction and not runtime-switchable.
type OdomType int

const (
	// OdomNone leaves the pose at its last explicitly set value.
	OdomNone OdomType = iota
	// OdomTracking integrates tracking-wheel travel each tick.
	OdomTracking
	// OdomIntegrated is reserved for motor-encoder odometry; it
	// currently behaves like OdomNone.
	OdomIntegrated
	// OdomOrientation substitutes the heading read live from the
	// orientation sensor; x and y are never advanced.
	OdomOrientation
)

func (o OdomType) String() string {
	switch o {
	case OdomTracking:
		return "tracking"
	case OdomIntegrated:
		return "integrated"
	case OdomOrientation:
		return "orientation"
	default:
		return "none"
	}
}

// ParseOdomType maps a config string to an OdomType; unknown values
// fall back to OdomNone.
func ParseOdomType(s string) OdomType {
	switch s {
	case "tracking":
		return OdomTracking
	case "integrated":
		return OdomIntegrated
	case "orientation":
		return OdomOrientation
	default:
		return OdomNone
	}
}

// OrientationSensor exposes an absolute heading in degrees [0, 360).
// Reset starts a calibration that the caller must wait out before
// trusting readings.
type OrientationSensor interface {
	Heading() (float64, error)
	Reset(ctx context.Context) error
}

// TrackingWheel exposes accumulated rotation in degrees since the last
// reset.
type TrackingWheel interface {
	Degrees() (float64, error)
	Reset() error
}

// Tracking wheel geometry: 2.75 inch wheels.
const trackingWheelCircumference = 2.75 * math.Pi

// wheelDistance converts accumulated rotation in degrees to linear
// travel in inches.
func wheelDistance(degrees float64) float64 {
	return degrees / 360.0 * trackingWheelCircumference
}
