package chassis

import (
	"context"
	"math"
)

// Simulated differential kinematics: wheel degrees advanced per device
// velocity unit per tick, and the effective track width in inches.
const (
	simDegPerUnit = 0.5
	simTrackWidth = 12.0
)

// SimOdometry synthesizes tracking-wheel and orientation readings from
// the velocities last commanded to the chassis, so closed-loop
// navigation converges without hardware. One simulation step runs per
// odometry tick, on the left wheel read (the first read Update
// performs).
type SimOdometry struct {
	ctrl *Controller

	leftDeg    float64
	rightDeg   float64
	headingDeg float64
}

// NewSimOdometry returns a simulated odometry source for c. Attach its
// sensors via InitializeSensors.
func NewSimOdometry(c *Controller) *SimOdometry {
	return &SimOdometry{ctrl: c}
}

// Orientation returns the simulated orientation sensor.
func (s *SimOdometry) Orientation() OrientationSensor { return simOrient{s} }

// LeftWheel returns the simulated left tracking wheel.
func (s *SimOdometry) LeftWheel() TrackingWheel { return simWheel{s: s, left: true} }

// RightWheel returns the simulated right tracking wheel.
func (s *SimOdometry) RightWheel() TrackingWheel { return simWheel{s: s} }

// advance integrates one tick of motion from the commanded side
// velocities. Reversed mounts are un-negated so the reading reflects
// the side's direction of travel, as a real wheel would.
func (s *SimOdometry) advance() {
	n := len(s.ctrl.mounts)
	if n == 0 {
		return
	}
	half := n / 2

	var left, right float64
	for i, m := range s.ctrl.mounts {
		v := m.act.Velocity()
		if m.reversed {
			v = -v
		}
		if i < half {
			left += v
		} else {
			right += v
		}
	}
	if half > 0 {
		left /= float64(half)
	}
	right /= float64(n - half)

	dl := left * simDegPerUnit
	dr := right * simDegPerUnit
	s.leftDeg += dl
	s.rightDeg += dr

	omega := (wheelDistance(dl) - wheelDistance(dr)) / simTrackWidth
	s.headingDeg += omega * 180 / math.Pi
	s.headingDeg = math.Mod(s.headingDeg, 360)
	if s.headingDeg < 0 {
		s.headingDeg += 360
	}
}

type simWheel struct {
	s    *SimOdometry
	left bool
}

func (w simWheel) Degrees() (float64, error) {
	if w.left {
		w.s.advance()
		return w.s.leftDeg, nil
	}
	return w.s.rightDeg, nil
}

func (w simWheel) Reset() error {
	if w.left {
		w.s.leftDeg = 0
	} else {
		w.s.rightDeg = 0
	}
	return nil
}

type simOrient struct {
	s *SimOdometry
}

func (o simOrient) Heading() (float64, error) { return o.s.headingDeg, nil }

func (o simOrient) Reset(_ context.Context) error {
	o.s.headingDeg = 0
	return nil
}
