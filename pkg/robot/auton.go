package robot

import (
	"math"

	"github.com/gwillem/fieldbot/pkg/chassis"
	"github.com/gwillem/fieldbot/pkg/control"
	"github.com/gwillem/fieldbot/pkg/field"
)

// driveOutTicks is how long the routine drives open-loop off the start
// line before switching to closed-loop navigation.
const driveOutTicks = 100

// autonMacro carries the drive-out counter alongside the step sequence
// so a restart resets both.
type autonMacro struct {
	*control.Sequence
	driveTicks int
}

func (m *autonMacro) Reset() {
	m.driveTicks = 0
	m.Sequence.Reset()
}

// AutonRoutine is the match-start routine: drive off the start line,
// back onto the nearest mobile goal, clamp it, then face the alliance
// stake and release. Each step is one tick-slice so the routine can be
// interrupted between ticks.
func AutonRoutine(r *Robot) control.Macro {
	ch := r.Chassis()
	m := &autonMacro{}

	m.Sequence = control.NewSequence(
		func() bool {
			ch.ApplySides(0.5, 0.5)
			m.driveTicks++
			if m.driveTicks >= driveOutTicks {
				ch.Stop()
				return true
			}
			return false
		},
		// Goals are grabbed driving backwards, clamp side first.
		func() bool { return ch.StepToward(field.MobileGoals[0].Position, true) },
		func() bool {
			ch.Stop()
			r.Clamp().Set(true)
			return true
		},
		func() bool { return ch.StepTurn(math.Pi / 2) },
		func() bool {
			ch.Stop()
			r.Clamp().Set(false)
			return true
		},
	)
	return m
}

// AutonStartPose is where the routine assumes the robot begins:
// centered in the red start zone, facing up the field.
func AutonStartPose() chassis.Pose {
	return chassis.Pose{
		X:       (field.RedStartZone.XMin + field.RedStartZone.XMax) / 2,
		Y:       field.RedStartZone.Y,
		Heading: math.Pi / 2,
	}
}
