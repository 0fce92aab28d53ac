package chassis

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gwillem/fieldbot/pkg/field"
)

func newSimController(t *testing.T) *Controller {
	t.Helper()
	c := New("chassis", Config{
		Odom:        OdomTracking,
		TickPeriod:  time.Nanosecond,
		SettleDelay: time.Nanosecond,
	})
	// Right side mounted reversed, as on the real drivetrain.
	c.AddActuator(&DevActuator{}, false)
	c.AddActuator(&DevActuator{}, true)
	c.Initialize()

	sim := NewSimOdometry(c)
	if err := c.InitializeSensors(context.Background(), sim.Orientation(), sim.LeftWheel(), sim.RightWheel()); err != nil {
		t.Fatalf("InitializeSensors: %v", err)
	}
	return c
}

func TestSimOdometry_AdvancesPose(t *testing.T) {
	c := newSimController(t)

	// Equal side power drives straight along the current heading.
	for i := 0; i < 10; i++ {
		c.ApplySides(0.5, 0.5)
		c.Update()
	}

	pose := c.Position()
	if pose.X <= 0 {
		t.Errorf("pose did not advance: x = %f", pose.X)
	}
	if math.Abs(pose.Y) > 1e-9 || math.Abs(pose.Heading) > 1e-9 {
		t.Errorf("straight drive drifted: y = %f, heading = %f", pose.Y, pose.Heading)
	}
}

func TestSimOdometry_StepTowardConverges(t *testing.T) {
	c := newSimController(t)
	target := field.Point{X: 24, Y: 0}

	done := false
	for i := 0; i < 200; i++ {
		if c.StepToward(target, false) {
			done = true
			break
		}
		c.Update()
	}
	if !done {
		t.Fatalf("StepToward did not converge; pose %+v", c.Position())
	}
	if d := c.Position().DistanceTo(target); d >= distanceTolerance {
		t.Errorf("final distance %f, want < %f", d, distanceTolerance)
	}
}

func TestSimOdometry_StepTurnConverges(t *testing.T) {
	c := newSimController(t)
	target := math.Pi / 2

	done := false
	for i := 0; i < 200; i++ {
		if c.StepTurn(target) {
			done = true
			break
		}
		c.Update()
	}
	if !done {
		t.Fatalf("StepTurn did not converge; heading %f", c.Position().Heading)
	}
	if e := math.Abs(WrapAngle(target - c.Position().Heading)); e >= headingTolerance {
		t.Errorf("final heading error %f, want < %f", e, headingTolerance)
	}
}
