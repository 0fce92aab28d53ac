package control

import (
	"math"
	"testing"

	"github.com/gwillem/fieldbot/pkg/chassis"
	"github.com/gwillem/fieldbot/pkg/input"
)

func newDriveRig(mode DriveMode) (*Driver, *chassis.Controller, *input.SimGamepad) {
	ch := chassis.New("chassis", chassis.Config{})
	for i := 0; i < 4; i++ {
		ch.AddActuator(&chassis.DevActuator{}, false)
	}
	ch.Initialize()

	pad := input.NewSimGamepad()
	cfg := DefaultDriverConfig()
	cfg.Mode = mode
	d := NewDriver("driver", ch, pad, cfg)
	d.Initialize()
	return d, ch, pad
}

func TestDriver_SplitStraight(t *testing.T) {
	d, ch, pad := newDriveRig(ModeSplit)
	pad.SetAxis(input.AxisLeftY, 0.6)
	pad.SetAxis(input.AxisRightX, 0)

	d.Update()

	want := chassis.Curve(chassis.Deadzone(0.6, chassis.DefaultDeadzone), chassis.DefaultCurveFactor) * chassis.VelocityScale
	for i := 0; i < 4; i++ {
		if got := ch.Velocity(i); math.Abs(got-want) > 1e-9 {
			t.Errorf("actuator %d velocity %f, want %f", i, got, want)
		}
	}
}

func TestDriver_SplitTurnsOpposite(t *testing.T) {
	d, ch, pad := newDriveRig(ModeSplit)
	pad.SetAxis(input.AxisLeftY, 0)
	pad.SetAxis(input.AxisRightX, 0.5)

	d.Update()

	left, right := ch.Velocity(0), ch.Velocity(2)
	if left <= 0 || right >= 0 {
		t.Errorf("turn produced left %f right %f, want opposite signs", left, right)
	}
	if math.Abs(left+right) > 1e-9 {
		t.Errorf("pure turn not symmetric: left %f right %f", left, right)
	}
}

func TestDriver_ArcadeUsesLeftStickX(t *testing.T) {
	d, ch, pad := newDriveRig(ModeArcade)
	pad.SetAxis(input.AxisLeftX, 0.5)
	pad.SetAxis(input.AxisRightX, 0) // ignored in single-stick arcade

	d.Update()

	if ch.Velocity(0) == 0 {
		t.Error("arcade mode ignored left stick X")
	}
}

func TestDriver_TankIndependentSides(t *testing.T) {
	d, ch, pad := newDriveRig(ModeTank)
	pad.SetAxis(input.AxisLeftY, 1.0)
	pad.SetAxis(input.AxisRightY, -1.0)

	d.Update()

	if got := ch.Velocity(0); math.Abs(got-chassis.VelocityScale) > 1e-9 {
		t.Errorf("left velocity %f, want %f", got, chassis.VelocityScale)
	}
	if got := ch.Velocity(2); math.Abs(got+chassis.VelocityScale) > 1e-9 {
		t.Errorf("right velocity %f, want %f", got, -chassis.VelocityScale)
	}
}

func TestDriver_DeadzoneSuppressesDrift(t *testing.T) {
	d, ch, pad := newDriveRig(ModeSplit)
	pad.SetAxis(input.AxisLeftY, 0.03)
	pad.SetAxis(input.AxisRightX, -0.04)

	d.Update()

	for i := 0; i < 4; i++ {
		if v := ch.Velocity(i); v != 0 {
			t.Errorf("actuator %d moved at %f inside the deadzone", i, v)
		}
	}
}

func TestDriver_DisableStopsChassis(t *testing.T) {
	d, ch, pad := newDriveRig(ModeSplit)
	pad.SetAxis(input.AxisLeftY, 1.0)
	d.Update()
	if ch.Velocity(0) == 0 {
		t.Fatal("precondition: chassis should be moving")
	}

	d.Disable()

	if d.Enabled() {
		t.Error("driver enabled after Disable")
	}
	for i := 0; i < 4; i++ {
		if v := ch.Velocity(i); v != 0 {
			t.Errorf("actuator %d velocity %f after Disable, want 0", i, v)
		}
	}
}

func TestDriver_SuppressedWhileMacroActive(t *testing.T) {
	d, ch, pad := newDriveRig(ModeSplit)
	macros := newTestMacroSystem()
	macros.Register("hold", NewSequence(func() bool { return false }))
	d.SuppressDuring(macros)

	macros.Start("hold")
	ch.SetVelocity(0, 120) // pretend the macro commanded this
	pad.SetAxis(input.AxisLeftY, 0)
	d.Update()

	if got := ch.Velocity(0); got != 120 {
		t.Errorf("idle sticks overwrote macro command: velocity %f, want 120", got)
	}

	macros.Stop()
	d.Update()
	if got := ch.Velocity(0); got != 0 {
		t.Errorf("driver did not resume after macro stopped: velocity %f, want 0", got)
	}
}

func TestParseDriveMode(t *testing.T) {
	tests := []struct {
		in       string
		expected DriveMode
	}{
		{"split", ModeSplit},
		{"tank", ModeTank},
		{"arcade", ModeArcade},
		{"", ModeArcade},
		{"bogus", ModeArcade},
	}
	for _, tt := range tests {
		if got := ParseDriveMode(tt.in); got != tt.expected {
			t.Errorf("ParseDriveMode(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}
