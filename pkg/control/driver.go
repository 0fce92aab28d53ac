package control

import (
	"github.com/gwillem/fieldbot/pkg/chassis"
	"github.com/gwillem/fieldbot/pkg/core"
	"github.com/gwillem/fieldbot/pkg/input"
)

// DriveMode selects how stick input is mixed into chassis velocity.
type DriveMode int

const (
	// ModeArcade mixes drive and turn from the left stick alone.
	ModeArcade DriveMode = iota
	// ModeSplit takes drive from the left stick and turn from the right.
	ModeSplit
	// ModeTank maps each stick's Y axis to its side directly.
	ModeTank
)

func (m DriveMode) String() string {
	switch m {
	case ModeSplit:
		return "split"
	case ModeTank:
		return "tank"
	default:
		return "arcade"
	}
}

// ParseDriveMode maps a config string to a DriveMode; unknown values
// fall back to arcade.
func ParseDriveMode(s string) DriveMode {
	switch s {
	case "split":
		return ModeSplit
	case "tank":
		return ModeTank
	default:
		return ModeArcade
	}
}

// DriverConfig tunes input shaping for manual driving.
type DriverConfig struct {
	Mode        DriveMode
	CurveFactor float64
	Deadzone    float64
	TurnScale   float64
}

// DefaultDriverConfig returns the standard shaping parameters.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		Mode:        ModeArcade,
		CurveFactor: chassis.DefaultCurveFactor,
		Deadzone:    chassis.DefaultDeadzone,
		TurnScale:   chassis.DefaultTurnScale,
	}
}

// Driver mixes raw gamepad input into chassis velocity commands every
// tick. It is the straightforward manual-driving path used when no
// binding or macro layer sits in between.
type Driver struct {
	core.Base
	chassis  *chassis.Controller
	pad      input.Gamepad
	cfg      DriverConfig
	suppress *MacroSystem
}

// NewDriver returns a driver control for ch fed by pad.
func NewDriver(name string, ch *chassis.Controller, pad input.Gamepad, cfg DriverConfig) *Driver {
	if cfg.CurveFactor == 0 {
		cfg.CurveFactor = chassis.DefaultCurveFactor
	}
	if cfg.Deadzone == 0 {
		cfg.Deadzone = chassis.DefaultDeadzone
	}
	if cfg.TurnScale == 0 {
		cfg.TurnScale = chassis.DefaultTurnScale
	}
	return &Driver{Base: core.NewBase(name), chassis: ch, pad: pad, cfg: cfg}
}

// Role declares the driver capability for registry lookup.
func (d *Driver) Role() core.Role { return core.RoleDriver }

// Config returns the driver's shaping configuration.
func (d *Driver) Config() DriverConfig { return d.cfg }

// SetMode switches the drive mode at runtime.
func (d *Driver) SetMode(m DriveMode) { d.cfg.Mode = m }

// SuppressDuring suppresses mixing while a macro in m is running, so
// idle sticks do not overwrite the macro's chassis commands. This is
// the driver's half of arbitration; m routing macro ticks is the other.
func (d *Driver) SuppressDuring(m *MacroSystem) { d.suppress = m }

// Update reads the sticks and applies the configured mixing mode.
func (d *Driver) Update() {
	if d.suppress != nil && d.suppress.Active() {
		return
	}
	switch d.cfg.Mode {
	case ModeTank:
		d.tank()
	case ModeSplit:
		d.arcade(true)
	default:
		d.arcade(false)
	}
}

// Disable stops the chassis immediately.
func (d *Driver) Disable() {
	d.Base.Disable()
	d.chassis.Stop()
}

func (d *Driver) shape(v float64) float64 {
	return chassis.Curve(chassis.Deadzone(v, d.cfg.Deadzone), d.cfg.CurveFactor)
}

func (d *Driver) tank() {
	left := d.shape(d.pad.Axis(input.AxisLeftY))
	right := d.shape(d.pad.Axis(input.AxisRightY))
	d.chassis.ApplySides(left, right)
}

func (d *Driver) arcade(split bool) {
	drive := d.shape(d.pad.Axis(input.AxisLeftY))
	var turn float64
	if split {
		turn = d.shape(d.pad.Axis(input.AxisRightX))
	} else {
		turn = d.shape(d.pad.Axis(input.AxisLeftX))
	}
	left, right := chassis.MixArcade(drive, turn*d.cfg.TurnScale)
	d.chassis.ApplySides(left, right)
}
