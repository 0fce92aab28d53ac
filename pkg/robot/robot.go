// Package robot wires the subsystems into a runnable robot and exposes
// the host lifecycle entry points: one update per control tick, the
// disable-all path, and sensor re-initialization.
package robot

import (
	"context"
	"fmt"
	"time"

	"github.com/gwillem/fieldbot/pkg/chassis"
	"github.com/gwillem/fieldbot/pkg/clamp"
	"github.com/gwillem/fieldbot/pkg/control"
	"github.com/gwillem/fieldbot/pkg/core"
	"github.com/gwillem/fieldbot/pkg/input"
)

// Subsystem names used at registration.
const (
	NameChassis    = "main_chassis"
	NameClamp      = "main_clamp"
	NameDriver     = "main_driver"
	NameInput      = "main_input"
	NameMacros     = "main_macros"
	NameArbitrator = "main_arbitrator"
)

// Robot owns the registry, the event bus, and the wired subsystems.
// There is exactly one Robot per process, constructed by the host
// harness and passed down; nothing in this module holds global state.
type Robot struct {
	cfg      Config
	registry *core.Registry
	bus      *core.Bus

	bank *chassis.Bank // nil in dev mode

	// Sensors attached via AttachSensors, kept for Reset.
	orient     chassis.OrientationSensor
	leftWheel  chassis.TrackingWheel
	rightWheel chassis.TrackingWheel
}

// New builds and registers all subsystems from cfg, fed by pad. In dev
// mode no hardware is opened; actuators record commands in memory.
func New(cfg Config, pad input.Gamepad) (*Robot, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 100
	}

	r := &Robot{
		cfg:      cfg,
		registry: core.NewRegistry(),
		bus:      core.NewBus(),
	}

	chCfg := chassis.Config{
		Drive: parseDriveType(cfg.Chassis.Drive),
		Odom:  chassis.ParseOdomType(cfg.Chassis.Odometry),
	}
	if cfg.DevMode {
		// Simulated sensors have no calibration to wait out.
		chCfg.SettleDelay = time.Millisecond
	}
	ch := chassis.New(NameChassis, chCfg)
	if err := r.mountActuators(ch); err != nil {
		return nil, err
	}
	r.registry.Register(ch)

	// Dev mode with tracking odometry gets a simulated sensor suite
	// fed by the commanded velocities, so closed-loop navigation
	// converges without hardware.
	if cfg.DevMode && chCfg.Odom == chassis.OdomTracking {
		sim := chassis.NewSimOdometry(ch)
		if err := r.AttachSensors(context.Background(), sim.Orientation(), sim.LeftWheel(), sim.RightWheel()); err != nil {
			return nil, err
		}
	}

	cl := clamp.New(NameClamp, r.bus, clamp.Config{
		DefaultState: cfg.Clamp.DefaultClosed,
		DevMode:      cfg.DevMode,
	})
	r.registry.Register(cl)

	macros := control.NewMacroSystem(NameMacros, ch)
	mapper := input.NewMapper(NameInput, pad)

	driver := control.NewDriver(NameDriver, ch, pad, control.DriverConfig{
		Mode:        control.ParseDriveMode(cfg.Driver.Mode),
		Deadzone:    cfg.Driver.Deadzone,
		CurveFactor: cfg.Driver.CurveFactor,
		TurnScale:   cfg.Driver.TurnScale,
	})
	driver.SuppressDuring(macros)
	r.registry.Register(driver)

	// The arbitrator owns the mapper's and macro system's ticks, so
	// they are initialized here but not registered for UpdateAll.
	mapper.Initialize()
	macros.Initialize()
	r.registry.Register(control.NewArbitrator(NameArbitrator, macros, mapper))

	// Default operator binding: R1 toggles the clamp.
	mapper.Bind("toggle_clamp", input.Binding{
		Kind:    input.KindButton,
		Buttons: []input.Button{input.ButtonR1},
	}, cl.Toggle)

	return r, nil
}

func (r *Robot) mountActuators(ch *chassis.Controller) error {
	if r.cfg.DevMode {
		for range r.cfg.Chassis.LeftIDs {
			ch.AddActuator(&chassis.DevActuator{}, false)
		}
		for range r.cfg.Chassis.RightIDs {
			ch.AddActuator(&chassis.DevActuator{}, true)
		}
		return nil
	}

	minID, maxID := idRange(append(r.cfg.Chassis.LeftIDs, r.cfg.Chassis.RightIDs...))
	bank, err := chassis.OpenBank(r.cfg.Chassis.Port, minID, maxID)
	if err != nil {
		return fmt.Errorf("open actuator bank: %w", err)
	}
	r.bank = bank

	for _, id := range r.cfg.Chassis.LeftIDs {
		act := bank.Actuator(id)
		if act == nil {
			return fmt.Errorf("actuator %d not found on %s", id, r.cfg.Chassis.Port)
		}
		ch.AddActuator(act, false)
	}
	// Right side mounts reversed.
	for _, id := range r.cfg.Chassis.RightIDs {
		act := bank.Actuator(id)
		if act == nil {
			return fmt.Errorf("actuator %d not found on %s", id, r.cfg.Chassis.Port)
		}
		ch.AddActuator(act, true)
	}
	return nil
}

func idRange(ids []int) (min, max int) {
	if len(ids) == 0 {
		return 1, 1
	}
	min, max = ids[0], ids[0]
	for _, id := range ids[1:] {
		if id < min {
			min = id
		}
		if id > max {
			max = id
		}
	}
	return min, max
}

func parseDriveType(s string) chassis.DriveType {
	switch s {
	case "holonomic":
		return chassis.DriveHolonomic
	case "mecanum":
		return chassis.DriveMecanum
	default:
		return chassis.DriveTank
	}
}

// Update runs one control tick: every registered, enabled subsystem is
// updated once.
func (r *Robot) Update() {
	r.registry.UpdateAll()
}

// Disabled is the host's disabled hook: disable every subsystem
// unconditionally.
func (r *Robot) Disabled() {
	r.registry.DisableAll()
}

// AttachSensors wires the odometry sensors into the chassis and blocks
// through the orientation sensor's calibration settle.
func (r *Robot) AttachSensors(ctx context.Context, orient chassis.OrientationSensor, left, right chassis.TrackingWheel) error {
	r.orient, r.leftWheel, r.rightWheel = orient, left, right
	return r.Chassis().InitializeSensors(ctx, orient, left, right)
}

// Reset re-initializes the sensors and releases the clamp, restoring a
// known state between runs.
func (r *Robot) Reset(ctx context.Context) error {
	if r.orient != nil {
		if err := r.Chassis().InitializeSensors(ctx, r.orient, r.leftWheel, r.rightWheel); err != nil {
			return err
		}
	}
	r.Clamp().Set(false)
	return nil
}

// Close releases hardware resources.
func (r *Robot) Close() error {
	if r.bank != nil {
		return r.bank.Close()
	}
	return nil
}

// DevMode reports whether hardware calls are suppressed.
func (r *Robot) DevMode() bool { return r.cfg.DevMode }

// Hz returns the control loop frequency.
func (r *Robot) Hz() int { return r.cfg.Hz }

// Registry returns the subsystem registry.
func (r *Robot) Registry() *core.Registry { return r.registry }

// Bus returns the event bus.
func (r *Robot) Bus() *core.Bus { return r.bus }

// Chassis returns the motion controller. A missing chassis is an
// unrecoverable configuration error, so this panics rather than
// returning an ok-bool.
func (r *Robot) Chassis() *chassis.Controller {
	c, ok := core.Lookup[*chassis.Controller](r.registry, NameChassis)
	if !ok {
		panic("robot: chassis subsystem not initialized")
	}
	return c
}

// Clamp returns the clamp subsystem, panicking when absent like
// Chassis.
func (r *Robot) Clamp() *clamp.Clamp {
	c, ok := core.Lookup[*clamp.Clamp](r.registry, NameClamp)
	if !ok {
		panic("robot: clamp subsystem not initialized")
	}
	return c
}

// Macros returns the macro system.
func (r *Robot) Macros() *control.MacroSystem {
	a, ok := core.Lookup[*control.Arbitrator](r.registry, NameArbitrator)
	if !ok {
		panic("robot: arbitrator subsystem not initialized")
	}
	return a.Macros()
}

// Mapper returns the input mapper.
func (r *Robot) Mapper() *input.Mapper {
	a, ok := core.Lookup[*control.Arbitrator](r.registry, NameArbitrator)
	if !ok {
		panic("robot: arbitrator subsystem not initialized")
	}
	return a.Mapper()
}

// Driver returns the manual-driving subsystem.
func (r *Robot) Driver() *control.Driver {
	d, ok := core.Lookup[*control.Driver](r.registry, NameDriver)
	if !ok {
		panic("robot: driver subsystem not initialized")
	}
	return d
}
