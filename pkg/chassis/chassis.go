package chassis

import (
	"context"
	"math"
	"time"

	"github.com/gwillem/fieldbot/pkg/core"
	"github.com/gwillem/fieldbot/pkg/field"
)

// Device and control constants.
const (
	// MaxVelocity is the actuator device range limit.
	MaxVelocity = 200.0
	// VelocityScale converts a unitless [-1, 1] side power to device
	// units.
	VelocityScale = 200.0

	maxActuators = 10

	// Proportional gains and convergence tolerances for closed-loop
	// navigation.
	kP                = 0.8
	kTurnP            = 1.2
	distanceTolerance = 1.0  // inches
	headingTolerance  = 0.05 // radians, ~3 degrees

	defaultTickPeriod  = 10 * time.Millisecond
	defaultSettleDelay = 2 * time.Second
)

// Config selects the drivetrain and odometry behavior of a Controller.
// Per the runtime-configuration model there is one Controller type; a
// distinct strategy is a config value, not a distinct type.
type Config struct {
	Drive DriveType
	Odom  OdomType

	// TickPeriod is the delay between closed-loop iterations.
	// Zero means 10ms.
	TickPeriod time.Duration
	// SettleDelay is how long InitializeSensors blocks after an
	// orientation-sensor reset. Zero means 2s.
	SettleDelay time.Duration
}

// Controller owns the drive actuators and the robot's pose estimate.
// Actuators are split into halves by index: the first half is the left
// side, the rest the right side.
type Controller struct {
	core.Base
	cfg    Config
	mounts []mount

	pose Pose

	orient     OrientationSensor
	leftWheel  TrackingWheel
	rightWheel TrackingWheel

	// Last tracking-wheel readings, for delta integration.
	lastLeftDeg  float64
	lastRightDeg float64
}

// New returns a chassis controller for the given configuration. It must
// be registered before use; registration enables it.
func New(name string, cfg Config) *Controller {
	if cfg.TickPeriod <= 0 {
		cfg.TickPeriod = defaultTickPeriod
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	return &Controller{Base: core.NewBase(name), cfg: cfg}
}

// Role declares the chassis capability for registry lookup.
func (c *Controller) Role() core.Role { return core.RoleChassis }

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// AddActuator appends an actuator handle. Additions beyond the fixed
// capacity are silently rejected. The reversed flag inverts every
// velocity written through this mount.
func (c *Controller) AddActuator(act Actuator, reversed bool) {
	if len(c.mounts) >= maxActuators {
		return
	}
	c.mounts = append(c.mounts, mount{act: act, reversed: reversed})
}

// ActuatorCount returns the number of mounted actuators.
func (c *Controller) ActuatorCount() int { return len(c.mounts) }

// Velocity returns the last velocity commanded to actuator index, or 0
// for an out-of-range index.
func (c *Controller) Velocity(index int) float64 {
	if index < 0 || index >= len(c.mounts) {
		return 0
	}
	return c.mounts[index].act.Velocity()
}

// SetVelocity sets one actuator's target velocity in device units.
// An out-of-range index is a no-op.
func (c *Controller) SetVelocity(index int, v float64) {
	if index < 0 || index >= len(c.mounts) {
		return
	}
	c.mounts[index].set(v)
}

// ApplySides writes a unitless [-1, 1] power pair to the left and right
// actuator halves, scaled to device units.
func (c *Controller) ApplySides(left, right float64) {
	half := len(c.mounts) / 2
	for i, m := range c.mounts {
		if i < half {
			m.set(left * VelocityScale)
		} else {
			m.set(right * VelocityScale)
		}
	}
}

// Stop sets every actuator's velocity to zero.
func (c *Controller) Stop() {
	for _, m := range c.mounts {
		m.set(0)
	}
}

// Disable disables the controller and stops the chassis.
func (c *Controller) Disable() {
	c.Base.Disable()
	c.Stop()
}

// InitializeSensors attaches and resets the odometry sensors. The
// orientation sensor's calibration is time-bound, so this blocks for
// the settle delay after the reset.
func (c *Controller) InitializeSensors(ctx context.Context, orient OrientationSensor, left, right TrackingWheel) error {
	c.orient = orient
	if orient != nil {
		if err := orient.Reset(ctx); err != nil {
			return err
		}
		select {
		case <-time.After(c.cfg.SettleDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if c.cfg.Odom == OdomTracking {
		c.leftWheel, c.rightWheel = left, right
		for _, w := range []TrackingWheel{left, right} {
			if w == nil {
				continue
			}
			if err := w.Reset(); err != nil {
				return err
			}
		}
		c.lastLeftDeg, c.lastRightDeg = 0, 0
	}
	return nil
}

// SetPose overwrites the pose estimate, e.g. with a known starting
// position.
func (c *Controller) SetPose(p Pose) {
	p.Heading = WrapAngle(p.Heading)
	c.pose = p
}

// Position returns the current pose estimate. With orientation-enhanced
// odometry the heading is read live from the sensor; x and y stay at
// their last set value, since that strategy never advances translation.
func (c *Controller) Position() Pose {
	if c.cfg.Odom == OdomOrientation && c.orient != nil {
		if deg, err := c.orient.Heading(); err == nil {
			return Pose{X: c.pose.X, Y: c.pose.Y, Heading: WrapAngle(deg * math.Pi / 180)}
		}
	}
	return c.pose
}

// Update advances the odometry estimate. With tracking odometry the
// wheel deltas since the previous tick are averaged and integrated
// along the current sensor heading.
func (c *Controller) Update() {
	if c.cfg.Odom != OdomTracking || c.orient == nil || c.leftWheel == nil || c.rightWheel == nil {
		return
	}

	leftDeg, errL := c.leftWheel.Degrees()
	rightDeg, errR := c.rightWheel.Degrees()
	headingDeg, errH := c.orient.Heading()
	if errL != nil || errR != nil || errH != nil {
		return
	}

	leftDist := wheelDistance(leftDeg - c.lastLeftDeg)
	rightDist := wheelDistance(rightDeg - c.lastRightDeg)
	c.lastLeftDeg, c.lastRightDeg = leftDeg, rightDeg

	heading := WrapAngle(headingDeg * math.Pi / 180)
	distance := (leftDist + rightDist) / 2

	c.pose.X += distance * math.Cos(heading)
	c.pose.Y += distance * math.Sin(heading)
	c.pose.Heading = heading
}

// StepToward runs one closed-loop iteration toward target and reports
// whether the target has been reached. No velocity is commanded once
// within tolerance. With reverse set, the heading error is offset by pi
// so the robot backs toward the target.
func (c *Controller) StepToward(target field.Point, reverse bool) bool {
	pose := c.Position()
	distance := pose.DistanceTo(target)
	if distance < distanceTolerance {
		return true
	}

	headingErr := pose.BearingTo(target) - pose.Heading
	if reverse {
		headingErr += math.Pi
	}
	headingErr = WrapAngle(headingErr)

	turnPower := kTurnP * headingErr
	drivePower := kP * distance
	c.ApplySides(drivePower+turnPower, drivePower-turnPower)
	return false
}

// StepTurn runs one closed-loop iteration toward an absolute heading
// and reports whether it has been reached.
func (c *Controller) StepTurn(heading float64) bool {
	err := WrapAngle(heading - c.Position().Heading)
	if math.Abs(err) < headingTolerance {
		return true
	}
	power := kTurnP * err
	c.ApplySides(power, -power)
	return false
}

// MoveTo drives to target, blocking the caller until the target is
// reached, the controller is disabled, or ctx is canceled. The chassis
// is stopped unconditionally on exit. While it runs, MoveTo owns the
// control tick: it advances odometry itself and sleeps one tick period
// per iteration. There is no convergence timeout; an unreachable target
// blocks until disable or cancellation.
func (c *Controller) MoveTo(ctx context.Context, target field.Point, reverse bool) {
	if !c.Enabled() {
		return
	}
	defer c.Stop()

	for c.Enabled() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		c.Update()
		if c.StepToward(target, reverse) {
			return
		}
		time.Sleep(c.cfg.TickPeriod)
	}
}

// TurnTo rotates to an absolute heading with the same blocking contract
// as MoveTo.
func (c *Controller) TurnTo(ctx context.Context, heading float64) {
	if !c.Enabled() {
		return
	}
	defer c.Stop()

	for c.Enabled() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		c.Update()
		if c.StepTurn(heading) {
			return
		}
		time.Sleep(c.cfg.TickPeriod)
	}
}
