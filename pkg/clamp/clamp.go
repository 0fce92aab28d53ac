// Package clamp controls the pneumatic clamp, a single binary actuator.
package clamp

import "github.com/gwillem/fieldbot/pkg/core"

// Topic published on every clamp state change, with a bool payload.
const TopicChanged = "clamp.changed"

// Solenoid is the hardware boundary: set a binary output.
type Solenoid interface {
	Set(on bool)
}

// Config holds the clamp's hardware wiring and defaults.
type Config struct {
	Solenoid     Solenoid
	DefaultState bool
	// DevMode suppresses hardware writes; state changes and events
	// still happen.
	DevMode bool
}

// Clamp is the pneumatic clamp subsystem. Every state change is
// published on the event bus so other subsystems can react without a
// direct dependency.
type Clamp struct {
	core.Base
	cfg     Config
	bus     *core.Bus
	clamped bool
}

// New returns a clamp publishing state changes on bus.
func New(name string, bus *core.Bus, cfg Config) *Clamp {
	return &Clamp{Base: core.NewBase(name), cfg: cfg, bus: bus}
}

// Role declares the clamp capability for registry lookup.
func (c *Clamp) Role() core.Role { return core.RoleClamp }

// Initialize enables the clamp and drives it to its default state.
func (c *Clamp) Initialize() {
	c.Base.Initialize()
	c.set(c.cfg.DefaultState)
}

// Toggle flips the clamp state.
func (c *Clamp) Toggle() {
	c.set(!c.clamped)
}

// Set drives the clamp to the given state.
func (c *Clamp) Set(clamped bool) {
	c.set(clamped)
}

// Clamped returns the last commanded state.
func (c *Clamp) Clamped() bool { return c.clamped }

func (c *Clamp) set(clamped bool) {
	if c.clamped == clamped {
		return
	}
	c.clamped = clamped
	if !c.cfg.DevMode && c.cfg.Solenoid != nil {
		c.cfg.Solenoid.Set(clamped)
	}
	c.bus.Emit(TopicChanged, clamped)
}
