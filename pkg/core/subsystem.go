// Package core provides the subsystem lifecycle registry and the event
// bus that decouple the robot's subsystems from one another.
package core

// Role declares a capability a subsystem fulfills, so callers can look
// one up without depending on its concrete type.
type Role string

// Roles fulfilled by the standard subsystems.
const (
	RoleChassis    Role = "chassis"
	RoleDriver     Role = "driver"
	RoleInput      Role = "input"
	RoleMacros     Role = "macros"
	RoleArbitrator Role = "arbitrator"
	RoleClamp      Role = "clamp"
)

// Subsystem is the lifecycle contract every subsystem implements.
// Initialize is called once at registration, Update once per control
// tick while enabled, and Disable when the robot is disabled.
type Subsystem interface {
	Name() string
	Initialize()
	Update()
	Disable()
	Enabled() bool
}

// RoleCarrier is implemented by subsystems that declare a role for
// registry lookup.
type RoleCarrier interface {
	Role() Role
}

// Base provides the common name/enabled lifecycle state. Embed it and
// override Update (and Disable, if teardown is needed).
type Base struct {
	name    string
	enabled bool
}

// NewBase returns lifecycle state for a subsystem with the given name.
func NewBase(name string) Base {
	return Base{name: name}
}

func (b *Base) Name() string  { return b.name }
func (b *Base) Initialize()   { b.enabled = true }
func (b *Base) Update()       {}
func (b *Base) Disable()      { b.enabled = false }
func (b *Base) Enabled() bool { return b.enabled }
