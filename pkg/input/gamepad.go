// Package input interprets raw operator input: it defines the gamepad
// boundary and maps named binding rules onto actions.
package input

// Button identifies a digital control on the gamepad.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonL1
	ButtonL2
	ButtonR1
	ButtonR2
)

// Axis identifies an analog stick channel.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
)

// Gamepad is the raw input device boundary, polled once per tick.
// Axis values are normalized to [-1, 1] from the device's raw
// -127..127 range by the implementation. Buttons are queryable as
// level ("currently held") and edge ("newly pressed since last poll").
type Gamepad interface {
	Axis(a Axis) float64
	Held(b Button) bool
	Pressed(b Button) bool
}

// SimGamepad is a settable in-memory gamepad for dev mode and tests.
// Pressed returns true exactly once after each rising edge of a
// button, mirroring the edge semantics of the real device.
type SimGamepad struct {
	axes    map[Axis]float64
	held    map[Button]bool
	pressed map[Button]bool
}

// NewSimGamepad returns a gamepad with all controls at rest.
func NewSimGamepad() *SimGamepad {
	return &SimGamepad{
		axes:    make(map[Axis]float64),
		held:    make(map[Button]bool),
		pressed: make(map[Button]bool),
	}
}

// SetAxis sets an axis to a normalized value.
func (g *SimGamepad) SetAxis(a Axis, v float64) { g.axes[a] = v }

// SetHeld sets a button's level state, latching an edge on a rising
// transition.
func (g *SimGamepad) SetHeld(b Button, held bool) {
	if held && !g.held[b] {
		g.pressed[b] = true
	}
	g.held[b] = held
}

// Tap presses and releases a button, leaving the edge latched for the
// next Pressed query.
func (g *SimGamepad) Tap(b Button) {
	g.SetHeld(b, true)
	g.held[b] = false
}

func (g *SimGamepad) Axis(a Axis) float64 { return g.axes[a] }
func (g *SimGamepad) Held(b Button) bool  { return g.held[b] }

func (g *SimGamepad) Pressed(b Button) bool {
	if g.pressed[b] {
		g.pressed[b] = false
		return true
	}
	return false
}
