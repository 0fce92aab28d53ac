package input

import "time"

// Kind selects how a binding's condition is evaluated.
type Kind int

const (
	// KindButton fires on the edge-triggered new press of one button.
	KindButton Kind = iota
	// KindChord fires every tick all listed buttons are held.
	KindChord
	// KindAnalogAbove fires every tick the axis is above the threshold.
	KindAnalogAbove
	// KindAnalogBelow fires every tick the axis is below the threshold.
	KindAnalogBelow
	// KindSequence fires when enough listed-button presses land inside
	// the time window.
	KindSequence
)

// DefaultSequenceWindow is the sliding window for sequence bindings.
const DefaultSequenceWindow = 500 * time.Millisecond

// Binding is a named rule mapping raw input conditions to an action.
// Buttons order is significant only for KindSequence. Axis and
// Threshold apply to the analog kinds; Window to sequences.
type Binding struct {
	Kind      Kind
	Buttons   []Button
	Axis      Axis
	Threshold float64
	Window    time.Duration
}
