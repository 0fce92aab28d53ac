package input

import (
	"time"

	"github.com/gwillem/fieldbot/pkg/core"
)

// Mapper polls a gamepad each tick, evaluates its named bindings, and
// invokes the bound action for every binding whose condition fires.
// Level-triggered kinds refire on every tick their condition holds;
// only KindButton is inherently once-per-press.
type Mapper struct {
	core.Base
	pad      Gamepad
	bindings map[string]*boundAction
	now      func() time.Time
}

type boundAction struct {
	binding Binding
	action  func()
	history []time.Time // recorded presses for sequence matching
}

// NewMapper returns a mapper polling pad.
func NewMapper(name string, pad Gamepad) *Mapper {
	return &Mapper{
		Base:     core.NewBase(name),
		pad:      pad,
		bindings: make(map[string]*boundAction),
		now:      time.Now,
	}
}

// Role declares the input capability for registry lookup.
func (m *Mapper) Role() core.Role { return core.RoleInput }

// Bind stores a named binding and its action, overwriting any previous
// binding with the same name. Sequence bindings get the default window
// when none is set.
func (m *Mapper) Bind(name string, b Binding, action func()) {
	if b.Kind == KindSequence && b.Window <= 0 {
		b.Window = DefaultSequenceWindow
	}
	m.bindings[name] = &boundAction{binding: b, action: action}
}

// Unbind removes a binding. Unknown names are ignored.
func (m *Mapper) Unbind(name string) {
	delete(m.bindings, name)
}

// Update evaluates every binding against the current gamepad state.
func (m *Mapper) Update() {
	for _, ba := range m.bindings {
		if m.check(ba) {
			ba.action()
		}
	}
}

func (m *Mapper) check(ba *boundAction) bool {
	b := ba.binding
	switch b.Kind {
	case KindButton:
		return len(b.Buttons) > 0 && m.pad.Pressed(b.Buttons[0])

	case KindChord:
		if len(b.Buttons) == 0 {
			return false
		}
		for _, btn := range b.Buttons {
			if !m.pad.Held(btn) {
				return false
			}
		}
		return true

	case KindAnalogAbove:
		return m.pad.Axis(b.Axis) > b.Threshold

	case KindAnalogBelow:
		return m.pad.Axis(b.Axis) < b.Threshold

	case KindSequence:
		return m.checkSequence(ba)
	}
	return false
}

// checkSequence maintains a sliding window of recorded presses of the
// listed buttons and matches once the count reaches the expected
// length. Which button filled each position is not verified; only the
// count inside the window matters.
func (m *Mapper) checkSequence(ba *boundAction) bool {
	now := m.now()
	window := ba.binding.Window

	// Drop presses that fell out of the window.
	kept := ba.history[:0]
	for _, ts := range ba.history {
		if now.Sub(ts) <= window {
			kept = append(kept, ts)
		}
	}
	ba.history = kept

	if len(ba.history) == len(ba.binding.Buttons) && len(ba.history) > 0 {
		ba.history = ba.history[:0]
		return true
	}

	for _, btn := range ba.binding.Buttons {
		if m.pad.Pressed(btn) {
			ba.history = append(ba.history, now)
			break
		}
	}
	return false
}
