package input

import (
	"testing"
	"time"
)

func newTestMapper(pad *SimGamepad) *Mapper {
	m := NewMapper("input", pad)
	m.Initialize()
	return m
}

func TestMapper_ButtonEdgeTriggered(t *testing.T) {
	pad := NewSimGamepad()
	m := newTestMapper(pad)

	fired := 0
	m.Bind("clamp", Binding{Kind: KindButton, Buttons: []Button{ButtonR1}}, func() { fired++ })

	// Held across several ticks: only the rising edge fires.
	pad.SetHeld(ButtonR1, true)
	m.Update()
	m.Update()
	m.Update()
	if fired != 1 {
		t.Errorf("button binding fired %d times while held, want 1", fired)
	}

	// Release and press again: a new edge.
	pad.SetHeld(ButtonR1, false)
	pad.SetHeld(ButtonR1, true)
	m.Update()
	if fired != 2 {
		t.Errorf("button binding fired %d times after second press, want 2", fired)
	}
}

func TestMapper_ChordLevelTriggered(t *testing.T) {
	pad := NewSimGamepad()
	m := newTestMapper(pad)

	fired := 0
	m.Bind("combo", Binding{Kind: KindChord, Buttons: []Button{ButtonL1, ButtonL2}}, func() { fired++ })

	pad.SetHeld(ButtonL1, true)
	m.Update()
	if fired != 0 {
		t.Fatal("chord fired with only one button held")
	}

	pad.SetHeld(ButtonL2, true)
	m.Update()
	m.Update() // refires every tick while held
	if fired != 2 {
		t.Errorf("chord fired %d times over two held ticks, want 2", fired)
	}

	pad.SetHeld(ButtonL1, false)
	m.Update()
	if fired != 2 {
		t.Error("chord fired after a button was released")
	}
}

func TestMapper_AnalogThresholds(t *testing.T) {
	pad := NewSimGamepad()
	m := newTestMapper(pad)

	above, below := 0, 0
	m.Bind("hi", Binding{Kind: KindAnalogAbove, Axis: AxisLeftY, Threshold: 0.5}, func() { above++ })
	m.Bind("lo", Binding{Kind: KindAnalogBelow, Axis: AxisLeftY, Threshold: -0.5}, func() { below++ })

	pad.SetAxis(AxisLeftY, 0.6)
	m.Update()
	m.Update()
	if above != 2 {
		t.Errorf("above fired %d times, want 2 (level-triggered)", above)
	}
	if below != 0 {
		t.Errorf("below fired %d times, want 0", below)
	}

	pad.SetAxis(AxisLeftY, -0.9)
	m.Update()
	if below != 1 {
		t.Errorf("below fired %d times, want 1", below)
	}
	if above != 2 {
		t.Errorf("above fired %d times after axis flip, want 2", above)
	}
}

func TestMapper_SequenceWithinWindow(t *testing.T) {
	pad := NewSimGamepad()
	m := newTestMapper(pad)

	clock := time.Unix(0, 0)
	m.now = func() time.Time { return clock }

	fired := 0
	m.Bind("konami", Binding{
		Kind:    KindSequence,
		Buttons: []Button{ButtonUp, ButtonUp, ButtonDown},
	}, func() { fired++ })

	// Three presses inside the window. Button identity per position is
	// not checked; the count is.
	for i := 0; i < 3; i++ {
		pad.Tap(ButtonUp)
		m.Update()
		clock = clock.Add(100 * time.Millisecond)
	}
	m.Update() // match is declared on the evaluation after the last press
	if fired != 1 {
		t.Errorf("sequence fired %d times, want 1", fired)
	}
}

func TestMapper_SequenceWindowExpires(t *testing.T) {
	pad := NewSimGamepad()
	m := newTestMapper(pad)

	clock := time.Unix(0, 0)
	m.now = func() time.Time { return clock }

	fired := 0
	m.Bind("seq", Binding{
		Kind:    KindSequence,
		Buttons: []Button{ButtonA, ButtonA},
	}, func() { fired++ })

	pad.Tap(ButtonA)
	m.Update()

	// Second press lands after the first slid out of the window.
	clock = clock.Add(DefaultSequenceWindow + time.Millisecond)
	pad.Tap(ButtonA)
	m.Update()
	m.Update()
	if fired != 0 {
		t.Errorf("sequence fired %d times across an expired window, want 0", fired)
	}
}

func TestMapper_UnbindRemoves(t *testing.T) {
	pad := NewSimGamepad()
	m := newTestMapper(pad)

	fired := 0
	m.Bind("b", Binding{Kind: KindButton, Buttons: []Button{ButtonA}}, func() { fired++ })
	m.Unbind("b")
	m.Unbind("never-bound") // no-op

	pad.Tap(ButtonA)
	m.Update()
	if fired != 0 {
		t.Errorf("unbound binding fired %d times", fired)
	}
}

func TestSimGamepad_EdgeSemantics(t *testing.T) {
	pad := NewSimGamepad()
	pad.SetHeld(ButtonB, true)

	if !pad.Pressed(ButtonB) {
		t.Fatal("Pressed false immediately after rising edge")
	}
	if pad.Pressed(ButtonB) {
		t.Error("Pressed true twice for a single edge")
	}
	if !pad.Held(ButtonB) {
		t.Error("Held false while button is down")
	}

	// Holding without release produces no new edge.
	pad.SetHeld(ButtonB, true)
	if pad.Pressed(ButtonB) {
		t.Error("Pressed true without a release in between")
	}
}
