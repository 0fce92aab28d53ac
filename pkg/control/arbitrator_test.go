package control

import (
	"testing"

	"github.com/gwillem/fieldbot/pkg/input"
)

func newArbRig() (*Arbitrator, *MacroSystem, *input.SimGamepad) {
	macros := newTestMacroSystem()
	pad := input.NewSimGamepad()
	mapper := input.NewMapper("input", pad)
	mapper.Initialize()
	a := NewArbitrator("arbitrator", macros, mapper)
	a.Initialize()
	return a, macros, pad
}

func TestArbitrator_MacroSuppressesInput(t *testing.T) {
	a, macros, pad := newArbRig()

	inputFired := 0
	a.mapper.Bind("b", input.Binding{Kind: input.KindButton, Buttons: []input.Button{input.ButtonA}},
		func() { inputFired++ })

	macroTicks := 0
	macros.Register("run", NewSequence(func() bool {
		macroTicks++
		return macroTicks >= 2
	}))
	macros.Start("run")

	// While the macro runs, a pending button press must not fire.
	pad.Tap(input.ButtonA)
	a.Update()
	if inputFired != 0 {
		t.Fatal("operator input fired while macro active")
	}
	if macroTicks != 1 {
		t.Fatalf("macro advanced %d ticks, want 1", macroTicks)
	}

	a.Update() // macro completes this tick
	if macros.Active() {
		t.Fatal("macro still active after completion")
	}

	// Control returns to the mapper; the edge latched earlier fires now.
	a.Update()
	if inputFired != 1 {
		t.Errorf("input fired %d times after macro finished, want 1", inputFired)
	}
}

func TestArbitrator_DisableCascades(t *testing.T) {
	a, macros, _ := newArbRig()
	macros.Register("run", NewSequence(func() bool { return false }))
	macros.Start("run")

	a.Disable()

	if a.Enabled() {
		t.Error("arbitrator enabled after Disable")
	}
	if macros.Enabled() {
		t.Error("macro system enabled after arbitrator Disable")
	}
	if macros.Active() {
		t.Error("macro still active after cascade")
	}
	if a.mapper.Enabled() {
		t.Error("mapper enabled after arbitrator Disable")
	}
}
