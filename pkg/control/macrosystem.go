package control

import (
	"github.com/gwillem/fieldbot/pkg/chassis"
	"github.com/gwillem/fieldbot/pkg/core"
)

// MacroSystem holds a catalog of named macros and runs at most one at a
// time. Stopping is a force-clear: no cancellation hook is invoked on
// the macro.
type MacroSystem struct {
	core.Base
	chassis *chassis.Controller
	macros  map[string]Macro
	active  string
}

// NewMacroSystem returns an empty macro catalog driving ch.
func NewMacroSystem(name string, ch *chassis.Controller) *MacroSystem {
	return &MacroSystem{
		Base:    core.NewBase(name),
		chassis: ch,
		macros:  make(map[string]Macro),
	}
}

// Role declares the macro capability for registry lookup.
func (s *MacroSystem) Role() core.Role { return core.RoleMacros }

// Chassis returns the controller macros drive.
func (s *MacroSystem) Chassis() *chassis.Controller { return s.chassis }

// Register adds a macro to the catalog, overwriting a same-name entry.
func (s *MacroSystem) Register(name string, m Macro) {
	s.macros[name] = m
}

// Start activates the named macro after resetting it. It returns false,
// with no state change, when the system is disabled, a macro is already
// running, or the name is unknown.
func (s *MacroSystem) Start(name string) bool {
	if !s.Enabled() || s.active != "" {
		return false
	}
	m, ok := s.macros[name]
	if !ok {
		return false
	}
	m.Reset()
	s.active = name
	return true
}

// Stop force-clears the active macro, if any.
func (s *MacroSystem) Stop() {
	s.active = ""
}

// Active reports whether a macro is running.
func (s *MacroSystem) Active() bool { return s.active != "" }

// ActiveName returns the running macro's name, or "".
func (s *MacroSystem) ActiveName() string { return s.active }

// Update advances the active macro one tick and clears it once it
// reports complete.
func (s *MacroSystem) Update() {
	if s.active == "" {
		return
	}
	m, ok := s.macros[s.active]
	if !ok {
		s.active = ""
		return
	}
	m.Execute()
	if m.Complete() {
		s.Stop()
	}
}

// Disable disables the system and force-clears any active macro.
func (s *MacroSystem) Disable() {
	s.Base.Disable()
	s.Stop()
}
