package control

import (
	"github.com/gwillem/fieldbot/pkg/core"
	"github.com/gwillem/fieldbot/pkg/input"
)

// Arbitrator routes control each tick: while a macro is running it
// updates only the macro system and operator input is fully
// suppressed; otherwise it updates only the input mapper.
type Arbitrator struct {
	core.Base
	macros *MacroSystem
	mapper *input.Mapper
}

// NewArbitrator returns an arbitrator over the given macro system and
// input mapper.
func NewArbitrator(name string, macros *MacroSystem, mapper *input.Mapper) *Arbitrator {
	return &Arbitrator{Base: core.NewBase(name), macros: macros, mapper: mapper}
}

// Role declares the arbitration capability for registry lookup.
func (a *Arbitrator) Role() core.Role { return core.RoleArbitrator }

// Macros returns the macro system the arbitrator routes to.
func (a *Arbitrator) Macros() *MacroSystem { return a.macros }

// Mapper returns the input mapper the arbitrator routes to.
func (a *Arbitrator) Mapper() *input.Mapper { return a.mapper }

func (a *Arbitrator) Update() {
	if a.macros.Active() {
		a.macros.Update()
		return
	}
	a.mapper.Update()
}

// Disable disables the arbitrator and cascades to both subsystems it
// owns the ticks of.
func (a *Arbitrator) Disable() {
	a.Base.Disable()
	a.macros.Disable()
	a.mapper.Disable()
}
