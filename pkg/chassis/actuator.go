package chassis

// Actuator accepts a signed target velocity in device units
// [-200, 200]. Implementations wrap real hardware or, in dev mode,
// record the commanded value.
type Actuator interface {
	SetVelocity(v float64)
	Velocity() float64
}

// DevActuator records the last commanded velocity without touching
// hardware. Used in dev mode and tests.
type DevActuator struct {
	v float64
}

func (d *DevActuator) SetVelocity(v float64) { d.v = v }
func (d *DevActuator) Velocity() float64     { return d.v }

// mount pairs an actuator with its registration-time polarity.
type mount struct {
	act      Actuator
	reversed bool
}

func (m mount) set(v float64) {
	if m.reversed {
		v = -v
	}
	// Clamp to the device range before writing.
	if v > MaxVelocity {
		v = MaxVelocity
	} else if v < -MaxVelocity {
		v = -MaxVelocity
	}
	m.act.SetVelocity(v)
}
