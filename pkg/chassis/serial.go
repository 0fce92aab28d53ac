package chassis

import (
	"context"
	"fmt"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

const (
	busBaudRate = 1_000_000

	// Velocity commands are realized as timed position steps, since
	// the servo bus exposes position moves only.
	stepInterval = 20 * time.Millisecond
	ticksPerUnit = 2.0 // raw position ticks per device velocity unit per step
)

// Bank is a serial servo bus exposing one Actuator per servo ID.
type Bank struct {
	bus    *feetech.Bus
	servos map[int]*feetech.Servo
	acts   map[int]*servoActuator
}

// OpenBank opens the serial bus on port and scans for servos in the
// inclusive ID range.
func OpenBank(port string, minID, maxID int) (*Bank, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: busBaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	found, err := bus.Scan(ctx, minID, maxID)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("scan bus: %w", err)
	}

	b := &Bank{
		bus:    bus,
		servos: make(map[int]*feetech.Servo, len(found)),
		acts:   make(map[int]*servoActuator, len(found)),
	}
	for _, s := range found {
		servo := feetech.NewServo(bus, s.ID, s.Model)
		pos, err := servo.Position(ctx)
		if err != nil {
			bus.Close()
			return nil, fmt.Errorf("read servo %d: %w", s.ID, err)
		}
		b.servos[s.ID] = servo
		b.acts[s.ID] = &servoActuator{servo: servo, pos: float64(pos)}
	}
	return b, nil
}

// Actuator returns the actuator for a servo ID, or nil if the scan did
// not find it.
func (b *Bank) Actuator(id int) Actuator {
	a, ok := b.acts[id]
	if !ok {
		return nil
	}
	return a
}

// IDs returns the servo IDs found on the bus.
func (b *Bank) IDs() []int {
	ids := make([]int, 0, len(b.servos))
	for id := range b.servos {
		ids = append(ids, id)
	}
	return ids
}

// EnableAll enables torque on every servo.
func (b *Bank) EnableAll(ctx context.Context) error {
	for id, s := range b.servos {
		if err := s.Enable(ctx); err != nil {
			return fmt.Errorf("enable servo %d: %w", id, err)
		}
	}
	return nil
}

// DisableAll disables torque on every servo.
func (b *Bank) DisableAll(ctx context.Context) error {
	for id, s := range b.servos {
		if err := s.Disable(ctx); err != nil {
			return fmt.Errorf("disable servo %d: %w", id, err)
		}
	}
	return nil
}

// Close closes the bus connection.
func (b *Bank) Close() error {
	return b.bus.Close()
}

// servoActuator adapts a position-move servo to the velocity Actuator
// contract by integrating the commanded velocity into position targets.
type servoActuator struct {
	servo *feetech.Servo
	pos   float64 // estimated position, advanced by commanded steps
	v     float64
}

func (a *servoActuator) SetVelocity(v float64) {
	a.v = v
	if v == 0 {
		return
	}
	a.pos += v * ticksPerUnit
	ctx, cancel := context.WithTimeout(context.Background(), stepInterval)
	defer cancel()
	a.servo.SetPositionWithTime(ctx, int(a.pos), int(stepInterval.Milliseconds()))
}

func (a *servoActuator) Velocity() float64 { return a.v }
