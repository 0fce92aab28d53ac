package robot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/fieldbot/pkg/chassis"
	clamppkg "github.com/gwillem/fieldbot/pkg/clamp"
	"github.com/gwillem/fieldbot/pkg/core"
)

// State is a per-tick snapshot of the robot for display consumers.
type State struct {
	Pose        chassis.Pose
	Velocities  []float64
	Clamped     bool
	ActiveMacro string
	Timestamp   time.Time
}

// Loop drives the robot at a fixed cadence and publishes state and log
// messages on channels, for consumption by a UI.
type Loop struct {
	robot *Robot
	hz    int

	mu      sync.Mutex
	running bool

	stateCh chan State
	logCh   chan string
}

// NewLoop returns a loop ticking r at its configured frequency.
func NewLoop(r *Robot) *Loop {
	l := &Loop{
		robot:   r,
		hz:      r.Hz(),
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}

	// Surface clamp changes in the log stream.
	core.Subscribe(r.Bus(), clamppkg.TopicChanged, func(clamped bool) {
		if clamped {
			l.log("Clamp engaged")
		} else {
			l.log("Clamp released")
		}
	})

	return l
}

// States returns a channel that receives state updates.
func (l *Loop) States() <-chan State {
	return l.stateCh
}

// Logs returns a channel that receives log messages.
func (l *Loop) Logs() <-chan string {
	return l.logCh
}

// Hz returns the control frequency.
func (l *Loop) Hz() int {
	return l.hz
}

func (l *Loop) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case l.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start runs the control loop until ctx is canceled. On exit every
// subsystem is disabled.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return fmt.Errorf("already running")
	}
	l.running = true
	l.mu.Unlock()

	if l.robot.DevMode() {
		l.log("Dev mode: hardware calls suppressed")
	}
	l.log("Control loop started at %d Hz", l.hz)

	ticker := time.NewTicker(time.Second / time.Duration(l.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.shutdown()
			return ctx.Err()
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *Loop) tick() {
	l.robot.Update()

	ch := l.robot.Chassis()
	velocities := make([]float64, ch.ActuatorCount())
	for i := range velocities {
		velocities[i] = ch.Velocity(i)
	}

	l.sendState(State{
		Pose:        ch.Position(),
		Velocities:  velocities,
		Clamped:     l.robot.Clamp().Clamped(),
		ActiveMacro: l.robot.Macros().ActiveName(),
		Timestamp:   time.Now(),
	})
}

func (l *Loop) sendState(s State) {
	select {
	case l.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-l.stateCh:
		default:
		}
		l.stateCh <- s
	}
}

func (l *Loop) shutdown() {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()

	l.robot.Disabled()
	l.log("Control loop stopped")
}
