// Package control arbitrates the robot's actuators between live
// operator input and programmatic macro sequences, and provides the
// manual driving modes.
package control

// Macro is a named, resettable unit of work that can claim exclusive
// control of the actuators. Execute is called once per control tick
// while the macro is active; Complete reports whether it has finished;
// Reset returns it to its initial state so it can run again.
type Macro interface {
	Execute()
	Complete() bool
	Reset()
}

// Step is one resumable slice of a macro. It is called once per tick
// and returns true when its work is done.
type Step func() bool

// Sequence runs steps in order, advancing one tick-slice at a time, so
// a long motion inside a macro does not block the scheduler. A step
// that needs several ticks simply keeps returning false.
type Sequence struct {
	steps []Step
	idx   int
}

// NewSequence returns a macro that runs the steps in order.
func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

func (s *Sequence) Execute() {
	if s.idx >= len(s.steps) {
		return
	}
	if s.steps[s.idx]() {
		s.idx++
	}
}

func (s *Sequence) Complete() bool { return s.idx >= len(s.steps) }
func (s *Sequence) Reset()         { s.idx = 0 }

// Func wraps a deferred action that runs to full completion on its
// first Execute and immediately reports complete. If the action itself
// blocks (e.g. a closed-loop move), it occupies the whole tick budget
// for its duration; prefer Sequence for multi-tick work.
type Func struct {
	fn   func()
	done bool
}

// NewFunc returns a single-shot run-to-completion macro.
func NewFunc(fn func()) *Func {
	return &Func{fn: fn}
}

func (f *Func) Execute() {
	if !f.done {
		f.fn()
		f.done = true
	}
}

func (f *Func) Complete() bool { return f.done }
func (f *Func) Reset()         { f.done = false }
