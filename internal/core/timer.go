package core

import "time"

// FixedStep accumulates real frame time and converts it into a whole number
// of uniform simulation steps.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time

	// MaxSteps caps how many steps one Advance call may run. Surplus time is
	// dropped so a slow machine does not fall further and further behind.
	// Zero means no cap.
	MaxSteps int
}

// NewFixedStep constructs a FixedStep controller for the given step length.
func NewFixedStep(step time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetStep(step)
	return fs
}

// SetStep changes the step length. Non-positive values fall back to 60 Hz.
func (f *FixedStep) SetStep(step time.Duration) {
	if step <= 0 {
		step = time.Second / 60
	}
	f.step = step
}

// Step reports the configured step length.
func (f *FixedStep) Step() time.Duration { return f.step }

// Pending reports the time left in the accumulator.
func (f *FixedStep) Pending() time.Duration { return f.accumulator }

// Advance adds delta to the accumulator and calls fn once for every whole
// step it holds. It returns the number of steps taken.
func (f *FixedStep) Advance(delta time.Duration, fn func()) int {
	if delta > 0 {
		f.accumulator += delta
	}
	steps := 0
	for f.accumulator >= f.step {
		if f.MaxSteps > 0 && steps >= f.MaxSteps {
			f.accumulator %= f.step
			break
		}
		fn()
		f.accumulator -= f.step
		steps++
	}
	return steps
}

// Elapsed returns the wall-clock time since the previous call. The first
// call returns zero.
func (f *FixedStep) Elapsed() time.Duration {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	delta := now.Sub(f.last)
	f.last = now
	return delta
}
