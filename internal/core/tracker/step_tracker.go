package tracker

import "math"

// StepTracker turns cumulative counter readings into a count relative to
// the first reading seen after Rearm. The reported count never decreases
// until the tracker is rearmed.
//
// A StepTracker is not safe for concurrent use; callers serialize access.
type StepTracker struct {
	baseline    float64
	lastRaw     float64
	hasBaseline bool
	steps       int
}

func NewStepTracker() *StepTracker {
	return &StepTracker{}
}

// Rearm forgets the baseline. The next reading starts a new count at zero.
func (t *StepTracker) Rearm() {
	t.baseline = 0
	t.lastRaw = 0
	t.hasBaseline = false
	t.steps = 0
}

// OnReading applies a cumulative reading and returns the relative count.
// Non-finite readings are ignored. A reading below the previous one means
// the hardware counter was reset: the count holds its last value and
// continues from the new epoch.
func (t *StepTracker) OnReading(cumulative float64) int {
	if math.IsNaN(cumulative) || math.IsInf(cumulative, 0) {
		return t.steps
	}

	switch {
	case !t.hasBaseline:
		t.baseline = cumulative
		t.hasBaseline = true
	case cumulative < t.lastRaw:
		t.baseline = cumulative - float64(t.steps)
	}
	t.lastRaw = cumulative

	delta := int(math.Trunc(cumulative - t.baseline))
	if delta > t.steps {
		t.steps = delta
	}
	return t.steps
}

// Steps reports the current relative count, 0 before any reading.
func (t *StepTracker) Steps() int {
	return t.steps
}
