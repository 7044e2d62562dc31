package tween

import (
	"time"

	"github.com/go-drift/motion/pkg/easing"
	"github.com/go-drift/motion/pkg/value"
)

// record is one scheduled interpolation of a single property on a single
// target.
type record struct {
	id       ID
	target   any
	property string
	plan     value.Plan
	ease     easing.Func
	delay    time.Duration
	duration time.Duration

	state State
	// held records were created paused and wait for Start.
	held bool
	// start is assigned on the first tick, not at creation, so a record
	// created long before the engine ticks still runs its full delay.
	start    time.Time
	pausedAt time.Time

	out    any
	hasOut bool
	done   bool
	reason finishReason

	anim *Animation
}

func (r *record) runnable() bool {
	return !r.held && (r.state == Pending || r.state == Active)
}

// compute evaluates the record at now. Elapsed time is clamped to
// [0, duration] before it reaches the easing function, so the final
// evaluation sees exactly elapsed == duration.
func (r *record) compute(now time.Time) {
	raw := now.Sub(r.start) - r.delay
	elapsed := min(max(raw, 0), r.duration)
	r.out = r.plan.At(r.ease, millis(elapsed), millis(r.duration))
	r.hasOut = true
	r.done = raw >= r.duration
}

// settled reports whether r has written its final value and is only waiting
// to be reaped.
func (r *record) settled() bool {
	return r.state == Active && r.done && !r.hasOut
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
