package testing

import (
	"errors"
	"testing"
	"time"

	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/tween"
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: engine did not settle")

// Tester drives a tween engine with a fake clock and manual frames, and
// records events, errors, and writes for assertions.
type Tester struct {
	clock  *FakeClock
	frames *ManualFrames
	engine *tween.Engine
	events *Recorder
	trace  *Trace
	epoch  time.Time

	frame       *TraceFrame
	errs        []*motionerrors.MotionError
	panics      []*motionerrors.PanicError
	prevHandler motionerrors.ErrorHandler
}

// NewTester creates a tester around an engine built from cfg. The clock,
// frames, and emitter of cfg are replaced by the tester's own. Call Cleanup
// when done, or use NewTesterWithT instead.
func NewTester(cfg tween.Config) *Tester {
	clk := NewFakeClock()
	t := &Tester{
		clock:  clk,
		frames: NewManualFrames(clk),
		events: &Recorder{},
		trace:  &Trace{},
		epoch:  clk.Now(),
	}
	cfg.Clock = clk
	cfg.Frames = t.frames
	cfg.Emitter = t.events
	t.engine = tween.NewEngine(cfg)
	t.prevHandler = motionerrors.SetHandler(t)
	return t
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t testing.TB) *Tester {
	tester := NewTester(tween.Config{})
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the global error handler.
func (t *Tester) Cleanup() {
	motionerrors.SetHandler(t.prevHandler)
}

// Engine returns the engine under test.
func (t *Tester) Engine() *tween.Engine { return t.engine }

// Clock returns the fake clock.
func (t *Tester) Clock() *FakeClock { return t.clock }

// Frames returns the manual frame requester.
func (t *Tester) Frames() *ManualFrames { return t.frames }

// Events returns the recorder receiving every lifecycle event.
func (t *Tester) Events() *Recorder { return t.events }

// Errors returns the errors reported while the tester was installed.
func (t *Tester) Errors() []*motionerrors.MotionError { return t.errs }

// Panics returns the panics reported while the tester was installed.
func (t *Tester) Panics() []*motionerrors.PanicError { return t.panics }

// Target creates a property bag whose writes are recorded in the trace.
func (t *Tester) Target(name string, initial map[string]any) *PropertyBag {
	b := NewPropertyBag(name, initial)
	b.onWrite = t.recordWrite
	return b
}

// Pump runs the frames requested so far and returns how many ran.
func (t *Tester) Pump() int {
	t.frame = &TraceFrame{At: t.clock.Now().Sub(t.epoch).String()}
	n := t.frames.Pump()
	if len(t.frame.Writes) > 0 {
		t.trace.Frames = append(t.trace.Frames, *t.frame)
	}
	t.frame = nil
	return n
}

// Advance moves the clock forward by d and pumps.
func (t *Tester) Advance(d time.Duration) int {
	t.clock.Advance(d)
	return t.Pump()
}

// PumpAndSettle pumps and advances by step until no frame is requested. It
// fails with ErrSettleTimeout when the engine is still running after timeout
// of fake time.
func (t *Tester) PumpAndSettle(step, timeout time.Duration) error {
	t.Pump()
	var waited time.Duration
	for t.frames.Pending() > 0 {
		if waited >= timeout {
			return ErrSettleTimeout
		}
		t.Advance(step)
		waited += step
	}
	return nil
}

// Trace returns the writes recorded so far, grouped by frame.
func (t *Tester) Trace() *Trace { return t.trace }

func (t *Tester) recordWrite(b *PropertyBag, property string, v any) {
	if t.frame == nil {
		return
	}
	t.frame.Writes = append(t.frame.Writes, TraceWrite{Target: b.Name, Property: property, Value: v})
}

// HandleError implements errors.ErrorHandler.
func (t *Tester) HandleError(err *motionerrors.MotionError) {
	t.errs = append(t.errs, err)
}

// HandlePanic implements errors.ErrorHandler.
func (t *Tester) HandlePanic(err *motionerrors.PanicError) {
	t.panics = append(t.panics, err)
}
