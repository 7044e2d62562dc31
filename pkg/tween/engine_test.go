package tween_test

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/easing"
	motionerrors "github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/event"
	motiontest "github.com/go-drift/motion/pkg/testing"
	"github.com/go-drift/motion/pkg/tween"
	"github.com/go-drift/motion/pkg/value"
	"github.com/google/go-cmp/cmp"
)

func linear(d time.Duration) tween.Options {
	return tween.Options{Duration: d, Easing: "linear"}
}

func mustAnimate(t *testing.T, e *tween.Engine, targets any, spec tween.Spec, opts tween.Options) *tween.Animation {
	t.Helper()
	a, err := e.Animate(targets, spec, opts)
	if err != nil {
		t.Fatalf("Animate: %v", err)
	}
	return a
}

func TestOpacityEndToEnd(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", nil)

	a := mustAnimate(t, e, box, tween.Spec{
		"opacity": tween.ValueSpec{From: 0, To: 1},
	}, linear(time.Second))

	tester.Pump()
	if got := box.Get("opacity"); got != 0.0 {
		t.Errorf("opacity at 0ms = %v, want 0", got)
	}

	tester.Advance(500 * time.Millisecond)
	if got := box.Get("opacity").(float64); got < 0.49 || got > 0.51 {
		t.Errorf("opacity at 500ms = %v, want ~0.5", got)
	}

	tester.Advance(500 * time.Millisecond)
	if got := box.Get("opacity"); got != 1.0 {
		t.Errorf("opacity at 1000ms = %v, want exactly 1", got)
	}
	if !a.Done() || e.Len() != 0 {
		t.Errorf("record should be reaped after its final sample: done=%v len=%d", a.Done(), e.Len())
	}
	if e.Active() || tester.Frames().Pending() != 0 {
		t.Error("engine should be idle after the last record completes")
	}

	want := []string{
		event.TweenStart, event.AnimationStart,
		event.TweenComplete, event.AnimationComplete,
	}
	if diff := cmp.Diff(want, tester.Events().Names()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDimensionEndToEnd(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	box := tester.Target("box", map[string]any{"width": "0px"})

	mustAnimate(t, tester.Engine(), box, tween.Spec{"width": "100px"}, tween.Options{Duration: 300 * time.Millisecond})
	if err := tester.PumpAndSettle(16*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}

	re := regexp.MustCompile(`^-?\d+(\.\d+)?px$`)
	writes := box.Writes("width")
	if len(writes) < 10 {
		t.Fatalf("only %d writes", len(writes))
	}
	for _, w := range writes {
		if s, ok := w.(string); !ok || !re.MatchString(s) {
			t.Errorf("write %#v does not match %s", w, re)
		}
	}
	if last := writes[len(writes)-1]; last != "100px" {
		t.Errorf("last write = %v, want 100px", last)
	}
}

func TestZeroDurationCompletesOnFirstTick(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	box := tester.Target("box", map[string]any{"x": 5.0})

	mustAnimate(t, tester.Engine(), box, tween.Spec{"x": 42}, tween.Options{})
	tester.Pump()

	if diff := cmp.Diff([]any{42.0}, box.Writes("x")); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
	if n := tester.Events().Count(event.TweenComplete); n != 1 {
		t.Errorf("complete fired %d times, want 1", n)
	}
	tester.Advance(time.Second)
	if n := tester.Events().Count(event.TweenComplete); n != 1 {
		t.Errorf("complete fired %d times after settling, want 1", n)
	}
}

func TestCollisionReplacesWithoutCompleting(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	first := mustAnimate(t, e, box, tween.Spec{"x": 100}, linear(time.Second))
	tester.Pump()
	tester.Advance(100 * time.Millisecond)
	writesBefore := len(box.Writes("x"))

	second := mustAnimate(t, e, box, tween.Spec{"x": 0}, linear(100*time.Millisecond))
	if !first.Done() {
		t.Error("superseded animation should be done immediately")
	}
	if e.Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Len())
	}

	if err := tester.PumpAndSettle(10*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}
	if !second.Done() {
		t.Error("replacing animation should complete")
	}
	if n := tester.Events().Count(event.TweenComplete); n != 1 {
		t.Errorf("complete fired %d times, want only the replacing record", n)
	}
	if n := tester.Events().Count(event.AnimationComplete); n != 1 {
		t.Errorf("animationcomplete fired %d times, want 1", n)
	}
	if got := box.Get("x"); got != 0.0 {
		t.Errorf("x = %v, want 0", got)
	}
	// The superseded record never wrote again: every later write belongs to
	// the replacement and moves toward 0.
	for _, w := range box.Writes("x")[writesBefore:] {
		if w.(float64) > 10 {
			t.Errorf("unexpected write %v from superseded record", w)
		}
	}
}

func TestCollisionsAllowedLastAppliedWins(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	mustAnimate(t, e, box, tween.Spec{"x": tween.ValueSpec{From: 0, To: 100}}, linear(time.Second))
	opts := linear(time.Second)
	opts.AllowCollisions = true
	mustAnimate(t, e, box, tween.Spec{"x": tween.ValueSpec{From: 1000, To: 2000}}, opts)
	if e.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 stacked records", e.Len())
	}

	tester.Pump()
	tester.Advance(500 * time.Millisecond)
	writes := box.Writes("x")
	if diff := cmp.Diff([]any{0.0, 1000.0, 50.0, 1500.0}, writes); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
	if got := box.Get("x"); got != 1500.0 {
		t.Errorf("x = %v, want the later record's value", got)
	}
}

func TestPauseResume(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	a := mustAnimate(t, e, box, tween.Spec{"x": 100}, linear(time.Second))
	id := a.IDs()[0]
	tester.Pump()
	tester.Advance(400 * time.Millisecond)

	if !e.Pause(id) {
		t.Fatal("Pause() = false")
	}
	if e.Pause(id) {
		t.Error("second Pause() should be a no-op")
	}
	if st, _ := e.State(id); st != tween.Paused {
		t.Errorf("state = %s, want paused", st)
	}
	if n := tester.Events().Count(event.TweenPause); n != 1 {
		t.Errorf("pause fired %d times, want 1", n)
	}

	tester.Pump()
	tester.Advance(5 * time.Second)
	if tester.Frames().Pending() != 0 {
		t.Error("engine should idle while everything is paused")
	}
	if got := box.Get("x"); got != 40.0 {
		t.Errorf("x while paused = %v, want 40", got)
	}

	if !e.Resume(id) {
		t.Fatal("Resume() = false")
	}
	if e.Resume(id) {
		t.Error("second Resume() should be a no-op")
	}
	tester.Pump()
	if got := box.Get("x"); got != 40.0 {
		t.Errorf("x right after resume = %v, want 40", got)
	}
	tester.Advance(600 * time.Millisecond)
	if got := box.Get("x"); got != 100.0 {
		t.Errorf("x = %v, want 100", got)
	}
	if !a.Done() {
		t.Error("animation should be done")
	}
}

func TestPausePendingStartsClock(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	a := mustAnimate(t, e, box, tween.Spec{"x": 100}, linear(time.Second))
	if !a.Pause() {
		t.Fatal("Pause() on a pending animation = false")
	}
	want := []string{event.TweenStart, event.AnimationStart, event.TweenPause, event.AnimationPause}
	if diff := cmp.Diff(want, tester.Events().Names()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	e := motiontest.NewTesterWithT(t).Engine()
	for name, op := range map[string]func(tween.ID) bool{
		"Start": e.Start, "Pause": e.Pause, "Resume": e.Resume, "Stop": e.Stop,
	} {
		if op(99) {
			t.Errorf("%s(99) = true for an unknown id", name)
		}
	}
	if _, ok := e.State(99); ok {
		t.Error("State(99) reported a record")
	}
}

func TestIDReuse(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	a := tester.Target("a", map[string]any{"x": 0.0})
	b := tester.Target("b", map[string]any{"x": 0.0})

	first := mustAnimate(t, e, a, tween.Spec{"x": 1}, tween.Options{})
	second := mustAnimate(t, e, b, tween.Spec{"x": 1}, linear(time.Second))
	id1, id2 := first.IDs()[0], second.IDs()[0]
	if id1 == id2 {
		t.Fatalf("simultaneous records share id %d", id1)
	}

	tester.Pump()
	if !first.Done() {
		t.Fatal("zero-duration record should be reaped")
	}
	third := mustAnimate(t, e, a, tween.Spec{"x": 2}, linear(time.Second))
	if got := third.IDs()[0]; got != id1 {
		t.Errorf("next id = %d, want recycled %d", got, id1)
	}
}

func TestDelay(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	box := tester.Target("box", map[string]any{"x": 0.0})

	mustAnimate(t, tester.Engine(), box, tween.Spec{"x": 100}, tween.Options{
		Delay:    200 * time.Millisecond,
		Duration: 100 * time.Millisecond,
		Easing:   "linear",
	})

	steps := []struct {
		advance time.Duration
		want    float64
	}{
		{0, 0},
		{200 * time.Millisecond, 0},
		{50 * time.Millisecond, 50},
		{50 * time.Millisecond, 100},
	}
	for _, s := range steps {
		tester.Advance(s.advance)
		if got := box.Get("x"); got != s.want {
			t.Errorf("after +%v: x = %v, want %v", s.advance, got, s.want)
		}
	}
	if tester.Engine().Len() != 0 {
		t.Error("record should be done")
	}
}

func TestInvalidSpecs(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0, "color": "#000"})

	tests := []struct {
		name    string
		targets any
		spec    tween.Spec
		opts    tween.Options
		want    error
	}{
		{"unknown easing", box, tween.Spec{"x": 1}, tween.Options{Easing: "wobble"}, easing.ErrUnknownEasing},
		{"unknown property ease", box, tween.Spec{"x": tween.ValueSpec{To: 1, Ease: "wobble"}}, tween.Options{}, easing.ErrUnknownEasing},
		{"unreadable start", box, tween.Spec{"missing": 1}, tween.Options{}, motiontest.ErrNoProperty},
		{"malformed color", box, tween.Spec{"color": "#12"}, tween.Options{}, value.ErrInvalidValue},
		{"malformed dimension", box, tween.Spec{"x": "12abc"}, tween.Options{}, value.ErrInvalidValue},
		{"NaN end", box, tween.Spec{"x": math.NaN()}, tween.Options{}, value.ErrInvalidValue},
		{"infinite end", box, tween.Spec{"x": math.Inf(1)}, tween.Options{}, value.ErrInvalidValue},
		{"out of range number", box, tween.Spec{"x": "1e400"}, tween.Options{}, value.ErrInvalidValue},
		{"overflowing delta", tester.Target("wide", map[string]any{"w": "-1e308px"}), tween.Spec{"w": "1e308px"}, tween.Options{}, value.ErrInvalidValue},
		{"no end", box, tween.Spec{"x": tween.ValueSpec{From: 1}}, tween.Options{}, tween.ErrInvalidSpec},
		{"to and by", box, tween.Spec{"x": map[string]any{"to": 1, "by": 2}}, tween.Options{}, tween.ErrInvalidSpec},
		{"unknown key", box, tween.Spec{"x": map[string]any{"too": 1}}, tween.Options{}, tween.ErrInvalidSpec},
		{"relative keyword", tester.Target("k", map[string]any{"display": "none"}), tween.Spec{"display": tween.ValueSpec{By: 1}}, tween.Options{}, value.ErrInvalidValue},
		{"negative duration", box, tween.Spec{"x": 1}, tween.Options{Duration: -1}, tween.ErrInvalidSpec},
		{"no properties", box, tween.Spec{}, tween.Options{}, tween.ErrInvalidSpec},
		{"no targets", nil, tween.Spec{"x": 1}, tween.Options{}, tween.ErrInvalidSpec},
		{"empty target list", []any{}, tween.Spec{"x": 1}, tween.Options{}, tween.ErrInvalidSpec},
		{"uncomparable target", map[string]any{}, tween.Spec{"x": 1}, tween.Options{}, tween.ErrInvalidSpec},
		{"struct holding a slice", struct{ v any }{[]int{1}}, tween.Spec{"x": 1}, tween.Options{}, tween.ErrInvalidSpec},
		{"unsupported target", new(int), tween.Spec{"x": 1}, tween.Options{}, tween.ErrUnsupportedTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Animate(tt.targets, tt.spec, tt.opts)
			if !errors.Is(err, tween.ErrInvalidSpec) {
				t.Errorf("err = %v, want ErrInvalidSpec", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if e.Len() != 0 || tester.Frames().Requests() != 0 {
		t.Errorf("failed requests registered records: len=%d frames=%d", e.Len(), tester.Frames().Requests())
	}
}

func TestValidationIsAllOrNothing(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	good := tester.Target("good", map[string]any{"x": 0.0})
	bad := tester.Target("bad", nil)

	if _, err := e.Animate([]*motiontest.PropertyBag{good, bad}, tween.Spec{"x": 1}, tween.Options{}); err == nil {
		t.Fatal("expected an error for the unreadable target")
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

func TestDetachedTargetIsDropped(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	gone := tester.Target("gone", map[string]any{"x": 0.0})
	kept := tester.Target("kept", map[string]any{"x": 0.0})

	mustAnimate(t, e, []*motiontest.PropertyBag{gone, kept}, tween.Spec{"x": 100}, linear(100*time.Millisecond))
	tester.Pump()
	gone.Detach()

	if err := tester.PumpAndSettle(10*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}
	if got := kept.Get("x"); got != 100.0 {
		t.Errorf("kept.x = %v, want 100", got)
	}
	errs := tester.Errors()
	if len(errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(errs))
	}
	if errs[0].Kind != motionerrors.KindTarget || !errors.Is(errs[0], tween.ErrDetached) {
		t.Errorf("unexpected error %v", errs[0])
	}
	if n := tester.Events().Count(event.TweenComplete); n != 1 {
		t.Errorf("complete fired %d times, want 1 (only the kept target)", n)
	}
}

func TestPanickingTargetIsDropped(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0, "y": 0.0})
	box.PanicOn("x")

	mustAnimate(t, e, box, tween.Spec{"x": 1, "y": 1}, tween.Options{})
	tester.Pump()

	if got := box.Get("y"); got != 1.0 {
		t.Errorf("y = %v, want 1", got)
	}
	errs := tester.Errors()
	if len(errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(errs))
	}
	if errs[0].Kind != motionerrors.KindPanic || errs[0].Property != "x" || errs[0].StackTrace == "" {
		t.Errorf("error = %+v, want a KindPanic report for x with a stack", errs[0])
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

func TestStartingFromCompletionListener(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	a := mustAnimate(t, e, box, tween.Spec{"x": 100}, linear(100*time.Millisecond))
	var chained *tween.Animation
	a.On(event.AnimationComplete, func(event.Event) {
		var err error
		chained, err = e.Animate(box, tween.Spec{"x": 0}, linear(100*time.Millisecond))
		if err != nil {
			t.Errorf("Animate from listener: %v", err)
		}
	})

	if err := tester.PumpAndSettle(25*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}
	if chained == nil || !chained.Done() {
		t.Fatal("chained animation did not run to completion")
	}
	if got := box.Get("x"); got != 0.0 {
		t.Errorf("x = %v, want 0", got)
	}
}

func TestReplacingFinishedSiblingStillCompletes(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	a := tester.Target("a", map[string]any{"x": 0.0})
	b := tester.Target("b", map[string]any{"x": 0.0})

	mustAnimate(t, e, []any{a, b}, tween.Spec{"x": 10}, linear(100*time.Millisecond))
	e.OnTarget(a, event.TweenComplete, func(event.Event) {
		if _, err := e.Animate(b, tween.Spec{"x": 20}, linear(100*time.Millisecond)); err != nil {
			t.Errorf("Animate from listener: %v", err)
		}
	})

	if err := tester.PumpAndSettle(25*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}
	completes := 0
	for _, ev := range tester.Events().Events() {
		if ev.Name == event.TweenComplete && ev.Target == any(b) {
			completes++
		}
	}
	// b wrote its end value before the listener replaced it.
	if completes != 2 {
		t.Errorf("b completed %d times, want 2", completes)
	}
	if n := tester.Events().Count(event.AnimationComplete); n != 2 {
		t.Errorf("animationcomplete fired %d times, want 2", n)
	}
	if got := b.Get("x"); got != 20.0 {
		t.Errorf("b.x = %v, want 20", got)
	}
}

func TestStopSiblingFromStartListener(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	a := tester.Target("a", map[string]any{"x": 0.0})
	b := tester.Target("b", map[string]any{"x": 0.0})

	anim := mustAnimate(t, e, []any{a, b}, tween.Spec{"x": 1}, linear(time.Second))
	ids := anim.IDs()
	e.OnTarget(a, event.TweenStart, func(event.Event) {
		e.Stop(ids[1])
	})

	tester.Pump()
	if len(b.Writes("x")) != 0 {
		t.Errorf("stopped sibling wrote %v", b.Writes("x"))
	}
	if n := tester.Events().Count(event.TweenStop); n != 1 {
		t.Errorf("stop fired %d times, want 1", n)
	}
}

func TestRelativeValues(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	box := tester.Target("box", map[string]any{"x": 10.0, "w": "10px", "h": "5em"})

	mustAnimate(t, tester.Engine(), box, tween.Spec{
		"x": tween.ValueSpec{By: 5},
		"w": map[string]any{"add": "-4px"},
		"h": "+=1.5em",
	}, tween.Options{})
	tester.Pump()

	want := map[string]any{"x": 15.0, "w": "6px", "h": "6.5em"}
	for prop, v := range want {
		if got := box.Get(prop); got != v {
			t.Errorf("%s = %#v, want %#v", prop, got, v)
		}
	}
}

func TestStepFallback(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	box := tester.Target("box", map[string]any{"display": "none", "left": "10px"})

	mustAnimate(t, tester.Engine(), box, tween.Spec{
		"display": "block",
		"left":    "50%",
	}, linear(100*time.Millisecond))
	if err := tester.PumpAndSettle(25*time.Millisecond, time.Second); err != nil {
		t.Fatal(err)
	}

	display := box.Writes("display")
	for _, w := range display[:len(display)-1] {
		if w != "none" {
			t.Errorf("display switched early to %v", w)
		}
	}
	if got := box.Get("display"); got != "block" {
		t.Errorf("display = %v, want block", got)
	}
	if got := box.Get("left"); got != "50%" {
		t.Errorf("left = %v, want 50%%", got)
	}
}

func TestStopKeepsValue(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	a := mustAnimate(t, e, box, tween.Spec{"x": 100}, linear(time.Second))
	tester.Pump()
	tester.Advance(250 * time.Millisecond)
	if !a.Stop() {
		t.Fatal("Stop() = false")
	}
	if a.Stop() {
		t.Error("second Stop() should be a no-op")
	}
	tester.Advance(time.Second)

	if got := box.Get("x"); got != 25.0 {
		t.Errorf("x = %v, want 25", got)
	}
	names := tester.Events().Names()
	want := []string{event.TweenStart, event.AnimationStart, event.TweenStop, event.AnimationStop}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestPausedOption(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	a := mustAnimate(t, e, box, tween.Spec{"x": 1}, tween.Options{Paused: true})
	if tester.Frames().Requests() != 0 {
		t.Error("held animation should not request frames")
	}
	if e.Pause(a.IDs()[0]) {
		t.Error("Pause() on a held record should be a no-op")
	}
	if !a.Start() {
		t.Fatal("Start() = false")
	}
	if a.Start() {
		t.Error("second Start() should be a no-op")
	}
	tester.Pump()
	if got := box.Get("x"); got != 1.0 {
		t.Errorf("x = %v, want 1", got)
	}
}

func TestNamedAnimations(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	a := mustAnimate(t, e, box, tween.Spec{"x": 1}, linear(time.Second))
	e.RegisterAnimation("slide", a)
	tester.Pump()

	if e.Animation("slide") != a {
		t.Fatal("lookup by name failed")
	}
	if !e.Animation("slide").Pause() {
		t.Error("Pause() by name failed")
	}
	if e.Animation("missing").Pause() || e.Animation("missing").Stop() {
		t.Error("operations on unknown names should be no-ops")
	}

	events := tester.Events().Events()
	last := events[len(events)-1]
	if last.Name != event.AnimationPause || last.Animation != "slide" {
		t.Errorf("last event = %v, want animationpause for slide", last)
	}

	e.Remove("slide")
	if e.Animation("slide") != nil {
		t.Error("Remove() did not forget the name")
	}
}

func TestStartIsIdempotent(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0, "y": 0.0})

	mustAnimate(t, e, box, tween.Spec{"x": 1}, linear(time.Second))
	mustAnimate(t, e, box, tween.Spec{"y": 1}, linear(time.Second))
	if got := tester.Frames().Pending(); got != 1 {
		t.Errorf("pending frames = %d, want 1", got)
	}
	tester.Pump()
	if got := tester.Frames().Pending(); got != 1 {
		t.Errorf("pending frames after tick = %d, want 1", got)
	}
}

func TestCustomEasing(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0, "y": 0.0})

	half := func(t, b, c, d float64) float64 {
		if t >= d {
			return b + c
		}
		return b + c/2
	}
	if err := e.RegisterEasing("half", half); err != nil {
		t.Fatal(err)
	}
	mustAnimate(t, e, box, tween.Spec{
		"x": 100,
		"y": tween.ValueSpec{To: 100, Ease: easing.Func(half)},
	}, tween.Options{Duration: time.Second, Easing: "half"})
	tester.Pump()
	tester.Advance(10 * time.Millisecond)

	if x, y := box.Get("x"), box.Get("y"); x != 50.0 || y != 50.0 {
		t.Errorf("x, y = %v, %v; want 50, 50", x, y)
	}
}

func TestColorTween(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	box := tester.Target("box", map[string]any{"color": "#000000"})

	mustAnimate(t, tester.Engine(), box, tween.Spec{"color": "#ffffff"}, linear(time.Second))
	tester.Pump()
	tester.Advance(500 * time.Millisecond)
	if got := box.Get("color"); got != "#808080" {
		t.Errorf("color at 500ms = %v, want #808080", got)
	}
	tester.Advance(500 * time.Millisecond)
	if got := box.Get("color"); got != "#ffffff" {
		t.Errorf("color at 1000ms = %v, want #ffffff", got)
	}
}

func TestListenerPanicDoesNotStopTick(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	e.On(event.TweenStart, func(event.Event) { panic("listener bug") })
	mustAnimate(t, e, box, tween.Spec{"x": 1}, tween.Options{})
	tester.Pump()

	if got := box.Get("x"); got != 1.0 {
		t.Errorf("x = %v, want 1", got)
	}
	if len(tester.Panics()) != 1 {
		t.Errorf("reported %d panics, want 1", len(tester.Panics()))
	}
}

func TestFrameDelta(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	e := tester.Engine()
	box := tester.Target("box", map[string]any{"x": 0.0})

	mustAnimate(t, e, box, tween.Spec{"x": 1}, linear(time.Second))
	tester.Pump()
	tester.Advance(16 * time.Millisecond)
	if e.FrameDelta() != 16*time.Millisecond {
		t.Errorf("FrameDelta() = %v, want 16ms", e.FrameDelta())
	}
	if e.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", e.Ticks())
	}
}

func TestEngineRunsOwnLoop(t *testing.T) {
	e := tween.NewEngine(tween.Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- e.Run(ctx) }()

	box := motiontest.NewPropertyBag("box", map[string]any{"x": 0.0})
	done := make(chan struct{})
	e.Post(func() {
		a, err := e.Animate(box, tween.Spec{"x": 1}, linear(50*time.Millisecond))
		if err != nil {
			t.Error(err)
			close(done)
			return
		}
		a.On(event.AnimationComplete, func(event.Event) { close(done) })
	})

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("animation did not complete")
	}
	if got := box.Get("x"); got != 1.0 {
		t.Errorf("x = %v, want 1", got)
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestRunNeedsOwnLoop(t *testing.T) {
	e := motiontest.NewTesterWithT(t).Engine()
	if err := e.Run(context.Background()); err == nil {
		t.Error("Run() with external frames should fail")
	}
}

func TestEqualEndsRunFullDuration(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	box := tester.Target("box", map[string]any{"x": 5.0})

	a := mustAnimate(t, tester.Engine(), box, tween.Spec{"x": 5}, linear(200*time.Millisecond))
	tester.Pump()
	tester.Advance(100 * time.Millisecond)
	if a.Done() {
		t.Fatal("tween with equal ends finished early")
	}
	tester.Advance(100 * time.Millisecond)
	if !a.Done() {
		t.Fatal("tween did not finish after its duration")
	}
	for _, w := range box.Writes("x") {
		if w != 5.0 {
			t.Errorf("write %v, want 5", w)
		}
	}
}
