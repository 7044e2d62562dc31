package tween

import (
	"time"

	"github.com/go-drift/motion/pkg/event"
)

// Animation is the handle for the records created by one call to
// [Engine.Animate]. All methods are safe to call on a nil *Animation and do
// nothing.
type Animation struct {
	engine    *Engine
	name      string
	records   []*record
	remaining int

	started      bool
	stopped      bool
	completedAny bool

	listeners *event.Dispatcher
}

func newAnimation(e *Engine) *Animation {
	return &Animation{engine: e, listeners: event.NewDispatcher()}
}

// Name returns the name the animation was registered under.
func (a *Animation) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// IDs returns the ids of the animation's records that are still registered.
func (a *Animation) IDs() []ID {
	if a == nil {
		return nil
	}
	var ids []ID
	for _, r := range a.records {
		if r.state != Complete {
			ids = append(ids, r.id)
		}
	}
	return ids
}

// Done reports whether every record has finished, for whatever reason.
func (a *Animation) Done() bool {
	return a == nil || a.remaining == 0
}

// On registers a listener for events of this animation's records and for
// the animation-level events.
func (a *Animation) On(name string, fn event.Listener) func() {
	if a == nil {
		return func() {}
	}
	return a.listeners.On(name, fn)
}

// Start runs records created with Options.Paused.
func (a *Animation) Start() bool {
	if a == nil {
		return false
	}
	ok := false
	for _, id := range a.IDs() {
		if a.engine.Start(id) {
			ok = true
		}
	}
	return ok
}

// Pause pauses every running record.
func (a *Animation) Pause() bool {
	return a.each(a.engineOp((*Engine).Pause), event.AnimationPause)
}

// Resume resumes every paused record.
func (a *Animation) Resume() bool {
	return a.each(a.engineOp((*Engine).Resume), event.AnimationResume)
}

// Stop stops every remaining record. No completion event fires.
func (a *Animation) Stop() bool {
	if a == nil || a.remaining == 0 {
		return false
	}
	a.stopped = true
	return a.each(a.engineOp((*Engine).Stop), event.AnimationStop)
}

func (a *Animation) engineOp(op func(*Engine, ID) bool) func(ID) bool {
	return func(id ID) bool {
		return op(a.engine, id)
	}
}

func (a *Animation) each(op func(ID) bool, name string) bool {
	if a == nil {
		return false
	}
	ok := false
	for _, id := range a.IDs() {
		if op(id) {
			ok = true
		}
	}
	if ok {
		a.emit(name, a.engine.clock.Now())
	}
	return ok
}

func (a *Animation) recordStarted(now time.Time) {
	if a.started {
		return
	}
	a.started = true
	a.emit(event.AnimationStart, now)
}

func (a *Animation) recordFinished(r *record, now time.Time) {
	a.remaining--
	if r.reason == finishCompleted {
		a.completedAny = true
	}
	if a.remaining == 0 && !a.stopped && a.completedAny {
		a.emit(event.AnimationComplete, now)
	}
}

func (a *Animation) emit(name string, now time.Time) {
	a.engine.deliver(event.Event{Name: name, Animation: a.name, Time: now}, a)
}
