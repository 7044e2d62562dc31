// Package tween implements the tween engine: a registry of property
// interpolations driven by a frame scheduler.
//
// # Overview
//
// [Engine.Animate] turns a [Spec] into one record per (target, property)
// pair, resolving start values, end values, and easing up front so that
// every validation error is returned to the caller and the tick loop never
// sees malformed input. The engine then requests frames from its
// [frame.Requester] until no record is left running.
//
// Each tick runs three passes over a snapshot of the registry:
//
//  1. compute: every running record evaluates its eased value for the
//     current time, and records whose duration has elapsed are flagged;
//  2. apply: computed values are written to targets in insertion order, so
//     with collisions allowed the last record applied wins the tick;
//  3. reap: flagged records complete, leave the registry, free their ids,
//     and fire their completion events.
//
// Targets are only written during the apply pass. A target that fails to
// accept a write drops its record and is reported to the errors package;
// the remaining records are unaffected.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. All calls, including those made
// from event listeners, must happen on the goroutine that runs ticks. When
// the engine owns its frame loop (Config.Frames is nil), drive it with
// [Engine.Run] and make calls through [Engine.Post].
package tween

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/motion/pkg/easing"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/event"
	"github.com/go-drift/motion/pkg/frame"
	"github.com/go-drift/motion/pkg/value"
)

// DefaultEasing is the easing used when neither Options nor Config name one.
const DefaultEasing = "swing"

// Config wires an Engine to its collaborators. Zero fields get defaults.
type Config struct {
	// Clock supplies the tick time. Defaults to the system clock.
	Clock frame.Clock
	// Frames schedules ticks. When nil the engine creates its own
	// [frame.Loop], which must be driven with [Engine.Run].
	Frames frame.Requester
	// Accessor reads and writes target properties. Defaults to
	// [PropertiesAccessor].
	Accessor Accessor
	// Emitter receives every lifecycle event in addition to the engine's own
	// listeners.
	Emitter event.Emitter
	// Easings resolves easing names. Defaults to [easing.Default].
	Easings *easing.Registry
	// Handlers classifies values. Defaults to [value.NewHandlers].
	Handlers *value.Handlers
	// DefaultEasing names the easing used when Options.Easing is empty.
	DefaultEasing string
}

// Engine schedules and runs tweens.
type Engine struct {
	clock         frame.Clock
	frames        frame.Requester
	loop          *frame.Loop
	accessor      Accessor
	emitter       event.Emitter
	dispatcher    *event.Dispatcher
	easings       *easing.Registry
	handlers      *value.Handlers
	defaultEasing string

	reg   *registry
	named map[string]*Animation

	// running is set while a frame is requested and not yet delivered.
	running   bool
	lastTick  time.Time
	lastDelta time.Duration
	ticks     int
}

// NewEngine creates an engine from cfg.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		clock:         cfg.Clock,
		frames:        cfg.Frames,
		accessor:      cfg.Accessor,
		emitter:       cfg.Emitter,
		dispatcher:    event.NewDispatcher(),
		easings:       cfg.Easings,
		handlers:      cfg.Handlers,
		defaultEasing: cfg.DefaultEasing,
		reg:           newRegistry(),
		named:         make(map[string]*Animation),
	}
	if e.clock == nil {
		e.clock = frame.SystemClock{}
	}
	if e.frames == nil {
		e.loop = frame.NewLoop(frame.RefreshInterval)
		e.frames = e.loop
	}
	if e.accessor == nil {
		e.accessor = PropertiesAccessor{}
	}
	if e.easings == nil {
		e.easings = easing.Default()
	}
	if e.handlers == nil {
		e.handlers = value.NewHandlers()
	}
	if e.defaultEasing == "" {
		e.defaultEasing = DefaultEasing
	}
	return e
}

// Run drives the engine's own frame loop until ctx is done. It fails if the
// engine was configured with an external frame requester.
func (e *Engine) Run(ctx context.Context) error {
	if e.loop == nil {
		return fmt.Errorf("tween: engine uses an external frame requester")
	}
	return e.loop.Run(ctx)
}

// Post runs fn on the goroutine that runs ticks. Without an owned loop, fn
// runs immediately.
func (e *Engine) Post(fn func()) {
	if e.loop == nil {
		fn()
		return
	}
	e.loop.Post(fn)
}

// On registers a listener for every lifecycle event called name.
func (e *Engine) On(name string, fn event.Listener) func() {
	return e.dispatcher.On(name, fn)
}

// OnTarget registers a listener for lifecycle events of one target.
func (e *Engine) OnTarget(target any, name string, fn event.Listener) func() {
	return e.dispatcher.OnTarget(target, name, fn)
}

// RegisterEasing makes fn available to tweens under name.
func (e *Engine) RegisterEasing(name string, fn easing.Func) error {
	return e.easings.Register(name, fn)
}

// Easing returns the easing registered under name.
func (e *Engine) Easing(name string) (easing.Func, error) {
	return e.easings.Get(name)
}

// Animate starts tweening every property in spec on every target. targets is
// a single target or a slice of targets; targets must be comparable, which in
// practice means pointers.
//
// Every record is validated before any is registered. Unless
// opts.AllowCollisions is set, records already writing the same target and
// property are superseded: they stop immediately and never fire their
// completion events.
func (e *Engine) Animate(targets any, spec Spec, opts Options) (*Animation, error) {
	list, err := targetList(targets)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	if len(spec) == 0 {
		return nil, fmt.Errorf("%w: no properties", ErrInvalidSpec)
	}
	if opts.Duration < 0 || opts.Delay < 0 {
		return nil, fmt.Errorf("%w: negative duration or delay", ErrInvalidSpec)
	}
	ease, err := e.resolveEasing(opts.Easing)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	anim := newAnimation(e)
	props := sortedProperties(spec)
	records := make([]*record, 0, len(list)*len(props))
	for i, target := range list {
		for _, prop := range props {
			r, err := e.newRecord(target, prop, spec[prop], ease, opts)
			if err != nil {
				return nil, fmt.Errorf("%w: target %d property %q: %w", ErrInvalidSpec, i, prop, err)
			}
			r.anim = anim
			records = append(records, r)
		}
	}

	for _, r := range records {
		if !opts.AllowCollisions {
			for _, old := range e.reg.colliding(r.target, r.property) {
				reason := finishSuperseded
				if old.settled() {
					reason = finishCompleted
				}
				e.finish(old, reason, e.clock.Now())
			}
		}
		e.reg.add(r)
		anim.records = append(anim.records, r)
		anim.remaining++
	}
	e.kick()
	return anim, nil
}

func (e *Engine) newRecord(target any, prop string, entry any, ease easing.Func, opts Options) (*record, error) {
	vs, err := parseEntry(entry)
	if err != nil {
		return nil, err
	}
	end, mode, err := vs.end()
	if err != nil {
		return nil, err
	}
	if vs.Ease != nil {
		if ease, err = e.resolveEasing(vs.Ease); err != nil {
			return nil, err
		}
	}

	from := vs.From
	if from == nil {
		if from, err = e.accessor.Get(target, prop); err != nil {
			return nil, fmt.Errorf("reading start value: %w", err)
		}
		if from == nil {
			return nil, fmt.Errorf("start value is unset")
		}
	}

	plan, err := e.handlers.Resolve(from, end, mode)
	if err != nil {
		return nil, err
	}
	return &record{
		target:   target,
		property: prop,
		plan:     plan,
		ease:     ease,
		delay:    opts.Delay,
		duration: opts.Duration,
		held:     opts.Paused,
	}, nil
}

// RegisterAnimation stores a under name so it can be looked up with
// [Engine.Animation]. Events of a carry the name.
func (e *Engine) RegisterAnimation(name string, a *Animation) {
	if a == nil {
		return
	}
	a.name = name
	e.named[name] = a
}

// Remove forgets the animation registered under name. It does not stop it.
func (e *Engine) Remove(name string) {
	if a, ok := e.named[name]; ok {
		a.name = ""
		delete(e.named, name)
	}
}

// Animation returns the animation registered under name, or nil. The
// methods of a nil *Animation are no-ops, so late calls for a name that was
// removed are harmless.
func (e *Engine) Animation(name string) *Animation {
	return e.named[name]
}

// Start runs a record that was created with Options.Paused.
func (e *Engine) Start(id ID) bool {
	r := e.reg.get(id)
	if r == nil || !r.held {
		return false
	}
	r.held = false
	e.kick()
	return true
}

// Pause freezes a running record. Pausing a record that is already paused is
// a no-op. A record that has not run its first tick starts its clock now.
func (e *Engine) Pause(id ID) bool {
	r := e.reg.get(id)
	if r == nil || r.held {
		return false
	}
	now := e.clock.Now()
	switch r.state {
	case Pending:
		e.activate(r, now)
		if r.state != Active {
			return false
		}
	case Active:
	default:
		return false
	}
	r.state = Paused
	r.pausedAt = now
	e.emit(r, event.TweenPause, now)
	return true
}

// Resume continues a paused record from where it stopped.
func (e *Engine) Resume(id ID) bool {
	r := e.reg.get(id)
	if r == nil || r.state != Paused {
		return false
	}
	now := e.clock.Now()
	r.start = r.start.Add(now.Sub(r.pausedAt))
	r.pausedAt = time.Time{}
	r.state = Active
	e.emit(r, event.TweenResume, now)
	e.kick()
	return true
}

// Stop ends a record where it is. Its target keeps the last applied value
// and it fires a stop event instead of a completion event.
func (e *Engine) Stop(id ID) bool {
	r := e.reg.get(id)
	if r == nil {
		return false
	}
	e.finish(r, finishStopped, e.clock.Now())
	return true
}

// State returns the state of a registered record.
func (e *Engine) State(id ID) (State, bool) {
	r := e.reg.get(id)
	if r == nil {
		return Complete, false
	}
	return r.state, true
}

// Len returns the number of registered records.
func (e *Engine) Len() int { return e.reg.len() }

// Active reports whether the engine has a frame scheduled.
func (e *Engine) Active() bool { return e.running }

// Ticks returns the number of ticks run so far.
func (e *Engine) Ticks() int { return e.ticks }

// FrameDelta returns the time between the last two ticks.
func (e *Engine) FrameDelta() time.Duration { return e.lastDelta }

// kick requests a frame unless one is already requested or nothing needs
// one.
func (e *Engine) kick() {
	if e.running || !e.reg.runnable() {
		return
	}
	e.running = true
	e.frames.RequestFrame(e.tick)
}

func (e *Engine) tick(time.Time) {
	e.running = false
	if !e.reg.runnable() {
		return
	}

	now := e.clock.Now()
	if !e.lastTick.IsZero() {
		e.lastDelta = now.Sub(e.lastTick)
	}
	e.lastTick = now
	e.ticks++

	records := e.reg.snapshot()

	// Compute.
	for _, r := range records {
		if r.held || r.state == Paused || r.state == Complete {
			continue
		}
		if r.state == Pending {
			e.activate(r, now)
		}
		if r.state != Active {
			continue
		}
		r.compute(now)
	}

	// Apply.
	for _, r := range records {
		if r.state == Active && r.hasOut {
			e.apply(r, now)
		}
	}

	// Reap.
	for _, r := range records {
		if r.state == Active && r.done {
			e.finish(r, finishCompleted, now)
		}
	}

	e.kick()
}

// activate moves a pending record to Active and starts its clock.
func (e *Engine) activate(r *record, now time.Time) {
	r.state = Active
	r.start = now
	e.emit(r, event.TweenStart, now)
	if r.anim != nil {
		r.anim.recordStarted(now)
	}
}

func (e *Engine) apply(r *record, now time.Time) {
	stack, err := e.set(r)
	r.hasOut = false
	if err == nil {
		return
	}
	kind := errors.KindTarget
	if stack != "" {
		kind = errors.KindPanic
	}
	errors.Report(&errors.MotionError{
		Op:         "tween.apply",
		Kind:       kind,
		Property:   r.property,
		Err:        err,
		StackTrace: stack,
	})
	e.finish(r, finishDropped, now)
}

// set writes r's output. A panicking accessor is turned into an error and
// its stack is returned.
func (e *Engine) set(r *record) (stack string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic writing %s: %v", r.property, p)
			stack = errors.CaptureStack()
		}
	}()
	return "", e.accessor.Set(r.target, r.property, r.out)
}

// finish completes r for the given reason, unregisters it, and fires the
// matching events.
func (e *Engine) finish(r *record, reason finishReason, now time.Time) {
	if r.state == Complete {
		return
	}
	r.state = Complete
	r.reason = reason
	e.reg.remove(r)

	switch reason {
	case finishCompleted:
		e.emit(r, event.TweenComplete, now)
	case finishStopped:
		e.emit(r, event.TweenStop, now)
	}
	if r.anim != nil {
		r.anim.recordFinished(r, now)
	}
}

func (e *Engine) emit(r *record, name string, now time.Time) {
	ev := event.Event{
		Name:     name,
		ID:       int(r.id),
		Target:   r.target,
		Property: r.property,
		Time:     now,
	}
	if r.anim != nil {
		ev.Animation = r.anim.name
	}
	e.deliver(ev, r.anim)
}

func (e *Engine) deliver(ev event.Event, anim *Animation) {
	if e.emitter != nil {
		event.Deliver(e.emitter.Emit, ev)
	}
	e.dispatcher.Emit(ev)
	if anim != nil {
		anim.listeners.Emit(ev)
	}
}
