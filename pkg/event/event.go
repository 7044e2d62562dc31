// Package event delivers tween lifecycle notifications to listeners.
package event

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/motion/pkg/errors"
)

// Lifecycle event names.
const (
	TweenStart    = "tweenstart"
	TweenPause    = "tweenpause"
	TweenResume   = "tweenresume"
	TweenStop     = "tweenstop"
	TweenComplete = "tweencomplete"

	AnimationStart    = "animationstart"
	AnimationPause    = "animationpause"
	AnimationResume   = "animationresume"
	AnimationStop     = "animationstop"
	AnimationComplete = "animationcomplete"
)

// Event describes one lifecycle transition.
type Event struct {
	Name string
	// ID is the tween record id, or 0 for animation-level events.
	ID int
	// Target and Property identify the tweened value. Both are empty for
	// animation-level events.
	Target   any
	Property string
	// Animation is the name the animation was registered under, if any.
	Animation string
	Time      time.Time
}

func (e Event) String() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s animation=%q", e.Name, e.Animation)
	}
	return fmt.Sprintf("%s id=%d property=%s", e.Name, e.ID, e.Property)
}

// Emitter receives lifecycle events.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to [Emitter].
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(e Event) { f(e) }

// Listener handles one event.
type Listener func(Event)

// Dispatcher is an [Emitter] that fans events out to listeners registered by
// name, globally or against a specific target. Listeners run synchronously in
// registration order. A panicking listener is reported and does not stop the
// remaining listeners.
type Dispatcher struct {
	mu      sync.Mutex
	nextID  int
	global  map[string][]listenerEntry
	targets map[any]map[string][]listenerEntry
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		global:  make(map[string][]listenerEntry),
		targets: make(map[any]map[string][]listenerEntry),
	}
}

// On registers fn for every event called name. The returned function removes
// the listener.
func (d *Dispatcher) On(name string, fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.add(d.global, name, fn)
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.global[name] = without(d.global[name], id)
	}
}

// OnTarget registers fn for events called name whose target is target.
// target must be comparable.
func (d *Dispatcher) OnTarget(target any, name string, fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	byName, ok := d.targets[target]
	if !ok {
		byName = make(map[string][]listenerEntry)
		d.targets[target] = byName
	}
	id := d.add(byName, name, fn)
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if byName, ok := d.targets[target]; ok {
			byName[name] = without(byName[name], id)
		}
	}
}

func (d *Dispatcher) add(m map[string][]listenerEntry, name string, fn Listener) int {
	d.nextID++
	m[name] = append(m[name], listenerEntry{id: d.nextID, fn: fn})
	return d.nextID
}

func without(entries []listenerEntry, id int) []listenerEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}

// Emit delivers e to the target listeners first, then to the global ones.
func (d *Dispatcher) Emit(e Event) {
	d.mu.Lock()
	var listeners []listenerEntry
	if e.Target != nil && isComparable(e.Target) {
		listeners = append(listeners, d.targets[e.Target][e.Name]...)
	}
	listeners = append(listeners, d.global[e.Name]...)
	d.mu.Unlock()

	for _, l := range listeners {
		Deliver(l.fn, e)
	}
}

// Deliver calls fn with e, reporting a panic instead of propagating it.
func Deliver(fn Listener, e Event) {
	defer errors.Recover("event." + e.Name)
	fn(e)
}

func isComparable(v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = map[any]struct{}{v: {}}
	return true
}
