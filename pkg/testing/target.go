package testing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-drift/motion/pkg/event"
	"github.com/go-drift/motion/pkg/tween"
)

// ErrNoProperty is returned when reading a property a PropertyBag does not
// hold.
var ErrNoProperty = errors.New("no such property")

// PropertyBag is a map-backed tween target that records every write.
type PropertyBag struct {
	// Name labels the bag in traces.
	Name string

	mu       sync.Mutex
	values   map[string]any
	writes   map[string][]any
	detached bool
	panicOn  map[string]bool
	onWrite  func(b *PropertyBag, property string, v any)
}

var _ tween.Properties = (*PropertyBag)(nil)

// NewPropertyBag returns a bag holding a copy of initial.
func NewPropertyBag(name string, initial map[string]any) *PropertyBag {
	b := &PropertyBag{
		Name:    name,
		values:  make(map[string]any, len(initial)),
		writes:  make(map[string][]any),
		panicOn: make(map[string]bool),
	}
	for k, v := range initial {
		b.values[k] = v
	}
	return b
}

// Property implements [tween.Properties].
func (b *PropertyBag) Property(name string) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProperty, name)
	}
	return v, nil
}

// SetProperty implements [tween.Properties]. Writes to a detached bag fail
// with [tween.ErrDetached].
func (b *PropertyBag) SetProperty(name string, v any) error {
	b.mu.Lock()
	if b.detached {
		b.mu.Unlock()
		return tween.ErrDetached
	}
	if b.panicOn[name] {
		b.mu.Unlock()
		panic(fmt.Sprintf("write to %s.%s", b.Name, name))
	}
	b.values[name] = v
	b.writes[name] = append(b.writes[name], v)
	hook := b.onWrite
	b.mu.Unlock()

	if hook != nil {
		hook(b, name, v)
	}
	return nil
}

// Get returns the current value of a property, or nil.
func (b *PropertyBag) Get(name string) any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.values[name]
}

// Writes returns every value written to a property, in order.
func (b *PropertyBag) Writes(name string) []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]any(nil), b.writes[name]...)
}

// Detach makes every later write fail.
func (b *PropertyBag) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detached = true
}

// PanicOn makes writes to property panic.
func (b *PropertyBag) PanicOn(property string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.panicOn[property] = true
}

// Recorder is an [event.Emitter] that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

// Emit implements [event.Emitter].
func (r *Recorder) Emit(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns the recorded events in order.
func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// Names returns the names of the recorded events in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

// Count returns how many events called name were recorded.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

// Reset discards the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
