package easing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownEasing is returned by [Registry.Get] for names that were never
// registered.
var ErrUnknownEasing = errors.New("unknown easing")

// Registry maps easing names to functions. Lookups are case-insensitive.
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]entry
}

type entry struct {
	name string
	fn   Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]entry)}
}

// Default returns a new registry holding every built-in easing.
func Default() *Registry {
	r := NewRegistry()
	for name, fn := range builtins() {
		r.funcs[strings.ToLower(name)] = entry{name: name, fn: fn}
	}
	return r
}

// Register adds or replaces the easing stored under name.
func (r *Registry) Register(name string, fn Func) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("easing: empty name")
	}
	if fn == nil {
		return fmt.Errorf("easing: nil function for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[strings.ToLower(name)] = entry{name: name, fn: fn}
	return nil
}

// Get returns the easing registered under name.
func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.funcs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return e.fn, nil
}

// Names returns the registered names in sorted order, as they were
// registered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for _, e := range r.funcs {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

type family struct {
	name string
	in   Curve
}

var families = []family{
	{"Quad", InQuad},
	{"Cubic", InCubic},
	{"Quart", InQuart},
	{"Quint", InQuint},
	{"Sine", InSine},
	{"Expo", InExpo},
	{"Circ", InCirc},
	{"Elastic", InElastic},
	{"Back", InBack},
	{"Bounce", InBounce},
}

func builtins() map[string]Func {
	m := map[string]Func{
		"linear": FromCurve(Linear),
		"swing":  FromCurve(Swing),

		// CSS timing keywords.
		"ease":        FromCurve(CubicBezier(0.25, 0.1, 0.25, 1.0)),
		"ease-in":     FromCurve(CubicBezier(0.42, 0, 1.0, 1.0)),
		"ease-out":    FromCurve(CubicBezier(0, 0, 0.58, 1.0)),
		"ease-in-out": FromCurve(CubicBezier(0.42, 0, 0.58, 1.0)),
	}
	for _, f := range families {
		in := FromCurve(f.in)
		out := FromCurve(Reverse(f.in))
		m["easeIn"+f.name] = in
		m["easeOut"+f.name] = out
		m["easeInOut"+f.name] = InOut(in, out)
		if fn, ok := outIn[f.name]; ok {
			m["easeOutIn"+f.name] = FromTweenFunc(fn)
		}
	}
	return m
}
