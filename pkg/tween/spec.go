package tween

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/go-drift/motion/pkg/easing"
	"github.com/go-drift/motion/pkg/value"
)

// ErrInvalidSpec reports a tween request that cannot be honored: an
// unreadable start value, an unknown easing, a malformed value, or
// inconsistent options. Nothing is registered when it is returned.
var ErrInvalidSpec = errors.New("invalid tween spec")

// Spec maps property names to value specifications. Each value is either a
// literal end value or a [ValueSpec], *ValueSpec, or map[string]any with the
// keys "from", "to", "add", "by", and "ease".
//
// String end values of the form "+=N" or "-=N" are relative to the start
// value.
type Spec map[string]any

// ValueSpec describes one property's tween. Exactly one of To, Add, or By
// must be set; Add and By are synonyms for a delta added to the start value.
// From defaults to the target's current value.
type ValueSpec struct {
	From any
	To   any
	Add  any
	By   any
	// Ease overrides the animation's easing for this property: an easing
	// name or an easing.Func.
	Ease any
}

// Options controls how a set of tweens runs.
type Options struct {
	Delay    time.Duration
	Duration time.Duration
	// Easing is an easing name or an easing.Func. Empty selects the engine
	// default.
	Easing any
	// AllowCollisions lets the new tweens run alongside existing tweens of
	// the same target and property instead of replacing them.
	AllowCollisions bool
	// Paused registers the tweens without starting them. Call Start on the
	// returned Animation to run them.
	Paused bool
}

func parseEntry(v any) (ValueSpec, error) {
	switch s := v.(type) {
	case ValueSpec:
		return s, nil
	case *ValueSpec:
		if s == nil {
			return ValueSpec{}, fmt.Errorf("nil value spec")
		}
		return *s, nil
	case map[string]any:
		var vs ValueSpec
		for k, field := range s {
			switch k {
			case "from":
				vs.From = field
			case "to":
				vs.To = field
			case "add":
				vs.Add = field
			case "by":
				vs.By = field
			case "ease", "easing":
				vs.Ease = field
			default:
				return ValueSpec{}, fmt.Errorf("unknown key %q", k)
			}
		}
		return vs, nil
	default:
		return ValueSpec{To: v}, nil
	}
}

// end returns the end value and delta mode of vs.
func (vs ValueSpec) end() (any, value.Mode, error) {
	set := 0
	for _, v := range []any{vs.To, vs.Add, vs.By} {
		if v != nil {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, 0, fmt.Errorf("one of to, add, or by is required")
	case set > 1:
		return nil, 0, fmt.Errorf("to, add, and by are mutually exclusive")
	case vs.Add != nil:
		return vs.Add, value.Relative, nil
	case vs.By != nil:
		return vs.By, value.Relative, nil
	}
	if delta, ok := value.SplitRelative(vs.To); ok {
		return delta, value.Relative, nil
	}
	return vs.To, value.Absolute, nil
}

func (e *Engine) resolveEasing(v any) (easing.Func, error) {
	switch fn := v.(type) {
	case nil:
		return e.easings.Get(e.defaultEasing)
	case string:
		if fn == "" {
			return e.easings.Get(e.defaultEasing)
		}
		return e.easings.Get(fn)
	case easing.Func:
		if fn == nil {
			return nil, fmt.Errorf("nil easing")
		}
		return fn, nil
	case func(t, b, c, d float64) float64:
		if fn == nil {
			return nil, fmt.Errorf("nil easing")
		}
		return fn, nil
	default:
		return nil, fmt.Errorf("easing must be a name or easing.Func, got %T", v)
	}
}

// targetList flattens a single target or a slice or array of targets.
func targetList(targets any) ([]any, error) {
	if targets == nil {
		return nil, fmt.Errorf("no targets")
	}
	if list, ok := targets.([]any); ok {
		return checkTargets(list)
	}
	rv := reflect.ValueOf(targets)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return checkTargets([]any{targets})
	}
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return checkTargets(list)
}

func checkTargets(list []any) ([]any, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("no targets")
	}
	for i, t := range list {
		if t == nil {
			return nil, fmt.Errorf("target %d is nil", i)
		}
		// Value.Comparable also checks what interface fields hold.
		if !reflect.ValueOf(t).Comparable() {
			return nil, fmt.Errorf("target %d (%T) is not comparable", i, t)
		}
	}
	return list, nil
}

func sortedProperties(spec Spec) []string {
	props := make([]string, 0, len(spec))
	for p := range spec {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}
