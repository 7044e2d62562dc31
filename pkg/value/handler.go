package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-drift/motion/pkg/easing"
)

// Handler knows how to recognize, parse, and interpolate one kind of value.
type Handler interface {
	// Kind is the kind of value this handler produces.
	Kind() Kind
	// Recognize reports whether v is written in this handler's notation.
	// A recognized value that then fails to parse is an error, not a
	// fallback to another handler.
	Recognize(v any) bool
	// Parse classifies v.
	Parse(v any) (Value, error)
	// Delta computes the change between from and to. In Relative mode to
	// is itself the change. The returned end value is where the tween lands.
	Delta(from, to Value, mode Mode) (delta, end Value, err error)
	// Apply composes eased progress into an output value. It must return the
	// output of to once elapsed >= duration.
	Apply(f easing.Func, elapsed, duration float64, from, to, delta Value) any
}

// Unifier is implemented by handlers that coerce both ends of a tween into a
// common representation before the delta is taken. Returning
// [ErrIncompatible] sends the tween to the step proxy.
type Unifier interface {
	Unify(from, to Value) (Value, Value, error)
}

// Handlers is an ordered list of value handlers. Classification tries each
// handler in order and falls back to the step proxy.
type Handlers struct {
	mu       sync.RWMutex
	list     []Handler
	fallback Handler
}

// NewHandlers returns the built-in handlers in priority order: color, scalar,
// dimension.
func NewHandlers() *Handlers {
	return &Handlers{
		list:     []Handler{ColorHandler{}, ScalarHandler{}, DimensionHandler{}},
		fallback: StepHandler{},
	}
}

// Register appends a handler after the built-ins.
func (hs *Handlers) Register(h Handler) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.list = append(hs.list, h)
}

// For returns the handler for kind, or the step proxy if there is none.
func (hs *Handlers) For(kind Kind) Handler {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	for _, h := range hs.list {
		if h.Kind() == kind {
			return h
		}
	}
	return hs.fallback
}

// Parse classifies v with the first handler that recognizes it.
func (hs *Handlers) Parse(v any) (Value, error) {
	if v == nil {
		return Value{}, fmt.Errorf("%w: nil", ErrInvalidValue)
	}
	if val, ok := v.(Value); ok {
		if val.Kind == KindScalar || val.Kind == KindDimension {
			if err := checkFinite(val.Num, val); err != nil {
				return Value{}, err
			}
		}
		return val, nil
	}
	hs.mu.RLock()
	list := hs.list
	hs.mu.RUnlock()
	for _, h := range list {
		if h.Recognize(v) {
			return h.Parse(v)
		}
	}
	return hs.fallback.Parse(v)
}

// Plan is a resolved tween between two values.
type Plan struct {
	Handler Handler
	From    Value
	To      Value
	Delta   Value
}

// At evaluates the plan at elapsed time.
func (p Plan) At(f easing.Func, elapsed, duration float64) any {
	return p.Handler.Apply(f, elapsed, duration, p.From, p.To, p.Delta)
}

// Stepped reports whether the plan uses the step proxy.
func (p Plan) Stepped() bool {
	_, ok := p.Handler.(StepHandler)
	return ok
}

// Resolve classifies both ends of a tween and picks the handler that
// interpolates between them. Ends that cannot be interpolated into each other
// resolve to the step proxy in Absolute mode and fail in Relative mode.
func (hs *Handlers) Resolve(from, to any, mode Mode) (Plan, error) {
	fv, err := hs.Parse(from)
	if err != nil {
		return Plan{}, fmt.Errorf("from: %w", err)
	}
	tv, err := hs.Parse(to)
	if err != nil {
		return Plan{}, fmt.Errorf("to: %w", err)
	}

	h := hs.pick(fv, tv)
	if u, ok := h.(Unifier); ok {
		uf, ut, err := u.Unify(fv, tv)
		switch {
		case err == nil:
			fv, tv = uf, ut
		case mode == Absolute && errors.Is(err, ErrIncompatible):
			h = hs.fallback
		default:
			return Plan{}, err
		}
	}
	if _, step := h.(StepHandler); step && mode == Relative {
		return Plan{}, fmt.Errorf("%w: cannot add %s to %s", ErrInvalidValue, tv.Kind, fv.Kind)
	}

	delta, end, err := h.Delta(fv, tv, mode)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Handler: h, From: fv, To: end, Delta: delta}, nil
}

func (hs *Handlers) pick(from, to Value) Handler {
	switch {
	case from.Kind == to.Kind:
		return hs.For(to.Kind)
	case from.Kind == KindScalar && to.Kind == KindDimension,
		from.Kind == KindDimension && to.Kind == KindScalar:
		return hs.For(KindDimension)
	default:
		return hs.fallback
	}
}

// numericString reports whether s is written as a bare number, with no unit
// and no inner whitespace.
func numericString(s string) bool {
	_, unit := splitUnit(s)
	return looksNumeric(s) && unit == "" && !strings.ContainsAny(s, " \t\r\n")
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case string:
		return numericString(strings.TrimSpace(n))
	}
	return false
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		s := strings.TrimSpace(n)
		if !numericString(s) {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, n)
		}
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, fmt.Errorf("%w: bad number %q", ErrInvalidValue, n)
		}
	default:
		return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidValue, v)
	}
	return f, checkFinite(f, v)
}

func checkFinite(f float64, v any) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v is not finite", ErrInvalidValue, v)
	}
	return nil
}

// ScalarHandler interpolates plain numbers.
type ScalarHandler struct{}

func (ScalarHandler) Kind() Kind { return KindScalar }

func (ScalarHandler) Recognize(v any) bool {
	if val, ok := v.(Value); ok {
		return val.Kind == KindScalar
	}
	return isNumber(v)
}

func (ScalarHandler) Parse(v any) (Value, error) {
	f, err := toFloat(v)
	if err != nil {
		return Value{}, err
	}
	return Number(f), nil
}

func (ScalarHandler) Delta(from, to Value, mode Mode) (Value, Value, error) {
	delta, end := to.Num-from.Num, to
	if mode == Relative {
		delta, end = to.Num, Number(from.Num+to.Num)
	}
	if err := checkFinite(delta, to); err != nil {
		return Value{}, Value{}, err
	}
	if err := checkFinite(end.Num, to); err != nil {
		return Value{}, Value{}, err
	}
	return Number(delta), end, nil
}

func (ScalarHandler) Apply(f easing.Func, elapsed, duration float64, from, to, delta Value) any {
	v := f(elapsed, from.Num, delta.Num, duration)
	if elapsed >= duration {
		return to.Num
	}
	return v
}

// DimensionHandler interpolates numbers with a unit, such as "12px".
type DimensionHandler struct{}

func (DimensionHandler) Kind() Kind { return KindDimension }

func (DimensionHandler) Recognize(v any) bool {
	switch val := v.(type) {
	case Value:
		return val.Kind == KindDimension
	case string:
		s := strings.TrimSpace(val)
		_, unit := splitUnit(s)
		return looksNumeric(s) && unit != ""
	}
	return false
}

func (DimensionHandler) Parse(v any) (Value, error) {
	s, ok := v.(string)
	if !ok {
		return Value{}, fmt.Errorf("%w: %v is not a dimension", ErrInvalidValue, v)
	}
	f, unit, err := ParseDimension(s)
	if err != nil {
		return Value{}, err
	}
	return Dimen(f, unit), nil
}

// Unify gives a unitless number the unit of the other end. Two different
// units are incompatible.
func (DimensionHandler) Unify(from, to Value) (Value, Value, error) {
	switch {
	case from.Kind == KindScalar:
		from = Dimen(from.Num, to.Unit)
	case to.Kind == KindScalar:
		to = Dimen(to.Num, from.Unit)
	case from.Unit != to.Unit:
		return from, to, fmt.Errorf("%w: %s and %s", ErrIncompatible, from, to)
	}
	return from, to, nil
}

func (DimensionHandler) Delta(from, to Value, mode Mode) (Value, Value, error) {
	delta, end := Dimen(to.Num-from.Num, to.Unit), to
	if mode == Relative {
		delta, end = Dimen(to.Num, from.Unit), Dimen(from.Num+to.Num, from.Unit)
	}
	if err := checkFinite(delta.Num, to); err != nil {
		return Value{}, Value{}, err
	}
	if err := checkFinite(end.Num, to); err != nil {
		return Value{}, Value{}, err
	}
	return delta, end, nil
}

func (DimensionHandler) Apply(f easing.Func, elapsed, duration float64, from, to, delta Value) any {
	v := f(elapsed, from.Num, delta.Num, duration)
	if elapsed >= duration {
		return to.Output()
	}
	return FormatDimension(v, from.Unit)
}

// ColorHandler interpolates colors component-wise in normalized space.
type ColorHandler struct{}

func (ColorHandler) Kind() Kind { return KindColor }

func (ColorHandler) Recognize(v any) bool {
	switch val := v.(type) {
	case Value:
		return val.Kind == KindColor
	case Color:
		return true
	case string:
		return looksLikeColor(val)
	}
	return false
}

func (ColorHandler) Parse(v any) (Value, error) {
	switch val := v.(type) {
	case Color:
		return FromColor(val), nil
	case string:
		c, err := ParseColor(val)
		if err != nil {
			return Value{}, err
		}
		return FromColor(c), nil
	}
	return Value{}, fmt.Errorf("%w: %v is not a color", ErrInvalidValue, v)
}

// Unify converts the start color into the space of the end color.
func (ColorHandler) Unify(from, to Value) (Value, Value, error) {
	return FromColor(from.Color.In(to.Color.Space)), to, nil
}

func (ColorHandler) Delta(from, to Value, mode Mode) (Value, Value, error) {
	d := Color{Space: from.Color.Space}
	if mode == Relative {
		end := Color{Space: from.Color.Space}
		for i := range d.C {
			d.C[i] = to.Color.C[i]
			end.C[i] = clamp01(from.Color.C[i] + to.Color.C[i])
		}
		return FromColor(d), FromColor(end), nil
	}
	for i := range d.C {
		d.C[i] = to.Color.C[i] - from.Color.C[i]
	}
	return FromColor(d), to, nil
}

func (ColorHandler) Apply(f easing.Func, elapsed, duration float64, from, to, delta Value) any {
	c := Color{Space: from.Color.Space}
	for i := range c.C {
		c.C[i] = clamp01(f(elapsed, from.Color.C[i], delta.Color.C[i], duration))
	}
	if elapsed >= duration {
		return to.Output()
	}
	return c.String()
}

// StepHandler is the fallback for values that cannot be interpolated. It
// holds the start value until the tween finishes and then switches to the
// end value.
type StepHandler struct{}

func (StepHandler) Kind() Kind { return KindRaw }

func (StepHandler) Recognize(any) bool { return true }

func (StepHandler) Parse(v any) (Value, error) {
	if val, ok := v.(Value); ok {
		return val, nil
	}
	return RawValue(v), nil
}

func (StepHandler) Delta(from, to Value, mode Mode) (Value, Value, error) {
	if mode == Relative {
		return Value{}, Value{}, fmt.Errorf("%w: relative step from %s", ErrInvalidValue, from)
	}
	return to, to, nil
}

func (StepHandler) Apply(_ easing.Func, elapsed, duration float64, from, to, _ Value) any {
	if elapsed >= duration {
		return to.Output()
	}
	return from.Output()
}
