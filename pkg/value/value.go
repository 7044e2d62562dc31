// Package value implements the typed values a tween interpolates.
//
// Caller-supplied values (numbers, "12px" style dimensions, CSS colors, or
// anything else) are classified once, when a tween is created, into a tagged
// [Value]. A [Handler] for the value's [Kind] computes the delta between the
// two ends and composes eased progress back into an output value. Values with
// no numeric structure fall back to a step proxy that holds the start value
// and switches to the end value when the tween finishes.
//
// Colors are kept in normalized [0, 1] component space; the 8-bit and
// percentage notations only exist at the string boundary.
package value

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidValue reports a value that looks like a color or a dimension but
// cannot be parsed, or a value that cannot be used the way it was requested.
var ErrInvalidValue = errors.New("invalid value")

// ErrIncompatible reports two ends of a tween that cannot be interpolated
// into each other, such as "10px" and "50%".
var ErrIncompatible = errors.New("incompatible values")

// Kind discriminates the variants of [Value].
type Kind int

const (
	// KindRaw is an opaque value with no numeric structure.
	KindRaw Kind = iota
	// KindScalar is a plain number.
	KindScalar
	// KindDimension is a number with a unit suffix.
	KindDimension
	// KindColor is an RGBA or HSLA color.
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindScalar:
		return "scalar"
	case KindDimension:
		return "dimension"
	case KindColor:
		return "color"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mode selects how the end of a tween is resolved.
type Mode int

const (
	// Absolute tweens toward an explicit end value.
	Absolute Mode = iota
	// Relative tweens by a delta added to the start value.
	Relative
)

// Value is a classified tween value.
type Value struct {
	Kind Kind
	// Num holds the magnitude of scalars and dimensions.
	Num float64
	// Unit is the dimension suffix, such as "px" or "%".
	Unit  string
	Color Color
	// Raw holds the original value for KindRaw and custom kinds.
	Raw any
}

// Number returns a scalar value.
func Number(f float64) Value {
	return Value{Kind: KindScalar, Num: f}
}

// Dimen returns a dimension value.
func Dimen(f float64, unit string) Value {
	return Value{Kind: KindDimension, Num: f, Unit: unit}
}

// FromColor returns a color value.
func FromColor(c Color) Value {
	return Value{Kind: KindColor, Color: c}
}

// RawValue wraps a value that cannot be interpolated.
func RawValue(v any) Value {
	return Value{Kind: KindRaw, Raw: v}
}

// Output converts the value into the form written to targets: float64 for
// scalars, strings for dimensions and colors, and the original value for raw
// values.
func (v Value) Output() any {
	switch v.Kind {
	case KindScalar:
		return v.Num
	case KindDimension:
		return FormatDimension(v.Num, v.Unit)
	case KindColor:
		return v.Color.String()
	default:
		return v.Raw
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindScalar:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDimension, KindColor:
		return v.Output().(string)
	default:
		return fmt.Sprint(v.Raw)
	}
}
