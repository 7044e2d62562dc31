// Package easing provides the time-remapping functions used by the tween
// engine.
//
// An easing [Func] has the classic Penner shape f(t, b, c, d): t is the
// elapsed time, b the start value, c the change in value and d the total
// duration. Every function built with [FromCurve] returns exactly b at t <= 0
// and exactly b+c at t >= d, whatever its curve does in between, so a tween
// always lands on its declared end value.
//
// Most functions are built from a normalized [Curve] (progress in [0, 1] in,
// eased progress out). Ease-in-out variants are composed from their in and out
// halves with [InOut], which runs each half over half the duration and half
// the change.
package easing

// Func maps elapsed time t within duration d onto a value between b and b+c.
type Func func(t, b, c, d float64) float64

// Curve maps linear progress p in [0, 1] onto eased progress.
// Curves may overshoot (elastic, back) but should satisfy Curve(0) == 0 and
// Curve(1) == 1.
type Curve func(p float64) float64

// FromCurve lifts a normalized curve into an easing function with exact
// endpoints.
func FromCurve(curve Curve) Func {
	return func(t, b, c, d float64) float64 {
		if d <= 0 || t >= d {
			return b + c
		}
		if t <= 0 {
			return b
		}
		return b + c*curve(t/d)
	}
}

// InOut composes an ease-in and an ease-out function. The first half of the
// duration runs in over half the change, the second half runs out over the
// rest, so the result is continuous at d/2.
func InOut(in, out Func) Func {
	return func(t, b, c, d float64) float64 {
		if d <= 0 || t >= d {
			return b + c
		}
		if t <= 0 {
			return b
		}
		half := d / 2
		if t < half {
			return in(t, b, c/2, half)
		}
		return out(t-half, b+c/2, c/2, half)
	}
}

// Reverse turns an ease-in curve into the matching ease-out curve.
func Reverse(in Curve) Curve {
	return func(p float64) float64 {
		return 1 - in(1-p)
	}
}
