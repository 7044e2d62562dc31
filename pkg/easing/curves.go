package easing

import "math"

// Normalized ease-in curves. The ease-out variants are derived with
// [Reverse] and the ease-in-out variants are composed with [InOut].

// Linear returns linear progress (no easing).
func Linear(p float64) float64 {
	return p
}

// Swing is the default easing of the classic jQuery-style animators.
func Swing(p float64) float64 {
	return 0.5 - math.Cos(p*math.Pi)/2
}

func InQuad(p float64) float64 {
	return p * p
}

func InCubic(p float64) float64 {
	return p * p * p
}

func InQuart(p float64) float64 {
	return p * p * p * p
}

func InQuint(p float64) float64 {
	return p * p * p * p * p
}

func InSine(p float64) float64 {
	return 1 - math.Cos((p*math.Pi)/2)
}

func InExpo(p float64) float64 {
	if p == 0 {
		return 0
	}
	return math.Pow(2, 10*p-10)
}

func InCirc(p float64) float64 {
	return 1 - math.Sqrt(1-p*p)
}

// InElastic overshoots below zero before snapping to 1.
func InElastic(p float64) float64 {
	switch p {
	case 0:
		return 0
	case 1:
		return 1
	default:
		const c4 = (2 * math.Pi) / 3
		return -math.Pow(2, 10*p-10) * math.Sin((p*10-10.75)*c4)
	}
}

// InBack pulls back below zero before accelerating toward 1.
func InBack(p float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return c3*p*p*p - c1*p*p
}

func InBounce(p float64) float64 {
	return 1 - OutBounce(1-p)
}

func OutBounce(p float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	if p < 1.0/d1 {
		return n1 * p * p
	} else if p < 2.0/d1 {
		p -= 1.5 / d1
		return n1*p*p + 0.75
	} else if p < 2.5/d1 {
		p -= 2.25 / d1
		return n1*p*p + 0.9375
	} else {
		p -= 2.625 / d1
		return n1*p*p + 0.984375
	}
}

// CubicBezier returns the curve of CSS cubic-bezier(x1, y1, x2, y2). The
// curve runs from (0,0) to (1,1); progress is taken as x and the result is y.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	bx, by := newBezierAxis(x1, x2), newBezierAxis(y1, y2)
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		return by.at(bx.solve(p))
	}
}

const bezierEpsilon = 1e-7

// bezierAxis is one coordinate of a unit cubic bezier in polynomial form,
// ((a*u + b)*u + c)*u.
type bezierAxis struct{ a, b, c float64 }

func newBezierAxis(p1, p2 float64) bezierAxis {
	c := 3 * p1
	b := 3*(p2-p1) - c
	return bezierAxis{a: 1 - c - b, b: b, c: c}
}

func (ax bezierAxis) at(u float64) float64 {
	return ((ax.a*u+ax.b)*u + ax.c) * u
}

func (ax bezierAxis) slope(u float64) float64 {
	return (3*ax.a*u+2*ax.b)*u + ax.c
}

// solve finds u in [0,1] with at(u) == v. Newton steps first, bisection when
// the slope flattens out.
func (ax bezierAxis) solve(v float64) float64 {
	u := v
	for i := 0; i < 8; i++ {
		diff := ax.at(u) - v
		if math.Abs(diff) < bezierEpsilon {
			return min(max(u, 0), 1)
		}
		d := ax.slope(u)
		if math.Abs(d) < bezierEpsilon {
			break
		}
		u -= diff / d
	}

	lo, hi := 0.0, 1.0
	u = min(max(u, 0), 1)
	for i := 0; i < 32; i++ {
		diff := ax.at(u) - v
		if math.Abs(diff) < bezierEpsilon {
			break
		}
		if diff > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}
