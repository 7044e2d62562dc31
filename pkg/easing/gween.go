package easing

import "github.com/tanema/gween/ease"

// FromTweenFunc adapts a gween easing function. gween evaluates in float32,
// so the adapter samples it on the unit interval and scales the result in
// float64, keeping the exact endpoint guarantees of [FromCurve].
func FromTweenFunc(fn ease.TweenFunc) Func {
	return FromCurve(func(p float64) float64 {
		return float64(fn(float32(p), 0, 1, 1))
	})
}

// outIn lists the out-in families, which are only provided through gween.
var outIn = map[string]ease.TweenFunc{
	"Quad":    ease.OutInQuad,
	"Cubic":   ease.OutInCubic,
	"Quart":   ease.OutInQuart,
	"Quint":   ease.OutInQuint,
	"Sine":    ease.OutInSine,
	"Expo":    ease.OutInExpo,
	"Circ":    ease.OutInCirc,
	"Elastic": ease.OutInElastic,
	"Back":    ease.OutInBack,
	"Bounce":  ease.OutInBounce,
}
