package value

import "golang.org/x/exp/constraints"

// Lerp linearly interpolates between start and end.
// t == 0 and t == 1 return the exact endpoints.
func Lerp[T constraints.Integer | constraints.Float](start, end T, t float64) T {
	switch t {
	case 0:
		return start
	case 1:
		return end
	default:
		return T(float64(start) + float64(end-start)*t)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
