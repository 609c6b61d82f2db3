// Package vmath holds the small float helpers shared by the evolution core and
// the renderers. Everything here is pure float64; the determinism contract of
// the core rides on IEEE-754 doubles, so no fast approximations.
package vmath

// Clamp01 clamps v to the unit interval
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b; t outside [0,1] extrapolates
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
