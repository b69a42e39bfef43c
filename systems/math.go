package systems

import "math"

// Mod returns the floored modulus, mapping any a into [0, b).
// Go's math.Mod keeps the sign of a, which would leave negative
// coordinates after a leftward wrap.
func Mod(a, b float32) float32 {
	m := float32(math.Mod(float64(a), float64(b)))
	if m < 0 {
		m += b
	}
	if m == b { // float32 rounding can land exactly on b
		m = 0
	}
	return m
}

// Normalize scales (x, y) to unit length. Callers must offset
// zero-length inputs before calling; see FeedDirection.
func Normalize(x, y float32) (float32, float32) {
	n := float32(math.Sqrt(float64(x*x + y*y)))
	return x / n, y / n
}
