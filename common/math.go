package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// MoveTowards moves from towards to by at most maxDelta without overshooting.
func MoveTowards(from, to cp.Vector, maxDelta float64) cp.Vector {
	delta := to.Sub(from)
	dist := delta.Length()
	if dist <= maxDelta || dist == 0 {
		return to
	}
	return from.Add(delta.Mult(maxDelta / dist))
}

// NearlyZero reports whether v is within eps of zero.
func NearlyZero(v, eps float64) bool {
	return math.Abs(v) <= eps
}
