package director

import "math"

// Rules computes the per-wave quota and spawn interval.
type Rules interface {
	Quota(wave int) int
	Interval(wave int) float64
}

// DefaultRules is the three-tier ramp: quick growth for the opening waves,
// steadier growth until wave 10, then a capped late game.
type DefaultRules struct {
	BaseInterval float64
}

func (r DefaultRules) Quota(n int) int {
	switch {
	case n < 5:
		return 5 + 2*n
	case n < 10:
		return 15 + 3*(n-5)
	default:
		return min(30+4*(n-10), 50)
	}
}

func (r DefaultRules) Interval(n int) float64 {
	switch {
	case n < 5:
		return r.BaseInterval - 0.2*float64(n)
	case n < 10:
		return math.Max(1.0, r.BaseInterval-0.3*float64(n))
	default:
		return math.Max(0.8, r.BaseInterval-0.35*float64(n))
	}
}
