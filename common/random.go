package common

import (
	"math/rand"
	"time"
)

// Random is the uniform source used by every selection roll.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type seededRandom struct {
	rng *rand.Rand
}

// NewRandom returns a seeded source. A zero seed uses the current time.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *seededRandom) Float64() float64 {
	return r.rng.Float64()
}

func (r *seededRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// FixedRandom replays a fixed sequence of rolls. Float64 and IntN share
// the sequence; IntN scales the roll into [0, n).
type FixedRandom struct {
	Rolls []float64
	next  int
}

func (r *FixedRandom) Float64() float64 {
	if len(r.Rolls) == 0 {
		return 0
	}
	v := r.Rolls[r.next%len(r.Rolls)]
	r.next++
	return v
}

func (r *FixedRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
