package common

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0.5, 1, 2))
	assert.Equal(t, 2.0, Clamp(3, 1, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 1, 2))
}

func TestMoveTowards(t *testing.T) {
	got := MoveTowards(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 4, Y: 0}, 1)
	assert.Equal(t, cp.Vector{X: 1, Y: 0}, got)

	got = MoveTowards(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0.5, Y: 0}, 1)
	assert.Equal(t, cp.Vector{X: 0.5, Y: 0}, got)
}

func TestFixedRandomCycles(t *testing.T) {
	r := &FixedRandom{Rolls: []float64{0.1, 0.9}}
	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 9, r.IntN(10))
	assert.Equal(t, 0.1, r.Float64())
}

func TestSeededRandomDeterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(7), b.IntN(7))
	}
	assert.Equal(t, 0, a.IntN(0))
}
