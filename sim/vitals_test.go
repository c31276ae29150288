package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVitals(t *testing.T) {
	v := NewVitals(0)
	assert.Equal(t, 100, v.Max)

	applied, died := v.TakeDamage(30)
	assert.Equal(t, 30, applied)
	assert.False(t, died)

	v.RestoreHealth(50)
	assert.Equal(t, 100, v.Current, "healing is capped")

	applied, died = v.TakeDamage(150)
	assert.Equal(t, 100, applied)
	assert.True(t, died)
	assert.True(t, v.Dead())

	applied, died = v.TakeDamage(10)
	assert.Zero(t, applied)
	assert.False(t, died, "a player dies once")

	v.RestoreHealth(20)
	assert.Zero(t, v.Current)
}

func TestRecorderSummaries(t *testing.T) {
	r := &Recorder{}
	r.Damage(PlayerTarget, 15)
	r.Damage(7, 10)
	r.Damage(PlayerTarget, 20)
	assert.Equal(t, 35, r.PlayerDamage())
	assert.Zero(t, r.LastWave())
}
