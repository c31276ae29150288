// Package difficulty holds the multiplier sets applied to enemy stats at
// spawn time.
package difficulty

import (
	"math"
	"strings"
)

// Tier is one of the named difficulty settings.
type Tier string

const (
	Easy   Tier = "Easy"
	Medium Tier = "Medium"
	Hard   Tier = "Hard"
)

// Default is used when no tier, or an unknown one, is configured.
const Default = Medium

// Profile is the immutable multiplier set of one tier.
type Profile struct {
	Tier      Tier
	HealthMul float64
	SpeedMul  float64
	DamageMul float64
}

var profiles = map[Tier]Profile{
	Easy:   {Tier: Easy, HealthMul: 0.8, SpeedMul: 0.8, DamageMul: 0.8},
	Medium: {Tier: Medium, HealthMul: 1, SpeedMul: 1, DamageMul: 1},
	Hard:   {Tier: Hard, HealthMul: 1.5, SpeedMul: 1.5, DamageMul: 1.5},
}

// ForName resolves a persisted tier name. Matching ignores case and
// surrounding space; anything else falls back to Medium with ok=false.
func ForName(name string) (Profile, bool) {
	trimmed := strings.TrimSpace(name)
	for tier, p := range profiles {
		if strings.EqualFold(string(tier), trimmed) {
			return p, true
		}
	}
	return profiles[Default], false
}

// Tiers lists the closed set of tiers from easiest to hardest.
func Tiers() []Tier {
	return []Tier{Easy, Medium, Hard}
}

func (p Profile) Health(base float64) float64 {
	return base * p.HealthMul
}

func (p Profile) Speed(base float64) float64 {
	return base * p.SpeedMul
}

// Damage scales and rounds half to even.
func (p Profile) Damage(base int) int {
	return int(math.RoundToEven(float64(base) * p.DamageMul))
}
