package director

import (
	"github.com/milk9111/lightsout/common"
	"github.com/milk9111/lightsout/ecs/component"
)

// Weights are the spawn probabilities of the special archetypes. Walker
// takes whatever mass is left below 1.
type Weights struct {
	Brute  float64 `yaml:"brute"`
	Runner float64 `yaml:"runner"`
	Jumper float64 `yaml:"jumper"`
	Walker float64 `yaml:"walker"`
}

// DefaultWeights is the shipped survival mix.
func DefaultWeights() Weights {
	return Weights{Brute: 0.05, Runner: 0.1, Jumper: 0.2, Walker: 0.65}
}

type ArchetypeSelector struct {
	Weights Weights
	rng     common.Random
}

func NewArchetypeSelector(w Weights, rng common.Random) *ArchetypeSelector {
	return &ArchetypeSelector{Weights: w, rng: rng}
}

// Select walks brute, runner, jumper, walker and returns the first whose
// cumulative weight covers the roll. Archetypes with a zero or negative
// weight are disabled: they never match, not even on a roll of exactly 0,
// and add nothing to the running total.
func (s *ArchetypeSelector) Select() component.Archetype {
	r := s.rng.Float64()
	order := []struct {
		archetype component.Archetype
		weight    float64
	}{
		{component.ArchetypeBrute, s.Weights.Brute},
		{component.ArchetypeRunner, s.Weights.Runner},
		{component.ArchetypeJumper, s.Weights.Jumper},
	}
	cum := 0.0
	for _, o := range order {
		if o.weight <= 0 {
			continue
		}
		cum += o.weight
		if r <= cum {
			return o.archetype
		}
	}
	return component.ArchetypeWalker
}
