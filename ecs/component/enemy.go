package component

import "fmt"

// Archetype selects the behavior table and parameter set of an enemy.
type Archetype int

const (
	ArchetypeWalker Archetype = iota
	ArchetypeRunner
	ArchetypeJumper
	ArchetypeBrute
)

var archetypeNames = [...]string{"walker", "runner", "jumper", "brute"}

func (a Archetype) String() string {
	if a < 0 || int(a) >= len(archetypeNames) {
		return fmt.Sprintf("archetype(%d)", int(a))
	}
	return archetypeNames[a]
}

// ParseArchetype maps a prefab name to its archetype.
func ParseArchetype(name string) (Archetype, bool) {
	for i, n := range archetypeNames {
		if n == name {
			return Archetype(i), true
		}
	}
	return ArchetypeWalker, false
}

// Archetypes lists every archetype in selection order.
func Archetypes() []Archetype {
	return []Archetype{ArchetypeWalker, ArchetypeRunner, ArchetypeJumper, ArchetypeBrute}
}

// Enemy holds the scaled combat stats of one enemy. Speeds and damage
// already include the difficulty multipliers.
type Enemy struct {
	Archetype     Archetype
	MoveSpeed     float64
	ChargeSpeed   float64
	CloseRange    float64
	Damage        int
	AttackRange   float64
	PushForce     float64
	JumpForce     float64
	LeapForce     float64
	FlipThreshold float64
	// Durations names the countdowns the behavior tables start, in seconds.
	Durations map[string]float64
	// Generation is the wave director generation that spawned the enemy.
	Generation uint64
}

var EnemyComponent = NewComponent[Enemy]()
