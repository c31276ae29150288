package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/director"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/economy"
)

// PlayerTarget addresses the externally controlled player in outbound
// calls. It is never a live entity handle.
const PlayerTarget ecs.Entity = 0

// Collaborator is everything outside the core: rendering, audio, UI and
// the player controller. Calls arrive on the goroutine that ticks the
// session.
type Collaborator interface {
	SpawnEntity(id ecs.Entity, archetype component.Archetype, pos cp.Vector)
	SpawnPickup(id ecs.Entity, kind component.PickupKind, pos cp.Vector)
	Damage(target ecs.Entity, amount int)
	Knockback(target ecs.Entity, impulse cp.Vector)
	PlayDeathEffect(id ecs.Entity, archetype component.Archetype, pos cp.Vector)
	PlayAttackEffect(id ecs.Entity, archetype component.Archetype)
	WaveChanged(a director.WaveAnnouncement)
	ResourcesChanged(c economy.Counters)
	PlayerDied()
}

// NopCollaborator drops every call.
type NopCollaborator struct{}

func (NopCollaborator) SpawnEntity(ecs.Entity, component.Archetype, cp.Vector) {}
func (NopCollaborator) SpawnPickup(ecs.Entity, component.PickupKind, cp.Vector) {}
func (NopCollaborator) Damage(ecs.Entity, int) {}
func (NopCollaborator) Knockback(ecs.Entity, cp.Vector) {}
func (NopCollaborator) PlayDeathEffect(ecs.Entity, component.Archetype, cp.Vector) {}
func (NopCollaborator) PlayAttackEffect(ecs.Entity, component.Archetype) {}
func (NopCollaborator) WaveChanged(director.WaveAnnouncement) {}
func (NopCollaborator) ResourcesChanged(economy.Counters) {}
func (NopCollaborator) PlayerDied() {}

// Spawned is one SpawnEntity call seen by a Recorder.
type Spawned struct {
	ID        ecs.Entity
	Archetype component.Archetype
	Position  cp.Vector
}

// Dropped is one SpawnPickup call seen by a Recorder.
type Dropped struct {
	ID       ecs.Entity
	Kind     component.PickupKind
	Position cp.Vector
}

// Hit is one Damage call seen by a Recorder.
type Hit struct {
	Target ecs.Entity
	Amount int
}

// Recorder keeps every outbound call. The headless runner reports from it
// and tests assert on it.
type Recorder struct {
	Spawns      []Spawned
	Pickups     []Dropped
	Hits        []Hit
	Knockbacks  []cp.Vector
	Deaths      []Spawned
	Attacks     []ecs.Entity
	Waves       []director.WaveAnnouncement
	Resources   []economy.Counters
	PlayerDeath int
}

func (r *Recorder) SpawnEntity(id ecs.Entity, a component.Archetype, pos cp.Vector) {
	r.Spawns = append(r.Spawns, Spawned{ID: id, Archetype: a, Position: pos})
}

func (r *Recorder) SpawnPickup(id ecs.Entity, kind component.PickupKind, pos cp.Vector) {
	r.Pickups = append(r.Pickups, Dropped{ID: id, Kind: kind, Position: pos})
}

func (r *Recorder) Damage(target ecs.Entity, amount int) {
	r.Hits = append(r.Hits, Hit{Target: target, Amount: amount})
}

func (r *Recorder) Knockback(target ecs.Entity, impulse cp.Vector) {
	if target == PlayerTarget {
		r.Knockbacks = append(r.Knockbacks, impulse)
	}
}

func (r *Recorder) PlayDeathEffect(id ecs.Entity, a component.Archetype, pos cp.Vector) {
	r.Deaths = append(r.Deaths, Spawned{ID: id, Archetype: a, Position: pos})
}

func (r *Recorder) PlayAttackEffect(id ecs.Entity, _ component.Archetype) {
	r.Attacks = append(r.Attacks, id)
}

func (r *Recorder) WaveChanged(a director.WaveAnnouncement) {
	r.Waves = append(r.Waves, a)
}

func (r *Recorder) ResourcesChanged(c economy.Counters) {
	r.Resources = append(r.Resources, c)
}

func (r *Recorder) PlayerDied() {
	r.PlayerDeath++
}

// PlayerDamage sums the damage dealt to the player.
func (r *Recorder) PlayerDamage() int {
	total := 0
	for _, h := range r.Hits {
		if h.Target == PlayerTarget {
			total += h.Amount
		}
	}
	return total
}

// SpawnsByArchetype counts spawns per archetype.
func (r *Recorder) SpawnsByArchetype() map[component.Archetype]int {
	out := make(map[component.Archetype]int)
	for _, s := range r.Spawns {
		out[s.Archetype]++
	}
	return out
}

// LastWave returns the highest wave announced so far.
func (r *Recorder) LastWave() int {
	if len(r.Waves) == 0 {
		return 0
	}
	return r.Waves[len(r.Waves)-1].Wave
}
