package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

// EnemyDeath is the payload of EventEnemyDied.
type EnemyDeath struct {
	Archetype  component.Archetype
	Generation uint64
	Position   cp.Vector
}

// DamageEnemy subtracts amount from an enemy's health and marks it dead
// when health runs out. It reports whether this call killed it.
func DamageEnemy(w *ecs.World, e ecs.Entity, amount float64) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current > 0 {
		return false
	}
	h.Current = 0
	h.Dead = true
	return true
}

// Kill removes an enemy from the world exactly once: its body leaves the
// space, EventEnemyDied is queued and the entity is destroyed. Unknown or
// already destroyed entities are ignored.
func Kill(w *ecs.World, e ecs.Entity) (EnemyDeath, bool) {
	enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return EnemyDeath{}, false
	}
	death := EnemyDeath{Archetype: enemy.Archetype, Generation: enemy.Generation}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		if body.Body != nil {
			death.Position = body.Body.Position()
		}
		w.PhysicsWorld().RemoveBody(body.Body, body.Shape)
	} else if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		death.Position = cp.Vector{X: t.X, Y: t.Y}
	}
	w.Events().Push(ecs.Event{Type: ecs.EventEnemyDied, Entity: e, Data: death})
	ecs.DestroyEntity(w, e)
	return death, true
}

// DeathSystem sweeps enemies whose health ran out this tick.
type DeathSystem struct{}

func NewDeathSystem() *DeathSystem { return &DeathSystem{} }

func (s *DeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, h *component.Health) {
		if h.Dead || h.Current <= 0 {
			Kill(w, e)
		}
	})
}
