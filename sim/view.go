package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

// EnemyView is a read-only snapshot of one enemy for drawing and reports.
type EnemyView struct {
	ID         ecs.Entity
	Archetype  component.Archetype
	Position   cp.Vector
	Width      float64
	Height     float64
	State      component.StateID
	FacingLeft bool
	Health     float64
	MaxHealth  float64
}

type PickupView struct {
	ID       ecs.Entity
	Kind     component.PickupKind
	Amount   int
	Position cp.Vector
}

// Enemies lists the living enemies in entity order. Position is the body
// center.
func (s *Session) Enemies() []EnemyView {
	var out []EnemyView
	ecs.ForEach4(s.world,
		component.EnemyComponent.Kind(),
		component.AIStateComponent.Kind(),
		component.HealthComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, enemy *component.Enemy, state *component.AIState, h *component.Health, body *component.PhysicsBody) {
			if h.Dead || body.Body == nil {
				return
			}
			out = append(out, EnemyView{
				ID:         e,
				Archetype:  enemy.Archetype,
				Position:   body.Body.Position(),
				Width:      body.Width,
				Height:     body.Height,
				State:      state.Current,
				FacingLeft: state.FacingLeft,
				Health:     h.Current,
				MaxHealth:  h.Max,
			})
		})
	return out
}

func (s *Session) Pickups() []PickupView {
	var out []PickupView
	ecs.ForEach2(s.world, component.PickupComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, p *component.Pickup, t *component.Transform) {
			out = append(out, PickupView{ID: e, Kind: p.Kind, Amount: p.Amount, Position: cp.Vector{X: t.X, Y: t.Y}})
		})
	return out
}
