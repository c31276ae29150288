package entity

import (
	"fmt"
	"sync"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/difficulty"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/prefabs"
)

// NewEnemy builds one enemy standing with its feet at pos. Health, speeds
// and damage are scaled by profile here and never again.
func NewEnemy(w *ecs.World, spec prefabs.ArchetypeSpec, archetype component.Archetype, profile difficulty.Profile, pos cp.Vector, generation uint64) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, fmt.Errorf("enemy: world has no physics")
	}

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 2
	}
	hp := profile.Health(spec.Health)
	if hp <= 0 {
		hp = 1
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	durations := make(map[string]float64, len(spec.Timers))
	for name, d := range spec.Timers {
		durations[name] = d
	}
	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Archetype:     archetype,
		MoveSpeed:     profile.Speed(spec.MoveSpeed),
		ChargeSpeed:   profile.Speed(spec.ChargeSpeed),
		CloseRange:    spec.CloseRange,
		Damage:        profile.Damage(spec.Damage),
		AttackRange:   spec.AttackRange,
		PushForce:     spec.PushForce,
		JumpForce:     spec.JumpForce,
		LeapForce:     spec.LeapForce,
		FlipThreshold: spec.FlipThreshold,
		Durations:     durations,
		Generation:    generation,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy component: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{Current: hp, Max: hp}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIStateComponent.Kind(), &component.AIState{}); err != nil {
		return 0, fmt.Errorf("enemy: add ai state: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIConfigComponent.Kind(), &component.AIConfig{
		FSM:  archetype.String(),
		Spec: fsmOverride(archetype, spec.FSM),
	}); err != nil {
		return 0, fmt.Errorf("enemy: add ai config: %w", err)
	}

	if err := ecs.Add(w, entity, component.CooldownsComponent.Kind(), &component.Cooldowns{}); err != nil {
		return 0, fmt.Errorf("enemy: add cooldowns: %w", err)
	}

	center := cp.Vector{X: pos.X, Y: pos.Y + height/2}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: center.X, Y: center.Y}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	body, shape := pw.AddEnemyBody(center, width, height, spec.Mass)
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:   body,
		Shape:  shape,
		Width:  width,
		Height: height,
		Mass:   body.Mass(),
	}); err != nil {
		pw.RemoveBody(body, shape)
		return 0, fmt.Errorf("enemy: add physics body: %w", err)
	}

	return entity, nil
}

var overrides = struct {
	sync.Mutex
	byArchetype map[component.Archetype]convertedFSM
}{byArchetype: make(map[component.Archetype]convertedFSM)}

type convertedFSM struct {
	src *prefabs.FSMSpec
	out *component.AIFSMSpec
}

// fsmOverride converts a prefab table into the component form, or nil
// when the prefab does not override the built-in one. Spawns from the same
// loaded prefab share one converted table.
func fsmOverride(archetype component.Archetype, spec *prefabs.FSMSpec) *component.AIFSMSpec {
	if spec == nil || (spec.Initial == "" && len(spec.States) == 0) {
		return nil
	}
	overrides.Lock()
	defer overrides.Unlock()
	if c, ok := overrides.byArchetype[archetype]; ok && c.src == spec {
		return c.out
	}
	out := &component.AIFSMSpec{
		Initial:     spec.Initial,
		States:      make(map[string]component.AIFSMStateSpec, len(spec.States)),
		Transitions: spec.Transitions,
	}
	for name, s := range spec.States {
		out.States[name] = component.AIFSMStateSpec{OnEnter: s.OnEnter, While: s.While, OnExit: s.OnExit}
	}
	overrides.byArchetype[archetype] = convertedFSM{src: spec, out: out}
	return out
}
