package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

// NewPlayer creates the player context entity. Its position stays
// unreported until the host reports one.
func NewPlayer(w *ecs.World, width, height float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{Width: width, Height: height}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	return entity, nil
}

// ReportPlayer updates the player context.
func ReportPlayer(w *ecs.World, pos, vel cp.Vector) bool {
	ent, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return false
	}
	p, ok := ecs.Get(w, ent, component.PlayerComponent.Kind())
	if !ok {
		return false
	}
	p.Position = pos
	p.Velocity = vel
	p.Reported = true
	return true
}

// PlayerPosition returns the last reported player position.
func PlayerPosition(w *ecs.World) (cp.Vector, bool) {
	ent, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	p, ok := ecs.Get(w, ent, component.PlayerComponent.Kind())
	if !ok || !p.Reported {
		return cp.Vector{}, false
	}
	return p.Position, true
}
