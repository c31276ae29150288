package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

func NewPickup(w *ecs.World, kind component.PickupKind, amount int, pos cp.Vector) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &component.Pickup{Kind: kind, Amount: amount}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}
	return entity, nil
}

// CollectPickup removes one waiting pickup of kind and returns its
// amount. ok is false when none is waiting.
func CollectPickup(w *ecs.World, kind component.PickupKind) (amount int, ok bool) {
	for _, e := range w.Query(component.PickupComponent.Kind()) {
		p, found := ecs.Get(w, e, component.PickupComponent.Kind())
		if !found || p.Kind != kind {
			continue
		}
		amount = p.Amount
		ecs.DestroyEntity(w, e)
		return amount, true
	}
	return 0, false
}

// TakePickup removes the pickup e and returns it.
func TakePickup(w *ecs.World, e ecs.Entity) (component.Pickup, bool) {
	p, ok := ecs.Get(w, e, component.PickupComponent.Kind())
	if !ok {
		return component.Pickup{}, false
	}
	taken := *p
	ecs.DestroyEntity(w, e)
	return taken, true
}
