package system

import (
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

// CooldownSystem counts every named timer down by the tick length and
// clamps at zero. Behaviors read readiness; nothing fires from here.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	if dt <= 0 {
		return
	}

	ecs.ForEach(w, component.CooldownsComponent.Kind(), func(e ecs.Entity, cd *component.Cooldowns) {
		for name, left := range cd.Remaining {
			left -= dt
			if left < 0 {
				left = 0
			}
			cd.Remaining[name] = left
		}
	})
}
