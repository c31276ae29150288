package director

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs/component"
)

// ProximityTrigger spawns its archetype at Position when the player comes
// within Radius. A one-shot trigger never fires again; a repeating one
// re-arms once the player leaves the radius.
type ProximityTrigger struct {
	Archetype component.Archetype
	Position  cp.Vector
	Radius    float64
	Once      bool

	fired  bool
	inside bool
}

// TriggerSet evaluates a level's triggers against the player each tick.
type TriggerSet struct {
	triggers []*ProximityTrigger
	player   PlayerLocator
	sink     Sink
	stopped  bool
}

func NewTriggerSet(triggers []*ProximityTrigger, player PlayerLocator, sink Sink) *TriggerSet {
	return &TriggerSet{triggers: triggers, player: player, sink: sink}
}

func (s *TriggerSet) Update() {
	if s.stopped || s.player == nil {
		return
	}
	pos, ok := s.player.PlayerPosition()
	if !ok {
		return
	}
	for _, t := range s.triggers {
		in := t.Position.Distance(pos) <= t.Radius
		enter := in && !t.inside
		t.inside = in
		if !enter || (t.Once && t.fired) {
			continue
		}
		t.fired = true
		if s.sink != nil {
			s.sink.SpawnEnemy(SpawnRequest{Archetype: t.Archetype, Position: t.Position, Source: SourceTrigger})
		}
	}
}

func (s *TriggerSet) Stop() {
	s.stopped = true
}
