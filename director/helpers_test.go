package director

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs/component"
)

type pickupDrop struct {
	kind component.PickupKind
	pos  cp.Vector
}

type recordingSink struct {
	spawns  []SpawnRequest
	waves   []WaveAnnouncement
	pickups []pickupDrop
}

func (s *recordingSink) SpawnEnemy(req SpawnRequest) {
	s.spawns = append(s.spawns, req)
}

func (s *recordingSink) WaveAnnounced(a WaveAnnouncement) {
	s.waves = append(s.waves, a)
}

func (s *recordingSink) SpawnPickup(kind component.PickupKind, pos cp.Vector) {
	s.pickups = append(s.pickups, pickupDrop{kind: kind, pos: pos})
}

type fixedPlayer struct {
	pos cp.Vector
	ok  bool
}

func (p *fixedPlayer) PlayerPosition() (cp.Vector, bool) {
	return p.pos, p.ok
}
