package director

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/common"
)

// Side is the half of the arena a spawn candidate belongs to.
type Side int

const (
	SideLeft Side = iota
	SideRight
	// SideAuto resolves against the player: right of the player counts as
	// Right, left of it as Left.
	SideAuto
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "auto"
	}
}

// ParseSide maps a level entity prop to a side. Unknown values are auto.
func ParseSide(name string) Side {
	switch name {
	case "left":
		return SideLeft
	case "right":
		return SideRight
	default:
		return SideAuto
	}
}

// Candidate is one static spawn point of the level.
type Candidate struct {
	Position cp.Vector
	Side     Side
}

// SpawnPointSelector alternates the preferred side on every call and picks
// uniformly among candidates on that side far enough from the player.
type SpawnPointSelector struct {
	MinDistance float64
	rng         common.Random
	next        Side
}

// NewSpawnPointSelector starts by preferring the right side.
func NewSpawnPointSelector(minDistance float64, rng common.Random) *SpawnPointSelector {
	return &SpawnPointSelector{MinDistance: minDistance, rng: rng, next: SideRight}
}

// PreferredSide returns the side the next call will filter on.
func (s *SpawnPointSelector) PreferredSide() Side {
	return s.next
}

// Select returns a point or ok=false when no candidate survives the
// filters. The preferred side toggles either way.
func (s *SpawnPointSelector) Select(candidates []Candidate, player cp.Vector) (cp.Vector, bool) {
	side := s.next
	if side == SideRight {
		s.next = SideLeft
	} else {
		s.next = SideRight
	}

	var survivors []cp.Vector
	for _, c := range candidates {
		if !matchesSide(c, side, player) {
			continue
		}
		if c.Position.Distance(player) < s.MinDistance {
			continue
		}
		survivors = append(survivors, c.Position)
	}
	if len(survivors) == 0 {
		return cp.Vector{}, false
	}
	return survivors[s.rng.IntN(len(survivors))], true
}

func matchesSide(c Candidate, side Side, player cp.Vector) bool {
	switch c.Side {
	case SideAuto:
		if side == SideRight {
			return c.Position.X > player.X
		}
		return c.Position.X < player.X
	default:
		return c.Side == side
	}
}
