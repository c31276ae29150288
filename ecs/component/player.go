package component

import "github.com/jakecoffman/cp"

// Player is the injected player context. The core never moves the player;
// the host reports its position and velocity every tick.
type Player struct {
	Position cp.Vector
	Velocity cp.Vector
	Width    float64
	Height   float64
	Reported bool
}

var PlayerComponent = NewComponent[Player]()
