package component

// Transform mirrors the physics position for readers that do not touch
// Chipmunk directly (hosts, reports).
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
