package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeGround cp.CollisionType = iota + 1
	collisionTypeEnemy
)

// enemyGroup puts every enemy shape in one non-zero group so enemies pass
// through each other and only collide with the ground.
const enemyGroup uint = 1

// groundSlop absorbs the penetration Chipmunk leaves after resolving a
// resting contact.
const groundSlop = 0.1

// PhysicsWorld owns the Chipmunk space for the arena: a flat static
// ground and one dynamic, non-rotating body per enemy.
type PhysicsWorld struct {
	space   *cp.Space
	groundY float64
	ground  *cp.Shape
}

// NewPhysicsWorld creates a space with the ground top at groundY.
// Gravity is negative for a Y-up world.
func NewPhysicsWorld(groundY, gravity float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	bb := cp.BB{L: -1e5, B: groundY - 50, R: 1e5, T: groundY}
	ground := cp.NewBox2(space.StaticBody, bb, 0)
	ground.SetFriction(1)
	ground.SetElasticity(0)
	ground.SetCollisionType(collisionTypeGround)
	space.AddShape(ground)

	return &PhysicsWorld{space: space, groundY: groundY, ground: ground}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// GroundY returns the height of the ground surface.
func (pw *PhysicsWorld) GroundY() float64 {
	if pw == nil {
		return 0
	}
	return pw.groundY
}

// AddEnemyBody creates a body of the given size whose center sits at pos.
// Enemy shapes are frictionless so horizontal velocity is never eaten by
// ground contact.
func (pw *PhysicsWorld) AddEnemyBody(pos cp.Vector, width, height, mass float64) (*cp.Body, *cp.Shape) {
	if pw == nil || pw.space == nil {
		return nil, nil
	}
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(pos)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeEnemy)
	shape.SetFilter(cp.NewShapeFilter(enemyGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	return body, shape
}

// RemoveBody detaches a body and its shape from the space.
func (pw *PhysicsWorld) RemoveBody(body *cp.Body, shape *cp.Shape) {
	if pw == nil || pw.space == nil {
		return
	}
	if shape != nil && pw.space.ContainsShape(shape) {
		pw.space.RemoveShape(shape)
	}
	if body != nil && pw.space.ContainsBody(body) {
		pw.space.RemoveBody(body)
	}
}

// Step advances the space by dt seconds.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Grounded reports whether a body of the given height rests on the ground.
func (pw *PhysicsWorld) Grounded(body *cp.Body, height float64) bool {
	if pw == nil || body == nil {
		return false
	}
	bottom := body.Position().Y - height/2
	return bottom <= pw.groundY+groundSlop && body.Velocity().Y <= 1.0
}
