package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

// FirstEnemyHit traces the segment from..to against every living enemy
// box and returns the closest one with the hit point.
func FirstEnemyHit(w *ecs.World, from, to cp.Vector) (ecs.Entity, cp.Vector, bool) {
	if w == nil {
		return 0, cp.Vector{}, false
	}

	d := to.Sub(from)
	if d.X == 0 && d.Y == 0 {
		return 0, cp.Vector{}, false
	}

	closestT := math.Inf(1)
	var hit ecs.Entity
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, body *component.PhysicsBody) {
		if dead(w, e) || body.Body == nil {
			return
		}
		minX, minY, maxX, maxY := bodyAABB(body)
		if ok, t := segmentAABBHit(from.X, from.Y, d.X, d.Y, minX, minY, maxX, maxY); ok && t < closestT {
			closestT = t
			hit = e
		}
	})

	if math.IsInf(closestT, 1) {
		return 0, cp.Vector{}, false
	}
	return hit, from.Add(d.Mult(closestT)), true
}

// EnemiesInCircle lists living enemies whose box overlaps the circle and
// whose center lies on the dir side of origin. dir 0 accepts both sides.
func EnemiesInCircle(w *ecs.World, center cp.Vector, radius float64, origin cp.Vector, dir float64) []ecs.Entity {
	if w == nil || radius <= 0 {
		return nil
	}
	var out []ecs.Entity
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, body *component.PhysicsBody) {
		if dead(w, e) || body.Body == nil {
			return
		}
		pos := body.Body.Position()
		if dir != 0 && (pos.X-origin.X)*dir <= 0 {
			return
		}
		minX, minY, maxX, maxY := bodyAABB(body)
		nx := math.Max(minX, math.Min(center.X, maxX))
		ny := math.Max(minY, math.Min(center.Y, maxY))
		if center.DistanceSq(cp.Vector{X: nx, Y: ny}) <= radius*radius {
			out = append(out, e)
		}
	})
	return out
}

func dead(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	return ok && h.Dead
}

func bodyAABB(body *component.PhysicsBody) (minX, minY, maxX, maxY float64) {
	pos := body.Body.Position()
	minX = pos.X - body.Width/2
	minY = pos.Y - body.Height/2
	return minX, minY, minX + body.Width, minY + body.Height
}

func segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY float64) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if dx != 0 {
		invD := 1.0 / dx
		t1 := (minX - x0) * invD
		t2 := (maxX - x0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if x0 < minX || x0 > maxX {
		return false, 0
	}

	if dy != 0 {
		invD := 1.0 / dy
		t1 := (minY - y0) * invD
		t2 := (maxY - y0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if y0 < minY || y0 > maxY {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
