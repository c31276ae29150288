package main

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/common"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/prefabs"
	"github.com/milk9111/lightsout/sim"
)

const (
	botSpeed      = 6.0
	kiteDistance  = 3.0
	meleeDistance = 1.2
	fireInterval  = 0.3
	lootDistance  = 8.0
	collectReach  = 0.8
	pushDecay     = 0.9
)

// bot is a scripted player that backs away from the nearest enemy while
// shooting at it, and walks to pickups when the coast is clear.
type bot struct {
	spec    prefabs.PlayerSpec
	groundY float64
	minX    float64
	maxX    float64

	pos      cp.Vector
	vel      cp.Vector
	push     float64
	facing   float64
	fireWait float64
}

func newBot(spec prefabs.PlayerSpec, groundY, halfWidth float64) *bot {
	return &bot{
		spec:    spec,
		groundY: groundY,
		minX:    -halfWidth + spec.Width/2,
		maxX:    halfWidth - spec.Width/2,
		pos:     cp.Vector{X: 0, Y: groundY + spec.Height/2},
		facing:  1,
	}
}

// knock adds an enemy push to the bot's horizontal motion.
func (b *bot) knock(impulse cp.Vector) {
	b.push += impulse.X
}

// step decides one tick of input, moves the bot and reports it.
func (b *bot) step(s *sim.Session, dt float64) {
	if b.fireWait > 0 {
		b.fireWait -= dt
	}

	move := 0.0
	dx, found := nearestEnemy(s, b.pos.X)
	if found {
		b.facing = common.Sign(dx)
		dist := math.Abs(dx)
		if dist < kiteDistance {
			move = -b.facing
		}
		if dist <= meleeDistance {
			s.Melee(b.facing)
		}
		if dist <= b.spec.BulletRange && b.fireWait <= 0 {
			if _, fired := s.FireWeapon(b.facing); fired {
				b.fireWait = fireInterval
			}
		}
	}

	if !found || math.Abs(dx) > lootDistance {
		if id, px, ok := nearestPickup(s, b.pos.X); ok {
			if math.Abs(px-b.pos.X) <= collectReach {
				s.CollectPickup(id)
			} else {
				move = common.Sign(px - b.pos.X)
			}
		}
	}

	b.manage(s)

	b.vel.X = move*botSpeed + b.push
	b.push *= pushDecay
	if math.Abs(b.push) < 0.01 {
		b.push = 0
	}
	b.pos.X = common.Clamp(b.pos.X+b.vel.X*dt, b.minX, b.maxX)

	s.ReportPlayerPosition(b.pos, b.vel)
}

// manage keeps the weapon loaded and spends packs when running low.
func (b *bot) manage(s *sim.Session) {
	if s.Counters().Ammo == 0 && !s.Reloading() {
		s.Reload()
	}
	if current, maxHealth := s.Health(); maxHealth > 0 && current*2 < maxHealth {
		s.UseHealthPack()
	}
	if charge, capacity := s.Light(); capacity > 0 && charge < capacity/4 {
		s.UseBatteryPack()
	}
}

// nearestEnemy returns the signed x offset to the closest living enemy.
func nearestEnemy(s *sim.Session, x float64) (float64, bool) {
	bestDX := math.Inf(1)
	for _, e := range s.Enemies() {
		if dx := e.Position.X - x; math.Abs(dx) < math.Abs(bestDX) {
			bestDX = dx
		}
	}
	return bestDX, !math.IsInf(bestDX, 1)
}

func nearestPickup(s *sim.Session, x float64) (ecs.Entity, float64, bool) {
	var best ecs.Entity
	bestX := math.Inf(1)
	for _, p := range s.Pickups() {
		if math.Abs(p.Position.X-x) < math.Abs(bestX-x) {
			best, bestX = p.ID, p.Position.X
		}
	}
	return best, bestX, !math.IsInf(bestX, 1)
}
