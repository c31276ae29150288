package director

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/common"
	"github.com/milk9111/lightsout/ecs/component"
)

// PowerUpWeights are the drop probabilities. Battery takes the remainder.
type PowerUpWeights struct {
	Health  float64 `yaml:"health"`
	Ammo    float64 `yaml:"ammo"`
	Battery float64 `yaml:"battery"`
}

func DefaultPowerUpWeights() PowerUpWeights {
	return PowerUpWeights{Health: 0.33, Ammo: 0.33, Battery: 0.34}
}

// PickupSink receives power-up spawn requests.
type PickupSink interface {
	SpawnPickup(kind component.PickupKind, pos cp.Vector)
}

// PowerUpScheduler drops one pickup every Interval seconds at a uniformly
// chosen point of its pool. The first drop comes one interval after start.
type PowerUpScheduler struct {
	Interval float64
	Weights  PowerUpWeights
	points   []cp.Vector
	rng      common.Random
	sink     PickupSink
	timer    float64
	stopped  bool
}

func NewPowerUpScheduler(interval float64, w PowerUpWeights, points []cp.Vector, rng common.Random, sink PickupSink) *PowerUpScheduler {
	return &PowerUpScheduler{
		Interval: interval,
		Weights:  w,
		points:   points,
		rng:      rng,
		sink:     sink,
		timer:    interval,
	}
}

func (p *PowerUpScheduler) Update(dt float64) {
	if p.stopped || p.Interval <= 0 {
		return
	}
	p.timer -= dt
	if p.timer > 0 {
		return
	}
	p.timer += p.Interval
	p.drop()
}

func (p *PowerUpScheduler) drop() {
	if len(p.points) == 0 {
		return
	}
	kind := p.Choose()
	pos := p.points[p.rng.IntN(len(p.points))]
	if p.sink != nil {
		p.sink.SpawnPickup(kind, pos)
	}
}

// Choose draws one pickup kind.
func (p *PowerUpScheduler) Choose() component.PickupKind {
	r := p.rng.Float64()
	switch {
	case r < p.Weights.Health:
		return component.PickupHealth
	case r < p.Weights.Health+p.Weights.Ammo:
		return component.PickupAmmo
	default:
		return component.PickupBattery
	}
}

// Stop discards the pending drop.
func (p *PowerUpScheduler) Stop() {
	p.stopped = true
}

// SetPoints replaces the drop pool.
func (p *PowerUpScheduler) SetPoints(points []cp.Vector) {
	p.points = points
}
