package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lightsout/difficulty"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/ecs/entity"
	"github.com/milk9111/lightsout/prefabs"
)

const tick = 1.0 / 64

type harness struct {
	t      *testing.T
	w      *ecs.World
	sched  *ecs.Scheduler
	spec   *prefabs.EnemySpec
	events []ecs.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	prefabs.SetDir("")
	spec, err := prefabs.LoadEnemySpec()
	require.NoError(t, err)

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(0, -20))
	_, err = entity.NewPlayer(w, 1, 2)
	require.NoError(t, err)

	return &harness{
		t:    t,
		w:    w,
		spec: spec,
		sched: ecs.NewScheduler(
			NewCooldownSystem(),
			NewEnemyBehaviorSystem(nil),
			NewPhysicsSystem(),
			NewDeathSystem(),
		),
	}
}

// player reports a still player standing with its feet at x.
func (h *harness) player(x float64) {
	entity.ReportPlayer(h.w, cp.Vector{X: x, Y: 1}, cp.Vector{})
}

func (h *harness) spawn(a component.Archetype, x float64) ecs.Entity {
	h.t.Helper()
	e, err := entity.NewEnemy(h.w, h.spec.Archetypes[a.String()], a, mustProfile("Medium"), cp.Vector{X: x}, 1)
	require.NoError(h.t, err)
	return e
}

func (h *harness) run(ticks int) {
	for i := 0; i < ticks; i++ {
		h.sched.Update(h.w, tick)
		h.events = append(h.events, h.w.Events().Drain()...)
	}
}

// runUntil ticks until cond holds, failing after max ticks.
func (h *harness) runUntil(max int, cond func() bool) int {
	h.t.Helper()
	for i := 1; i <= max; i++ {
		h.run(1)
		if cond() {
			return i
		}
	}
	h.t.Fatalf("condition not met within %d ticks", max)
	return max
}

func (h *harness) count(kind ecs.EventType) int {
	n := 0
	for _, ev := range h.events {
		if ev.Type == kind {
			n++
		}
	}
	return n
}

func (h *harness) of(kind ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, ev := range h.events {
		if ev.Type == kind {
			out = append(out, ev)
		}
	}
	return out
}

func (h *harness) state(e ecs.Entity) component.StateID {
	s, ok := ecs.Get(h.w, e, component.AIStateComponent.Kind())
	require.True(h.t, ok)
	return s.Current
}

func (h *harness) pos(e ecs.Entity) cp.Vector {
	b, ok := ecs.Get(h.w, e, component.PhysicsBodyComponent.Kind())
	require.True(h.t, ok)
	return b.Body.Position()
}

func mustProfile(name string) difficulty.Profile {
	p, _ := difficulty.ForName(name)
	return p
}
