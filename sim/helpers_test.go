package sim

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/levels"
	"github.com/milk9111/lightsout/prefabs"
)

const tick = 1.0 / 64

type fixture struct {
	t   *testing.T
	s   *Session
	rec *Recorder
}

func spawnPoint(x float64, side string) levels.Entity {
	return levels.Entity{Type: levels.EntitySpawnPoint, X: x, Props: map[string]any{"side": side}}
}

func testLevel(entities ...levels.Entity) *levels.Level {
	return &levels.Level{Name: "test", Gravity: -20, Width: 60, Entities: entities}
}

// newFixture builds a seeded Medium session on a two-point test level.
// mutate may adjust the options, including the loaded director spec.
func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })

	dir, err := prefabs.LoadDirectorSpec()
	require.NoError(t, err)
	rec := &Recorder{}
	opts := Options{
		Difficulty:   "Medium",
		Seed:         7,
		Level:        testLevel(spawnPoint(-20, "left"), spawnPoint(20, "right")),
		Director:     dir,
		Collaborator: rec,
	}
	if mutate != nil {
		mutate(&opts)
	}
	s, err := NewSession(opts)
	require.NoError(t, err)
	return &fixture{t: t, s: s, rec: rec}
}

// walkersOnly makes every wave spawn a walker.
func walkersOnly(o *Options) {
	o.Director.ArchetypeWeights = map[string]float64{"walker": 1}
}

func (f *fixture) player(x float64) {
	f.s.ReportPlayerPosition(cp.Vector{X: x, Y: 1}, cp.Vector{})
}

func (f *fixture) run(ticks int) {
	for i := 0; i < ticks; i++ {
		f.s.Tick(tick)
	}
}

// runUntil ticks until cond holds, failing after max ticks.
func (f *fixture) runUntil(max int, cond func() bool) {
	f.t.Helper()
	for i := 0; i < max; i++ {
		f.s.Tick(tick)
		if cond() {
			return
		}
	}
	f.t.Fatalf("condition not met within %d ticks", max)
}

func (f *fixture) onlyEnemy() EnemyView {
	f.t.Helper()
	enemies := f.s.Enemies()
	require.Len(f.t, enemies, 1)
	return enemies[0]
}

func (f *fixture) playerHits() []Hit {
	var out []Hit
	for _, h := range f.rec.Hits {
		if h.Target == PlayerTarget {
			out = append(out, h)
		}
	}
	return out
}

func (f *fixture) spawnsOf(a component.Archetype) int {
	return f.rec.SpawnsByArchetype()[a]
}
