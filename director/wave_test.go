package director

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/lightsout/common"
)

func bothSides() []Candidate {
	return []Candidate{
		{Position: cp.Vector{X: -10, Y: 0}, Side: SideLeft},
		{Position: cp.Vector{X: 10, Y: 0}, Side: SideRight},
	}
}

func newTestDirector(sink *recordingSink, candidates []Candidate, delay float64) *WaveDirector {
	rng := common.NewRandom(7)
	return NewWaveDirector(Options{
		Rules:        DefaultRules{BaseInterval: 3},
		Points:       NewSpawnPointSelector(5, rng),
		Archetypes:   NewArchetypeSelector(DefaultWeights(), rng),
		Candidates:   candidates,
		Player:       &fixedPlayer{ok: true},
		Sink:         sink,
		Logger:       zap.NewNop(),
		Generation:   1,
		InitialDelay: delay,
		Announce:     AnnounceTiming{LetterDelay: 0.1, Hold: 1},
	})
}

func tickUntilSpawned(t *testing.T, d *WaveDirector, n int) {
	t.Helper()
	for i := 0; i < 10000 && d.State().Spawned < n; i++ {
		d.Update(0.25)
	}
	require.Equal(t, n, d.State().Spawned)
}

func TestWaveOneClearsIntoWaveTwo(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, bothSides(), 0)
	d.Start()

	st := d.State()
	require.Equal(t, 1, st.Number)
	assert.Equal(t, 7, st.Quota)
	assert.Equal(t, 7, st.Alive)
	assert.InDelta(t, 2.8, st.SpawnInterval, 1e-9)

	tickUntilSpawned(t, d, 7)
	assert.False(t, d.Spawning(), "cadence stops at quota")
	assert.Len(t, sink.spawns, 7)

	for i := 0; i < 6; i++ {
		assert.False(t, d.OnEnemyDied())
		assert.Equal(t, 1, d.State().Number)
	}
	assert.True(t, d.OnEnemyDied())

	require.Len(t, sink.waves, 2)
	assert.Equal(t, 2, sink.waves[1].Wave)
	assert.Equal(t, 9, d.State().Quota)
	assert.Equal(t, 0, d.State().Spawned)
}

func TestScriptedEmptyWaveStillClears(t *testing.T) {
	rules, err := NewScriptRules([]byte(`quota = wave == 1 ? 0 : 3
interval = 1.0`), 3, zap.NewNop())
	require.NoError(t, err)

	sink := &recordingSink{}
	rng := common.NewRandom(7)
	d := NewWaveDirector(Options{
		Rules:      rules,
		Points:     NewSpawnPointSelector(5, rng),
		Archetypes: NewArchetypeSelector(DefaultWeights(), rng),
		Candidates: bothSides(),
		Player:     &fixedPlayer{ok: true},
		Sink:       sink,
		Generation: 1,
	})
	d.Start()
	require.Equal(t, 7, d.State().Quota, "an empty wave uses the built-in quota")

	tickUntilSpawned(t, d, 7)
	for i := 0; i < 7; i++ {
		d.OnEnemyDied()
	}
	assert.Equal(t, 2, d.State().Number)
	assert.Equal(t, 3, d.State().Quota)
}

func TestWaveNeverAdvancesBeforeQuotaSpawned(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, bothSides(), 0)
	d.Start()
	tickUntilSpawned(t, d, 3)

	for i := 0; i < 3; i++ {
		assert.False(t, d.OnEnemyDied())
	}
	assert.Equal(t, 1, d.State().Number)
	assert.Equal(t, 4, d.State().Alive)
}

func TestSpawnIntervalCadence(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, bothSides(), 0)
	d.Start()

	d.Update(0.25)
	require.Len(t, sink.spawns, 1, "first attempt on the first tick")

	// 2.8s later the second spawn is due.
	for i := 0; i < 10; i++ {
		d.Update(0.25)
	}
	assert.Len(t, sink.spawns, 1)
	d.Update(0.25)
	d.Update(0.25)
	assert.Len(t, sink.spawns, 2)
}

func TestSpawnSkippedWithoutCandidates(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, nil, 0)
	d.Start()
	for i := 0; i < 200; i++ {
		d.Update(0.25)
	}
	assert.Empty(t, sink.spawns)
	assert.Equal(t, 0, d.State().Spawned)
	assert.True(t, d.Spawning(), "cadence keeps retrying")
}

func TestSpawnSkippedUntilPlayerReported(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, bothSides(), 0)
	player := &fixedPlayer{}
	d.opts.Player = player
	d.Start()
	d.Update(0.25)
	assert.Empty(t, sink.spawns)

	player.ok = true
	for i := 0; i < 20; i++ {
		d.Update(0.25)
	}
	assert.NotEmpty(t, sink.spawns)
}

func TestInitialDelayThenWaveOne(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, bothSides(), 3)
	d.Start()
	assert.Empty(t, sink.waves)

	for i := 0; i < 11; i++ {
		d.Update(0.25)
	}
	assert.Empty(t, sink.waves)
	d.Update(0.25)
	require.Len(t, sink.waves, 1)
	assert.Equal(t, 1, sink.waves[0].Wave)
	assert.Equal(t, "WAVE: 1", sink.waves[0].Text)
	assert.InDelta(t, 0.7, sink.waves[0].Reveal, 1e-9)
	assert.Equal(t, 1.0, sink.waves[0].Hold)
}

func TestStopDiscardsCadenceAndDeaths(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, bothSides(), 0)
	d.Start()
	tickUntilSpawned(t, d, 2)

	d.Stop()
	for i := 0; i < 100; i++ {
		d.Update(0.25)
	}
	assert.Len(t, sink.spawns, 2)
	assert.False(t, d.OnEnemyDied())
	assert.Equal(t, 7, d.State().Alive)

	d.StartWave(5)
	assert.Equal(t, 1, d.State().Number, "stopped director ignores restarts")
}

func TestSpawnRequestsCarryGeneration(t *testing.T) {
	sink := &recordingSink{}
	d := newTestDirector(sink, bothSides(), 0)
	d.Start()
	d.Update(0.25)
	require.Len(t, sink.spawns, 1)
	assert.Equal(t, uint64(1), sink.spawns[0].Generation)
	assert.Equal(t, SourceWave, sink.spawns[0].Source)
	assert.Equal(t, 1, sink.spawns[0].Wave)
}
