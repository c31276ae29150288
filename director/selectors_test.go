package director

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lightsout/common"
	"github.com/milk9111/lightsout/ecs/component"
)

func TestSpawnPointSelectorAlternatesRegardlessOfOutcome(t *testing.T) {
	s := NewSpawnPointSelector(5, common.NewRandom(1))
	onlyLeft := []Candidate{{Position: cp.Vector{X: -20}, Side: SideLeft}}

	assert.Equal(t, SideRight, s.PreferredSide())
	_, ok := s.Select(onlyLeft, cp.Vector{})
	assert.False(t, ok, "right preferred, no right candidates")
	assert.Equal(t, SideLeft, s.PreferredSide())

	pos, ok := s.Select(onlyLeft, cp.Vector{})
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: -20}, pos)
	assert.Equal(t, SideRight, s.PreferredSide())
}

func TestSpawnPointSelectorRespectsMinDistance(t *testing.T) {
	rng := common.NewRandom(99)
	s := NewSpawnPointSelector(5, rng)
	var candidates []Candidate
	for x := -12.0; x <= 12; x++ {
		side := SideLeft
		if x > 0 {
			side = SideRight
		}
		candidates = append(candidates, Candidate{Position: cp.Vector{X: x, Y: 1}, Side: side})
	}
	player := cp.Vector{X: 1, Y: 1}
	hits := 0
	for i := 0; i < 500; i++ {
		pos, ok := s.Select(candidates, player)
		if !ok {
			continue
		}
		hits++
		assert.GreaterOrEqual(t, pos.Distance(player), 5.0)
	}
	assert.Greater(t, hits, 0)
}

func TestSpawnPointSelectorAutoSide(t *testing.T) {
	s := NewSpawnPointSelector(0, &common.FixedRandom{Rolls: []float64{0}})
	candidates := []Candidate{
		{Position: cp.Vector{X: -8}, Side: SideAuto},
		{Position: cp.Vector{X: 8}, Side: SideAuto},
	}
	player := cp.Vector{X: 0}

	pos, ok := s.Select(candidates, player)
	require.True(t, ok)
	assert.Equal(t, 8.0, pos.X)

	pos, ok = s.Select(candidates, player)
	require.True(t, ok)
	assert.Equal(t, -8.0, pos.X)

	// Once the player moves past the right point it counts as left.
	s.Select(candidates, player)
	pos, ok = s.Select(candidates, cp.Vector{X: 9})
	require.True(t, ok)
	assert.Equal(t, -8.0, pos.X)
}

func TestArchetypeSelectorBoundaries(t *testing.T) {
	cases := []struct {
		roll float64
		want component.Archetype
	}{
		{0.0, component.ArchetypeBrute},
		{0.05, component.ArchetypeBrute},
		{0.06, component.ArchetypeRunner},
		{0.15, component.ArchetypeRunner},
		{0.2, component.ArchetypeJumper},
		{0.35, component.ArchetypeJumper},
		{0.36, component.ArchetypeWalker},
		{0.99, component.ArchetypeWalker},
	}
	for _, c := range cases {
		s := NewArchetypeSelector(DefaultWeights(), &common.FixedRandom{Rolls: []float64{c.roll}})
		assert.Equal(t, c.want, s.Select(), "roll %v", c.roll)
	}
}

func TestArchetypeSelectorSkipsZeroWeights(t *testing.T) {
	s := NewArchetypeSelector(Weights{Runner: 0.5}, &common.FixedRandom{Rolls: []float64{0}})
	assert.Equal(t, component.ArchetypeRunner, s.Select())
}

func TestArchetypeSelectorNegativeWeightIsDisabled(t *testing.T) {
	w := Weights{Brute: -0.5, Runner: 0.2}
	for _, c := range []struct {
		roll float64
		want component.Archetype
	}{
		{0, component.ArchetypeRunner},
		{0.2, component.ArchetypeRunner},
		{0.21, component.ArchetypeWalker},
	} {
		s := NewArchetypeSelector(w, &common.FixedRandom{Rolls: []float64{c.roll}})
		assert.Equal(t, c.want, s.Select(), "roll %v", c.roll)
	}
}

func TestArchetypeSelectorFrequencies(t *testing.T) {
	const draws = 100000
	s := NewArchetypeSelector(DefaultWeights(), common.NewRandom(2024))
	counts := map[component.Archetype]int{}
	for i := 0; i < draws; i++ {
		counts[s.Select()]++
	}
	want := map[component.Archetype]float64{
		component.ArchetypeBrute:  0.05,
		component.ArchetypeRunner: 0.10,
		component.ArchetypeJumper: 0.20,
		component.ArchetypeWalker: 0.65,
	}
	for a, p := range want {
		got := float64(counts[a]) / draws
		assert.InDelta(t, p, got, 0.01, "archetype %s", a)
	}
}

func TestPowerUpSchedulerFirstDropAfterInterval(t *testing.T) {
	sink := &recordingSink{}
	points := []cp.Vector{{X: 1}, {X: 2}}
	p := NewPowerUpScheduler(15, DefaultPowerUpWeights(), points, common.NewRandom(5), sink)

	for i := 0; i < 59; i++ {
		p.Update(0.25)
	}
	assert.Empty(t, sink.pickups)
	p.Update(0.25)
	require.Len(t, sink.pickups, 1)
	assert.Contains(t, points, sink.pickups[0].pos)

	for i := 0; i < 60; i++ {
		p.Update(0.25)
	}
	assert.Len(t, sink.pickups, 2)

	p.Stop()
	for i := 0; i < 120; i++ {
		p.Update(0.25)
	}
	assert.Len(t, sink.pickups, 2)
}

func TestPowerUpSchedulerEmptyPool(t *testing.T) {
	sink := &recordingSink{}
	p := NewPowerUpScheduler(1, DefaultPowerUpWeights(), nil, common.NewRandom(5), sink)
	for i := 0; i < 10; i++ {
		p.Update(0.5)
	}
	assert.Empty(t, sink.pickups)
}

func TestPowerUpChoose(t *testing.T) {
	cases := []struct {
		roll float64
		want component.PickupKind
	}{
		{0.0, component.PickupHealth},
		{0.32, component.PickupHealth},
		{0.33, component.PickupAmmo},
		{0.65, component.PickupAmmo},
		{0.66, component.PickupBattery},
		{0.99, component.PickupBattery},
	}
	for _, c := range cases {
		p := NewPowerUpScheduler(1, DefaultPowerUpWeights(), nil, &common.FixedRandom{Rolls: []float64{c.roll}}, nil)
		assert.Equal(t, c.want, p.Choose(), "roll %v", c.roll)
	}
}

func TestCampaignFiresEachEntryOnce(t *testing.T) {
	sink := &recordingSink{}
	c := NewCampaign([]CampaignEntry{
		{Archetype: component.ArchetypeBrute, Position: cp.Vector{X: 4}, Delay: 1},
		{Archetype: component.ArchetypeRunner, Position: cp.Vector{X: -4}, Delay: 0},
	}, sink)

	c.Update(0.5)
	require.Len(t, sink.spawns, 1)
	assert.Equal(t, component.ArchetypeRunner, sink.spawns[0].Archetype)
	assert.Equal(t, SourceCampaign, sink.spawns[0].Source)

	c.Update(0.5)
	c.Update(0.5)
	assert.Len(t, sink.spawns, 2)
	assert.Equal(t, 0, c.Remaining())
}

func TestProximityTrigger(t *testing.T) {
	sink := &recordingSink{}
	player := &fixedPlayer{pos: cp.Vector{X: 20}, ok: true}
	once := &ProximityTrigger{Archetype: component.ArchetypeJumper, Position: cp.Vector{X: 0}, Radius: 5, Once: true}
	repeat := &ProximityTrigger{Archetype: component.ArchetypeWalker, Position: cp.Vector{X: 2}, Radius: 5}
	set := NewTriggerSet([]*ProximityTrigger{once, repeat}, player, sink)

	set.Update()
	assert.Empty(t, sink.spawns)

	player.pos = cp.Vector{X: 1}
	set.Update()
	set.Update()
	assert.Len(t, sink.spawns, 2, "fires on entry only")

	player.pos = cp.Vector{X: 30}
	set.Update()
	player.pos = cp.Vector{X: 1}
	set.Update()
	require.Len(t, sink.spawns, 3)
	assert.Equal(t, component.ArchetypeWalker, sink.spawns[2].Archetype)
	assert.Equal(t, SourceTrigger, sink.spawns[2].Source)
}
