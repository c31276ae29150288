package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
)

func TestEnemiesIdleUntilPlayerReported(t *testing.T) {
	h := newHarness(t)
	walker := h.spawn(component.ArchetypeWalker, 0)
	runner := h.spawn(component.ArchetypeRunner, 4)

	h.run(32)
	assert.Equal(t, stateIdle, h.state(walker))
	assert.Equal(t, stateIdle, h.state(runner))
	assert.InDelta(t, 0, h.pos(walker).X, 1e-6)
	assert.Empty(t, h.events)
}

func TestWalkerStrikesOnContactOncePerWindow(t *testing.T) {
	h := newHarness(t)
	walker := h.spawn(component.ArchetypeWalker, 0)
	h.player(5)

	h.runUntil(64*5, func() bool { return h.count(ecs.EventPlayerDamaged) > 0 })

	hits := h.of(ecs.EventPlayerDamaged)
	require.Len(t, hits, 1)
	assert.Equal(t, 15, hits[0].Data)
	assert.Equal(t, walker, hits[0].Entity)

	shoves := h.of(ecs.EventKnockback)
	require.Len(t, shoves, 1)
	assert.Equal(t, cp.Vector{X: 10}, shoves[0].Data)

	h.run(1)
	assert.Equal(t, stateRecover, h.state(walker))

	// The 1.5s window keeps a touching walker from hitting again.
	h.run(63)
	assert.Equal(t, 1, h.count(ecs.EventPlayerDamaged))
	h.run(40)
	assert.Equal(t, 2, h.count(ecs.EventPlayerDamaged))
}

func TestWalkerChargesInsideCloseRange(t *testing.T) {
	h := newHarness(t)
	walker := h.spawn(component.ArchetypeWalker, 0)
	h.player(10)

	h.run(16)
	require.Equal(t, statePursue, h.state(walker))
	far := h.pos(walker).X
	assert.InDelta(t, 1.5*16*tick, far, 0.05)

	h.player(h.pos(walker).X + 2.5)
	start := h.pos(walker).X
	h.run(8)
	assert.InDelta(t, 3.0*8*tick, h.pos(walker).X-start, 0.05)
}

func TestRunnerDamagesWhileTouching(t *testing.T) {
	h := newHarness(t)
	runner := h.spawn(component.ArchetypeRunner, 0)
	h.player(3)

	h.runUntil(64*3, func() bool { return h.state(runner) == stateAttack })
	require.Equal(t, 1, h.count(ecs.EventPlayerDamaged))
	assert.Equal(t, 1, h.count(ecs.EventEnemyAttack))

	// Still touching: hurts again every second and shoves every tick.
	h.run(159)
	assert.Equal(t, stateAttack, h.state(runner))
	assert.Equal(t, 3, h.count(ecs.EventPlayerDamaged))
	assert.GreaterOrEqual(t, h.count(ecs.EventKnockback), 150)

	h.player(40)
	h.run(1)
	assert.Equal(t, statePursue, h.state(runner))
}

func TestJumperLeapsAtDistantPlayerAndLands(t *testing.T) {
	h := newHarness(t)
	jumper := h.spawn(component.ArchetypeJumper, 0)
	h.player(10)

	h.run(1)
	require.Equal(t, stateLeaping, h.state(jumper))

	h.run(8)
	p := h.pos(jumper)
	assert.Greater(t, p.Y, 0.8, "jumper should be airborne")

	h.runUntil(64*3, func() bool { return h.state(jumper) == stateIdle })
	assert.Greater(t, h.pos(jumper).X, 5.0)
	assert.Zero(t, h.count(ecs.EventPlayerDamaged))

	cd, ok := ecs.Get(h.w, jumper, component.CooldownsComponent.Kind())
	require.True(t, ok)
	assert.False(t, cd.Ready("jump"), "jump cooldown should still be running after a short hop")
}

func TestJumperAttackEndsInRecoil(t *testing.T) {
	h := newHarness(t)
	jumper := h.spawn(component.ArchetypeJumper, 0)
	h.player(1.2)

	h.run(1)
	require.Equal(t, stateAttacking, h.state(jumper))
	assert.Equal(t, 1, h.count(ecs.EventEnemyAttack))

	h.run(25)
	assert.Zero(t, h.count(ecs.EventPlayerDamaged), "damage lands after the windup")

	h.runUntil(16, func() bool { return h.state(jumper) == stateAttackRecover })
	hits := h.of(ecs.EventPlayerDamaged)
	require.Len(t, hits, 1)
	assert.Equal(t, 20, hits[0].Data)

	h.runUntil(32, func() bool { return h.state(jumper) == stateRecoiling })
	h.run(4)
	assert.Less(t, h.pos(jumper).X, 0.0, "recoil hops away from the player")

	h.runUntil(64, func() bool { return h.state(jumper) == stateIdle })
	assert.Equal(t, 1, h.count(ecs.EventPlayerDamaged))
}

func TestBruteAttackCadence(t *testing.T) {
	h := newHarness(t)
	brute := h.spawn(component.ArchetypeBrute, 0)
	h.player(1)

	h.run(1)
	require.Equal(t, stateAttacking, h.state(brute))

	h.run(100)
	require.Equal(t, 1, h.count(ecs.EventPlayerDamaged))
	assert.Equal(t, 20, h.of(ecs.EventPlayerDamaged)[0].Data)
	assert.Equal(t, stateIdle, h.state(brute))

	h.run(69)
	assert.Equal(t, 2, h.count(ecs.EventPlayerDamaged))
}

func TestBruteWhiffsWhenPlayerLeaves(t *testing.T) {
	h := newHarness(t)
	brute := h.spawn(component.ArchetypeBrute, 0)
	h.player(1)

	h.run(1)
	require.Equal(t, stateAttacking, h.state(brute))
	h.player(6)
	h.run(40)
	assert.Zero(t, h.count(ecs.EventPlayerDamaged))

	h.run(64)
	assert.Equal(t, statePursue, h.state(brute))
	assert.Greater(t, h.pos(brute).X, 0.5)
}

func TestBehaviorUsesValidOverride(t *testing.T) {
	h := newHarness(t)
	brute := h.spawn(component.ArchetypeBrute, 0)
	cfg, ok := ecs.Get(h.w, brute, component.AIConfigComponent.Kind())
	require.True(t, ok)
	cfg.Spec = &component.AIFSMSpec{
		Initial: "wait",
		States: map[string]component.AIFSMStateSpec{
			"wait":  {While: []map[string]any{{"stop_x": nil}}},
			"chase": {While: []map[string]any{{"pursue": nil}}},
		},
		Transitions: map[string][]map[string]any{
			"wait": {{"sees_player": "chase"}},
		},
	}
	h.player(10)

	h.run(1)
	assert.Equal(t, component.StateID("chase"), h.state(brute))
	h.run(32)
	assert.Greater(t, h.pos(brute).X, 0.5)
}

func TestBehaviorFallsBackOnBrokenOverride(t *testing.T) {
	h := newHarness(t)
	walker := h.spawn(component.ArchetypeWalker, 0)
	cfg, _ := ecs.Get(h.w, walker, component.AIConfigComponent.Kind())
	cfg.Spec = &component.AIFSMSpec{Initial: "nowhere"}
	h.player(10)

	h.run(2)
	assert.Equal(t, statePursue, h.state(walker))
}

func TestOverrideCompiledOncePerTable(t *testing.T) {
	sys := NewEnemyBehaviorSystem(nil)
	table := func() *component.AIFSMSpec {
		return &component.AIFSMSpec{
			Initial: "wait",
			States:  map[string]component.AIFSMStateSpec{"wait": {While: []map[string]any{{"stop_x": nil}}}},
		}
	}
	brute := &component.Enemy{Archetype: component.ArchetypeBrute}
	shared := table()

	first := sys.FSM(brute, &component.AIConfig{Spec: shared})
	require.NotNil(t, first)
	for i := 0; i < 50; i++ {
		assert.Same(t, first, sys.FSM(brute, &component.AIConfig{Spec: shared}))
	}
	assert.Len(t, sys.fsmCache, 1)

	reloaded := sys.FSM(brute, &component.AIConfig{Spec: table()})
	assert.NotSame(t, first, reloaded)
	assert.Len(t, sys.fsmCache, 1)
}

func TestDeadEnemiesAreSweptOnce(t *testing.T) {
	h := newHarness(t)
	walker := h.spawn(component.ArchetypeWalker, 0)
	body, _ := ecs.Get(h.w, walker, component.PhysicsBodyComponent.Kind())
	cpBody := body.Body

	assert.False(t, DamageEnemy(h.w, walker, 20))
	assert.True(t, DamageEnemy(h.w, walker, 30))
	assert.False(t, DamageEnemy(h.w, walker, 30), "already dead")

	h.run(1)
	assert.False(t, ecs.IsAlive(h.w, walker))
	assert.False(t, h.w.PhysicsWorld().Space().ContainsBody(cpBody))

	deaths := h.of(ecs.EventEnemyDied)
	require.Len(t, deaths, 1)
	death := deaths[0].Data.(EnemyDeath)
	assert.Equal(t, component.ArchetypeWalker, death.Archetype)
	assert.Equal(t, uint64(1), death.Generation)

	_, ok := Kill(h.w, walker)
	assert.False(t, ok)
	h.run(1)
	assert.Equal(t, 1, h.count(ecs.EventEnemyDied))
}
