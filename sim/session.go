// Package sim ties the combat core together: one Session owns the ECS
// world, the wave director, the power-up cadence, the economy and the
// player vitals, and talks to the host only through Collaborator.
package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/lightsout/common"
	"github.com/milk9111/lightsout/difficulty"
	"github.com/milk9111/lightsout/director"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/ecs/entity"
	"github.com/milk9111/lightsout/ecs/system"
	"github.com/milk9111/lightsout/economy"
	"github.com/milk9111/lightsout/levels"
	"github.com/milk9111/lightsout/prefabs"
)

// Stats are running totals for reports.
type Stats struct {
	Ticks            int
	Spawned          int
	Kills            int
	DamageTaken      int
	PickupsDropped   int
	PickupsCollected int
	ShotsFired       int
	ShotsHit         int
}

// Session is one play-through of a level. It is single threaded: every
// method must be called from the goroutine that calls Tick.
type Session struct {
	id      uuid.UUID
	opts    Options
	logger  *zap.Logger
	collab  Collaborator
	profile difficulty.Profile
	rng     common.Random
	level   *levels.Level
	enemies *prefabs.EnemySpec
	spec    prefabs.DirectorSpec

	generation uint64
	world      *ecs.World
	sched      *ecs.Scheduler
	settled    *ecs.Scheduler
	director   *director.WaveDirector
	points     *director.SpawnPointSelector
	archetypes *director.ArchetypeSelector
	powerups   *director.PowerUpScheduler
	campaign   *director.Campaign
	triggers   *director.TriggerSet
	economy    *economy.Economy
	flashlight *economy.Flashlight
	vitals     *Vitals

	paused     bool
	over       bool
	torn       bool
	meleeTimer float64
	stats      Stats
}

func NewSession(opts Options) (*Session, error) {
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session", id.String()))

	collab := opts.Collaborator
	if collab == nil {
		collab = NopCollaborator{}
	}

	profile, ok := difficulty.ForName(opts.Difficulty)
	if !ok {
		logger.Info("unknown difficulty, using default",
			zap.String("requested", opts.Difficulty),
			zap.String("tier", string(profile.Tier)))
	}

	rng := opts.Random
	if rng == nil {
		rng = common.NewRandom(opts.Seed)
	}

	enemies := opts.Enemies
	if enemies == nil {
		spec, err := prefabs.LoadEnemySpec()
		if err != nil {
			return nil, fmt.Errorf("sim: new session: %w", err)
		}
		enemies = spec
	}
	dirSpec := opts.Director
	if dirSpec == nil {
		spec, err := prefabs.LoadDirectorSpec()
		if err != nil {
			return nil, fmt.Errorf("sim: new session: %w", err)
		}
		dirSpec = spec
	}
	lvl := opts.Level
	if lvl == nil {
		l, err := levels.Load("", "arena")
		if err != nil {
			return nil, fmt.Errorf("sim: new session: %w", err)
		}
		lvl = l
	}

	s := &Session{
		id:      id,
		opts:    opts,
		logger:  logger,
		collab:  collab,
		profile: profile,
		rng:     rng,
		level:   lvl,
		enemies: enemies,
		spec:    withDefaults(*dirSpec),
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	logger.Info("session started",
		zap.String("difficulty", string(profile.Tier)),
		zap.String("level", lvl.Name),
		zap.Int("spawn_points", len(spawnCandidates(lvl))))
	return s, nil
}

// build creates a fresh world and director generation and starts wave 1.
func (s *Session) build() error {
	s.generation++

	if s.world == nil {
		w := ecs.NewWorld()
		w.SetPhysicsWorld(ecs.NewPhysicsWorld(s.level.GroundY, s.level.Gravity))
		if _, err := entity.NewPlayer(w, s.spec.Player.Width, s.spec.Player.Height); err != nil {
			return fmt.Errorf("sim: build: %w", err)
		}
		s.world = w
	} else {
		s.clearWorld()
	}
	s.sched = ecs.NewScheduler(
		system.NewCooldownSystem(),
		system.NewEnemyBehaviorSystem(s.logger),
		system.NewPhysicsSystem(),
		system.NewDeathSystem(),
	)
	// After game over enemies stop thinking but bodies still settle.
	s.settled = ecs.NewScheduler(
		system.NewPhysicsSystem(),
		system.NewDeathSystem(),
	)

	s.vitals = NewVitals(s.spec.Player.MaxHealth)
	s.flashlight = economy.NewFlashlight(s.spec.Player.BatteryCapacity, s.spec.Player.BatteryDrain)
	s.economy = economy.New(economyConfig(s.spec.Economy), s.vitals, s.logger)
	s.economy.AttachFlashlight(s.flashlight)
	s.economy.Subscribe(s.collab.ResourcesChanged)

	h := hooks{s}
	s.points = director.NewSpawnPointSelector(*s.spec.MinSpawnDistance, s.rng)
	s.archetypes = director.NewArchetypeSelector(archetypeWeights(s.spec.ArchetypeWeights), s.rng)
	s.director = director.NewWaveDirector(director.Options{
		Rules:        s.rules(),
		Points:       s.points,
		Archetypes:   s.archetypes,
		Candidates:   spawnCandidates(s.level),
		Player:       h,
		Sink:         h,
		Logger:       s.logger,
		Generation:   s.generation,
		InitialDelay: s.spec.InitialDelay,
		Announce: director.AnnounceTiming{
			LetterDelay: s.spec.Announce.LetterDelay,
			Hold:        s.spec.Announce.Hold,
		},
	})
	s.powerups = director.NewPowerUpScheduler(s.spec.PowerUps.Interval, powerUpWeights(s.spec.PowerUps.Weights), powerUpPoints(s.level), s.rng, h)
	s.campaign = director.NewCampaign(campaignEntries(s.level, s.logger), h)
	s.triggers = director.NewTriggerSet(proximityTriggers(s.level, s.logger), h, h)

	s.paused = false
	s.over = false
	s.torn = false
	s.meleeTimer = 0

	s.collab.ResourcesChanged(s.economy.Counters())
	s.director.Start()
	return nil
}

// clearWorld destroys every enemy and pickup. The world itself is kept so
// handles the host still holds go stale instead of aliasing new entities.
func (s *Session) clearWorld() {
	pw := s.world.PhysicsWorld()
	ecs.ForEach(s.world, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody) {
		pw.RemoveBody(b.Body, b.Shape)
	})
	for _, e := range ecs.Entities(s.world) {
		if !ecs.Has(s.world, e, component.PlayerComponent.Kind()) {
			ecs.DestroyEntity(s.world, e)
		}
	}
	ecs.ForEach(s.world, component.PlayerComponent.Kind(), func(_ ecs.Entity, p *component.Player) {
		p.Reported = false
	})
	s.world.Events().Drain()
}

func (s *Session) rules() director.Rules {
	base := director.DefaultRules{BaseInterval: s.spec.BaseInterval}
	if s.opts.WaveScript == "" {
		return base
	}
	src, err := prefabs.LoadScript(s.opts.WaveScript)
	if err != nil {
		s.logger.Warn("wave script unavailable, using built-in rules",
			zap.String("script", s.opts.WaveScript), zap.Error(err))
		return base
	}
	r, err := director.NewScriptRules(src, s.spec.BaseInterval, s.logger)
	if err != nil {
		s.logger.Warn("wave script rejected, using built-in rules",
			zap.String("script", s.opts.WaveScript), zap.Error(err))
		return base
	}
	return r
}

// Tick advances the simulation by dt seconds: director cadences first,
// then the per-entity systems, then the economy, then outbound events.
func (s *Session) Tick(dt float64) {
	if s.paused || s.torn || dt <= 0 {
		return
	}

	s.director.Update(dt)
	s.powerups.Update(dt)
	s.campaign.Update(dt)
	s.triggers.Update()

	if s.over {
		s.settled.Update(s.world, dt)
	} else {
		s.sched.Update(s.world, dt)
	}

	s.economy.Update(dt)
	if s.meleeTimer > 0 {
		s.meleeTimer = math.Max(0, s.meleeTimer-dt)
	}

	s.dispatch()
	s.stats.Ticks++
}

func (s *Session) dispatch() {
	for _, ev := range s.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventEnemyAttack:
			if s.over {
				continue
			}
			s.collab.PlayAttackEffect(ev.Entity, s.archetypeOf(ev.Entity))
		case ecs.EventPlayerDamaged:
			n, _ := ev.Data.(int)
			s.hurtPlayer(n)
		case ecs.EventKnockback:
			if s.over {
				continue
			}
			if impulse, ok := ev.Data.(cp.Vector); ok {
				s.collab.Knockback(PlayerTarget, impulse)
			}
		case ecs.EventEnemyDied:
			death, _ := ev.Data.(system.EnemyDeath)
			s.stats.Kills++
			s.collab.PlayDeathEffect(ev.Entity, death.Archetype, death.Position)
			// Enemies of a torn-down director and scripted spawns carry a
			// generation that no longer matches.
			if death.Generation != 0 && death.Generation == s.director.Generation() {
				s.director.OnEnemyDied()
			}
		}
	}
}

func (s *Session) hurtPlayer(n int) {
	applied, died := s.vitals.TakeDamage(n)
	if applied == 0 {
		return
	}
	s.stats.DamageTaken += applied
	s.collab.Damage(PlayerTarget, applied)
	if died {
		s.gameOver()
	}
}

func (s *Session) gameOver() {
	s.over = true
	s.stopCadences()
	s.economy.CancelReload()
	s.standDown()
	s.logger.Info("player died",
		zap.Int("wave", s.director.State().Number),
		zap.Int("kills", s.stats.Kills))
	s.collab.PlayerDied()
}

// standDown discards every enemy's pending attack and jump timers and
// halts its walk.
func (s *Session) standDown() {
	ecs.ForEach(s.world, component.CooldownsComponent.Kind(), func(_ ecs.Entity, c *component.Cooldowns) {
		c.Clear()
	})
	ecs.ForEach(s.world, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody) {
		if b.Body != nil {
			v := b.Body.Velocity()
			b.Body.SetVelocityVector(cp.Vector{X: 0, Y: v.Y})
		}
	})
}

func (s *Session) stopCadences() {
	s.director.Stop()
	s.powerups.Stop()
	s.campaign.Stop()
	s.triggers.Stop()
}

func (s *Session) archetypeOf(e ecs.Entity) component.Archetype {
	if enemy, ok := ecs.Get(s.world, e, component.EnemyComponent.Kind()); ok {
		return enemy.Archetype
	}
	return component.ArchetypeWalker
}

func (s *Session) spawnEnemy(req director.SpawnRequest) {
	archetype := req.Archetype
	spec, ok := s.enemies.Archetypes[archetype.String()]
	if !ok {
		s.logger.Warn("no prefab for archetype, spawning walker", zap.String("archetype", archetype.String()))
		archetype = component.ArchetypeWalker
		spec, ok = s.enemies.Archetypes[archetype.String()]
	}
	if !ok {
		s.logger.Error("no walker prefab, spawn dropped")
		s.resolveUnspawned(req)
		return
	}

	var generation uint64
	if req.Source == director.SourceWave {
		generation = req.Generation
	}
	e, err := entity.NewEnemy(s.world, spec, archetype, s.profile, req.Position, generation)
	if err != nil {
		s.logger.Error("enemy spawn failed", zap.Error(err))
		s.resolveUnspawned(req)
		return
	}
	s.stats.Spawned++
	s.logger.Debug("enemy spawned",
		zap.String("archetype", archetype.String()),
		zap.Float64("x", req.Position.X),
		zap.Int("wave", req.Wave))
	s.collab.SpawnEntity(e, archetype, req.Position)
}

// resolveUnspawned counts a wave spawn that never made it into the world
// as dead so the wave can still clear.
func (s *Session) resolveUnspawned(req director.SpawnRequest) {
	if req.Source == director.SourceWave && req.Generation == s.director.Generation() {
		s.director.OnEnemyDied()
	}
}

func (s *Session) spawnPickup(kind component.PickupKind, pos cp.Vector) {
	amount := pickupAmount(s.spec.PowerUps, kind)
	e, err := entity.NewPickup(s.world, kind, amount, pos)
	if err != nil {
		s.logger.Error("pickup spawn failed", zap.Error(err))
		return
	}
	s.stats.PickupsDropped++
	s.logger.Debug("pickup dropped", zap.String("kind", kind.String()), zap.Float64("x", pos.X))
	s.collab.SpawnPickup(e, kind, pos)
}

// ReportPlayerPosition updates the player context read by enemies and the
// spawn selector. pos is the center of the player box.
func (s *Session) ReportPlayerPosition(pos, vel cp.Vector) {
	entity.ReportPlayer(s.world, pos, vel)
}

// ReportEnemyDied resolves an enemy killed by the host. Unknown or already
// dead entities are ignored; the return value says whether this call
// resolved the death.
func (s *Session) ReportEnemyDied(id ecs.Entity) bool {
	if s.torn {
		return false
	}
	if h, ok := ecs.Get(s.world, id, component.HealthComponent.Kind()); ok {
		if h.Dead {
			return false
		}
		h.Current = 0
		h.Dead = true
	}
	if _, ok := system.Kill(s.world, id); !ok {
		return false
	}
	s.dispatch()
	return true
}

// DamageEnemy hurts an enemy and reports whether the hit killed it.
func (s *Session) DamageEnemy(id ecs.Entity, amount float64) bool {
	if s.torn || amount <= 0 {
		return false
	}
	h, ok := ecs.Get(s.world, id, component.HealthComponent.Kind())
	if !ok || h.Dead || !ecs.Has(s.world, id, component.EnemyComponent.Kind()) {
		return false
	}
	killed := system.DamageEnemy(s.world, id, amount)
	s.collab.Damage(id, int(math.Round(amount)))
	if killed {
		system.Kill(s.world, id)
		s.dispatch()
	}
	return killed
}

// ReportPickupCollected credits a collected pickup. A waiting pickup of
// that kind is consumed and its amount credited; otherwise the configured
// amount is. It returns the credited amount.
func (s *Session) ReportPickupCollected(kind component.PickupKind) int {
	if s.torn {
		return 0
	}
	amount, ok := entity.CollectPickup(s.world, kind)
	if !ok {
		amount = pickupAmount(s.spec.PowerUps, kind)
	}
	s.economy.Credit(kind, amount)
	s.stats.PickupsCollected++
	return amount
}

// CollectPickup credits the waiting pickup id, as touched by the player
// in the host. Unknown or already collected ids credit nothing.
func (s *Session) CollectPickup(id ecs.Entity) (component.PickupKind, int, bool) {
	if s.torn {
		return 0, 0, false
	}
	p, ok := entity.TakePickup(s.world, id)
	if !ok {
		return 0, 0, false
	}
	s.economy.Credit(p.Kind, p.Amount)
	s.stats.PickupsCollected++
	return p.Kind, p.Amount, true
}

// UseHealthPack spends a pack on the living player.
func (s *Session) UseHealthPack() bool {
	if !s.acting() {
		return false
	}
	return s.economy.UseHealthPack()
}

func (s *Session) UseBatteryPack() bool {
	if !s.acting() {
		return false
	}
	return s.economy.UseBatteryPack()
}

// FireWeapon spends one round and traces a bullet from the player along
// dir (sign only). fired is false when no round could be spent; hit is
// zero on a miss.
func (s *Session) FireWeapon(dir float64) (hit ecs.Entity, fired bool) {
	if !s.acting() || dir == 0 {
		return 0, false
	}
	if !s.economy.ConsumeAmmo() {
		return 0, false
	}
	s.stats.ShotsFired++

	from, ok := entity.PlayerPosition(s.world)
	if !ok {
		return 0, true
	}
	to := from.Add(cp.Vector{X: common.Sign(dir) * s.spec.Player.BulletRange})
	target, _, ok := system.FirstEnemyHit(s.world, from, to)
	if !ok {
		return 0, true
	}
	s.stats.ShotsHit++
	s.DamageEnemy(target, s.spec.Player.BulletDamage)
	return target, true
}

// Melee swings at every enemy in front of the player within reach. It is
// rate limited by the melee cooldown and returns the enemies struck.
func (s *Session) Melee(dir float64) []ecs.Entity {
	if !s.acting() || dir == 0 || s.meleeTimer > 0 {
		return nil
	}
	s.meleeTimer = s.spec.Player.MeleeCooldown

	origin, ok := entity.PlayerPosition(s.world)
	if !ok {
		return nil
	}
	sign := common.Sign(dir)
	reach := s.spec.Player.MeleeRange
	center := origin.Add(cp.Vector{X: sign * reach / 2})
	targets := system.EnemiesInCircle(s.world, center, reach, origin, sign)
	for _, t := range targets {
		s.DamageEnemy(t, s.spec.Player.MeleeDamage)
	}
	return targets
}

// Reload starts a timed reload. Requests during a reload are ignored.
func (s *Session) Reload() bool {
	if !s.acting() {
		return false
	}
	return s.economy.StartReload(s.spec.Economy.ReloadAmount)
}

func (s *Session) acting() bool {
	return !s.torn && !s.over && !s.paused
}

// Pause freezes every timer and cadence until Resume.
func (s *Session) Pause() {
	s.paused = true
}

func (s *Session) Resume() {
	s.paused = false
}

func (s *Session) Paused() bool {
	return s.paused
}

// Restart clears every enemy and pickup and starts wave 1 under a new
// director generation. Difficulty stays what it was at session start.
func (s *Session) Restart() error {
	s.stopCadences()
	s.logger.Info("session restart", zap.Uint64("generation", s.generation+1))
	return s.build()
}

// Teardown stops every cadence. Later ticks, deaths and inputs are
// ignored.
func (s *Session) Teardown() {
	if s.torn {
		return
	}
	s.stopCadences()
	s.economy.CancelReload()
	s.torn = true
	s.logger.Info("session torn down", zap.Int("wave", s.director.State().Number))
}

// ReloadSpecs re-reads the prefabs. Enemy stats apply to the next spawn;
// pacing and weights apply now, wave rules from the next wave. Economy
// and vitals settings wait for Restart.
func (s *Session) ReloadSpecs() error {
	enemies, err := prefabs.LoadEnemySpec()
	if err != nil {
		return fmt.Errorf("sim: reload specs: %w", err)
	}
	dirSpec, err := prefabs.LoadDirectorSpec()
	if err != nil {
		return fmt.Errorf("sim: reload specs: %w", err)
	}

	s.enemies = enemies
	s.spec = withDefaults(*dirSpec)
	s.archetypes.Weights = archetypeWeights(s.spec.ArchetypeWeights)
	s.points.MinDistance = *s.spec.MinSpawnDistance
	s.powerups.Interval = s.spec.PowerUps.Interval
	s.powerups.Weights = powerUpWeights(s.spec.PowerUps.Weights)
	s.director.SetRules(s.rules())

	s.logger.Info("specs reloaded",
		zap.Float64("base_interval", s.spec.BaseInterval),
		zap.Int("archetypes", len(enemies.Archetypes)))
	return nil
}

func (s *Session) ID() string {
	return s.id.String()
}

func (s *Session) Generation() uint64 {
	return s.generation
}

func (s *Session) Wave() director.WaveState {
	return s.director.State()
}

func (s *Session) Counters() economy.Counters {
	return s.economy.Counters()
}

func (s *Session) Reloading() bool {
	return s.economy.Reloading()
}

// Health returns the player's current and maximum health.
func (s *Session) Health() (current, maxHealth int) {
	return s.vitals.Current, s.vitals.Max
}

// Light returns the flashlight charge and capacity.
func (s *Session) Light() (charge, capacity float64) {
	return s.flashlight.Charge(), s.flashlight.Capacity
}

// PlayerSpec returns the player tuning the session was built with.
func (s *Session) PlayerSpec() prefabs.PlayerSpec {
	return s.spec.Player
}

// Over reports whether the player has died.
func (s *Session) Over() bool {
	return s.over
}

func (s *Session) Profile() difficulty.Profile {
	return s.profile
}

func (s *Session) Level() *levels.Level {
	return s.level
}

func (s *Session) Stats() Stats {
	return s.stats
}

// World exposes the ECS world for hosts that draw straight from it.
func (s *Session) World() *ecs.World {
	return s.world
}

// hooks adapts the session to the director's sink and locator interfaces
// without widening the Session API.
type hooks struct {
	s *Session
}

func (h hooks) SpawnEnemy(req director.SpawnRequest) {
	h.s.spawnEnemy(req)
}

func (h hooks) WaveAnnounced(a director.WaveAnnouncement) {
	h.s.collab.WaveChanged(a)
}

func (h hooks) SpawnPickup(kind component.PickupKind, pos cp.Vector) {
	h.s.spawnPickup(kind, pos)
}

func (h hooks) PlayerPosition() (cp.Vector, bool) {
	return entity.PlayerPosition(h.s.world)
}
