// Package director decides when, where and what enemies and pickups
// appear: the survival wave loop, its selectors, the power-up cadence and
// the scripted campaign and proximity spawners.
package director

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/lightsout/ecs/component"
)

// SpawnSource tells the session who asked for a spawn. Only wave spawns
// report their deaths back to the director.
type SpawnSource int

const (
	SourceWave SpawnSource = iota
	SourceCampaign
	SourceTrigger
)

// SpawnRequest asks the session to create one enemy.
type SpawnRequest struct {
	Archetype  component.Archetype
	Position   cp.Vector
	Source     SpawnSource
	Wave       int
	Generation uint64
}

// WaveAnnouncement carries the wave number and the timing of the banner
// reveal; drawing it is up to the host.
type WaveAnnouncement struct {
	Wave   int
	Text   string
	Reveal float64
	Hold   float64
}

// Sink receives the director's requests.
type Sink interface {
	SpawnEnemy(req SpawnRequest)
	WaveAnnounced(a WaveAnnouncement)
}

// PlayerLocator is the injected view of the player position.
type PlayerLocator interface {
	PlayerPosition() (cp.Vector, bool)
}

// WaveState is owned by the director; callers get copies.
type WaveState struct {
	Number        int
	Quota         int
	Spawned       int
	Alive         int
	SpawnInterval float64
}

// AnnounceTiming is the letter-by-letter banner timing.
type AnnounceTiming struct {
	LetterDelay float64 `yaml:"letter_delay"`
	Hold        float64 `yaml:"hold"`
}

type Options struct {
	Rules        Rules
	Points       *SpawnPointSelector
	Archetypes   *ArchetypeSelector
	Candidates   []Candidate
	Player       PlayerLocator
	Sink         Sink
	Logger       *zap.Logger
	Generation   uint64
	InitialDelay float64
	Announce     AnnounceTiming
}

// WaveDirector runs the survival loop. All waiting is countdown state
// advanced by Update, so a paused session freezes the director exactly.
type WaveDirector struct {
	opts   Options
	logger *zap.Logger

	state      WaveState
	cadence    bool
	spawnTimer float64

	pendingStart bool
	startDelay   float64

	stopped bool
}

func NewWaveDirector(opts Options) *WaveDirector {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WaveDirector{opts: opts, logger: logger}
}

// Start arms the opening delay; wave 1 begins once it runs out.
func (d *WaveDirector) Start() {
	if d.stopped {
		return
	}
	if d.opts.InitialDelay <= 0 {
		d.StartWave(1)
		return
	}
	d.pendingStart = true
	d.startDelay = d.opts.InitialDelay
}

// StartWave resets the wave state for wave n and restarts the cadence. The
// first spawn attempt happens on the next Update.
func (d *WaveDirector) StartWave(n int) {
	if d.stopped {
		return
	}
	quota := d.opts.Rules.Quota(n)
	d.state = WaveState{
		Number:        n,
		Quota:         quota,
		Spawned:       0,
		Alive:         quota,
		SpawnInterval: d.opts.Rules.Interval(n),
	}
	d.pendingStart = false
	d.cadence = quota > 0
	d.spawnTimer = 0

	d.logger.Info("wave started",
		zap.Int("wave", n),
		zap.Int("quota", quota),
		zap.Float64("interval", d.state.SpawnInterval),
	)
	if d.opts.Sink != nil {
		d.opts.Sink.WaveAnnounced(d.announcement(n))
	}
}

func (d *WaveDirector) announcement(n int) WaveAnnouncement {
	text := fmt.Sprintf("WAVE: %d", n)
	return WaveAnnouncement{
		Wave:   n,
		Text:   text,
		Reveal: float64(len(text)) * d.opts.Announce.LetterDelay,
		Hold:   d.opts.Announce.Hold,
	}
}

// Update advances the opening delay and the spawn cadence by dt seconds.
// At most one spawn is attempted per call.
func (d *WaveDirector) Update(dt float64) {
	if d.stopped {
		return
	}
	if d.pendingStart {
		d.startDelay -= dt
		if d.startDelay <= 0 {
			d.StartWave(1)
		}
		return
	}
	if !d.cadence {
		return
	}
	d.spawnTimer -= dt
	if d.spawnTimer > 0 {
		return
	}
	d.spawnTimer += d.state.SpawnInterval
	d.attemptSpawn()
}

func (d *WaveDirector) attemptSpawn() {
	if d.state.Spawned >= d.state.Quota {
		d.stopCadence()
		return
	}
	var player cp.Vector
	if d.opts.Player != nil {
		p, ok := d.opts.Player.PlayerPosition()
		if !ok {
			d.logger.Debug("spawn skipped: player not reported", zap.Int("wave", d.state.Number))
			return
		}
		player = p
	}
	pos, ok := d.opts.Points.Select(d.opts.Candidates, player)
	if !ok {
		d.logger.Debug("spawn skipped: no valid spawn point", zap.Int("wave", d.state.Number))
		return
	}
	archetype := d.opts.Archetypes.Select()
	d.state.Spawned++
	if d.opts.Sink != nil {
		d.opts.Sink.SpawnEnemy(SpawnRequest{
			Archetype:  archetype,
			Position:   pos,
			Source:     SourceWave,
			Wave:       d.state.Number,
			Generation: d.opts.Generation,
		})
	}
	if d.state.Spawned >= d.state.Quota {
		d.stopCadence()
	}
}

func (d *WaveDirector) stopCadence() {
	d.cadence = false
}

// OnEnemyDied records one resolved enemy of the current wave and starts
// the next wave when the quota is fully spawned and resolved. It reports
// whether a new wave started.
func (d *WaveDirector) OnEnemyDied() bool {
	if d.stopped || d.state.Alive <= 0 {
		return false
	}
	d.state.Alive--
	if d.state.Alive == 0 && d.state.Spawned == d.state.Quota {
		d.StartWave(d.state.Number + 1)
		return true
	}
	return false
}

// Stop tears the director down. Pending cadences are dropped and later
// deaths are ignored.
func (d *WaveDirector) Stop() {
	d.stopped = true
	d.cadence = false
	d.pendingStart = false
}

func (d *WaveDirector) Stopped() bool {
	return d.stopped
}

// Generation identifies this director instance; enemies spawned by an
// older generation are detached from the count.
func (d *WaveDirector) Generation() uint64 {
	return d.opts.Generation
}

func (d *WaveDirector) State() WaveState {
	return d.state
}

// Spawning reports whether the cadence is still running for this wave.
func (d *WaveDirector) Spawning() bool {
	return d.cadence
}

// SetRules swaps the quota/interval rules; the change applies from the
// next wave.
func (d *WaveDirector) SetRules(r Rules) {
	if r != nil {
		d.opts.Rules = r
	}
}

// SetCandidates replaces the spawn pool.
func (d *WaveDirector) SetCandidates(c []Candidate) {
	d.opts.Candidates = c
}
