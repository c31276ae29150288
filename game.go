package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/lightsout/config"
	"github.com/milk9111/lightsout/difficulty"
	"github.com/milk9111/lightsout/director"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/economy"
	"github.com/milk9111/lightsout/prefabs"
	"github.com/milk9111/lightsout/sim"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	flashTime  = 0.12
	burstTime  = 0.4
	tracerTime = 0.06
	pickupSize = 0.6
)

type burst struct {
	pos   cp.Vector
	color color.RGBA
	left  float64
}

type tracer struct {
	from, to cp.Vector
	left     float64
}

// Game hosts one session: it owns the player avatar, forwards input and
// draws whatever the session reports back through the Collaborator calls.
type Game struct {
	frames int
	dt     float64
	debug  bool

	settingsPath   string
	nextDifficulty string
	logger         *zap.Logger

	session *sim.Session
	input   *Input
	player  *Player
	arena   *Arena
	hud     *HUD
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher

	hitFlash    map[ecs.Entity]float64
	attackFlash map[ecs.Entity]float64
	bursts      []burst
	tracers     []tracer
	quit        bool
}

func NewGame(cfg *config.Config, settingsPath string, logger *zap.Logger) (*Game, error) {
	g := &Game{
		dt:             1.0 / float64(cfg.TickRate),
		debug:          cfg.Debug,
		settingsPath:   settingsPath,
		nextDifficulty: cfg.Difficulty,
		logger:         logger,
		input:          NewInput(),
		hud:            NewHUD(),
		hitFlash:       make(map[ecs.Entity]float64),
		attackFlash:    make(map[ecs.Entity]float64),
	}

	opts, err := sim.OptionsFromConfig(cfg, g, logger)
	if err != nil {
		return nil, err
	}
	session, err := sim.NewSession(opts)
	if err != nil {
		return nil, err
	}
	g.session = session

	spec := session.PlayerSpec()
	g.arena = NewArena(session.Level())
	g.player = NewPlayer(g.arena, spec.Width, spec.Height, g.input)
	g.pauseUI = NewPauseUI(g)

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir())
		if err != nil {
			logger.Warn("prefab watch disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.input.Update()
	g.pollWatcher()

	if g.input.PausePressed && !g.session.Over() {
		if g.session.Paused() {
			g.resume()
		} else {
			g.session.Pause()
		}
	}
	if g.session.Paused() {
		g.pauseUI.Update()
		return nil
	}
	if g.session.Over() {
		if g.input.RestartPressed {
			g.restart()
		}
		return nil
	}

	g.player.Update(g.dt)
	g.session.ReportPlayerPosition(g.player.Center(), g.player.Velocity)
	g.handleActions()
	g.collectPickups()

	g.session.Tick(g.dt)
	g.hud.Update(g.dt)
	g.fadeEffects(g.dt)
	return nil
}

func (g *Game) handleActions() {
	dir := g.player.Facing()
	if g.input.FirePressed {
		from := g.player.Center()
		to := from.Add(cp.Vector{X: dir * g.session.PlayerSpec().BulletRange})
		if hit, fired := g.session.FireWeapon(dir); fired {
			if hit != 0 {
				to = cp.Vector{X: g.hitX(hit, dir), Y: from.Y}
			}
			g.tracers = append(g.tracers, tracer{from: from, to: to, left: tracerTime})
		}
	}
	if g.input.MeleePressed {
		g.session.Melee(dir)
	}
	if g.input.ReloadPressed {
		g.session.Reload()
	}
	if g.input.HealthPressed {
		g.session.UseHealthPack()
	}
	if g.input.BatteryPressed {
		g.session.UseBatteryPack()
	}
}

// hitX is the near edge of the struck enemy, or its last known center if
// the shot killed it.
func (g *Game) hitX(id ecs.Entity, dir float64) float64 {
	for _, e := range g.session.Enemies() {
		if e.ID == id {
			return e.Position.X - dir*e.Width/2
		}
	}
	if n := len(g.bursts); n > 0 {
		return g.bursts[n-1].pos.X
	}
	return g.player.Center().X + dir*g.session.PlayerSpec().BulletRange
}

func (g *Game) collectPickups() {
	body := g.player.Rect
	for _, p := range g.session.Pickups() {
		box := RectAround(cp.Vector{X: p.Position.X, Y: p.Position.Y + pickupSize/2}, pickupSize, pickupSize)
		if !body.Intersects(&box) {
			continue
		}
		if kind, amount, ok := g.session.CollectPickup(p.ID); ok {
			g.hud.Toast(fmt.Sprintf("+%d %s", amount, kind))
		}
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.session.ReloadSpecs(); err != nil {
				g.logger.Warn("prefab reload failed", zap.String("file", change.Name), zap.Error(err))
				continue
			}
			g.logger.Info("prefabs reloaded", zap.String("file", change.Name))
			g.hud.Toast("reloaded " + change.Name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watch error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) resume() {
	g.session.Resume()
}

func (g *Game) restart() {
	if err := g.session.Restart(); err != nil {
		g.logger.Error("restart failed", zap.Error(err))
		return
	}
	g.player.Reset()
	g.hud.Reset()
	clear(g.hitFlash)
	clear(g.attackFlash)
	g.bursts = nil
	g.tracers = nil
	g.session.Resume()
}

// cycleDifficulty persists the next tier for the next session.
func (g *Game) cycleDifficulty() {
	current, _ := difficulty.ForName(g.nextDifficulty)
	tiers := difficulty.Tiers()
	next := tiers[0]
	for i, t := range tiers {
		if t == current.Tier {
			next = tiers[(i+1)%len(tiers)]
		}
	}
	g.nextDifficulty = string(next)
	if g.settingsPath == "" {
		return
	}
	if err := config.SaveDifficulty(g.settingsPath, g.nextDifficulty); err != nil {
		g.logger.Warn("save difficulty failed", zap.Error(err))
	}
}

func (g *Game) fadeEffects(dt float64) {
	for id, t := range g.hitFlash {
		if t -= dt; t <= 0 {
			delete(g.hitFlash, id)
		} else {
			g.hitFlash[id] = t
		}
	}
	for id, t := range g.attackFlash {
		if t -= dt; t <= 0 {
			delete(g.attackFlash, id)
		} else {
			g.attackFlash[id] = t
		}
	}

	bursts := g.bursts[:0]
	for _, b := range g.bursts {
		if b.left -= dt; b.left > 0 {
			bursts = append(bursts, b)
		}
	}
	g.bursts = bursts

	tracers := g.tracers[:0]
	for _, t := range g.tracers {
		if t.left -= dt; t.left > 0 {
			tracers = append(tracers, t)
		}
	}
	g.tracers = tracers
}

func (g *Game) Draw(screen *ebiten.Image) {
	charge, capacity := g.session.Light()
	lit := 0.0
	if capacity > 0 {
		lit = charge / capacity
	}
	screen.Fill(dim(color.RGBA{R: 0x12, G: 0x12, B: 0x1a, A: 0xff}, lit))
	g.arena.Draw(screen, lit)

	for _, p := range g.session.Pickups() {
		box := RectAround(cp.Vector{X: p.Position.X, Y: p.Position.Y + pickupSize/2}, pickupSize, pickupSize)
		x, y, w, h := g.arena.RectToScreen(box)
		vector.FillRect(screen, x, y, w, h, pickupColor(p.Kind), false)
	}

	for _, e := range g.session.Enemies() {
		g.drawEnemy(screen, e, lit)
	}

	for _, b := range g.bursts {
		x, y := g.arena.ToScreen(b.pos)
		r := float32((1 - b.left/burstTime) * 40)
		c := b.color
		c.A = uint8(255 * b.left / burstTime)
		vector.StrokeRect(screen, x-r, y-r, 2*r, 2*r, 2, c, false)
	}
	for _, t := range g.tracers {
		x0, y0 := g.arena.ToScreen(t.from)
		x1, y1 := g.arena.ToScreen(t.to)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colornames.Khaki, false)
	}

	g.player.Draw(screen)
	g.hud.Draw(screen, g.session)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  frames: %d  state: %s", ebiten.ActualFPS(), g.frames, g.player.state.Name()), 8, baseHeight-20)
	}
	if g.session.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawEnemy(screen *ebiten.Image, e sim.EnemyView, lit float64) {
	box := RectAround(e.Position, e.Width, e.Height)
	x, y, w, h := g.arena.RectToScreen(box)

	body := dim(archetypeColor(e.Archetype), lit)
	if _, ok := g.hitFlash[e.ID]; ok {
		body = colornames.White
	}
	vector.FillRect(screen, x, y, w, h, body, false)
	if _, ok := g.attackFlash[e.ID]; ok {
		vector.StrokeRect(screen, x-2, y-2, w+4, h+4, 2, colornames.Yellow, false)
	}

	if e.MaxHealth > 0 {
		frac := float32(e.Health / e.MaxHealth)
		vector.FillRect(screen, x, y-6, w, 3, colornames.Dimgray, false)
		vector.FillRect(screen, x, y-6, w*frac, 3, colornames.Limegreen, false)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, string(e.State), int(x), int(y)-22)
	}
}

func archetypeColor(a component.Archetype) color.RGBA {
	switch a {
	case component.ArchetypeRunner:
		return colornames.Orange
	case component.ArchetypeJumper:
		return colornames.Skyblue
	case component.ArchetypeBrute:
		return colornames.Firebrick
	default:
		return colornames.Olivedrab
	}
}

func pickupColor(k component.PickupKind) color.RGBA {
	switch k {
	case component.PickupAmmo:
		return colornames.Gold
	case component.PickupBattery:
		return colornames.Deepskyblue
	default:
		return colornames.Springgreen
	}
}

// SpawnEntity, and the rest of the methods below, implement
// sim.Collaborator.
func (g *Game) SpawnEntity(id ecs.Entity, a component.Archetype, pos cp.Vector) {
	g.logger.Debug("enemy spawned", zap.Uint64("id", uint64(id)), zap.Stringer("archetype", a), zap.Float64("x", pos.X))
}

func (g *Game) SpawnPickup(id ecs.Entity, kind component.PickupKind, pos cp.Vector) {
	g.logger.Debug("pickup spawned", zap.Uint64("id", uint64(id)), zap.Stringer("kind", kind), zap.Float64("x", pos.X))
}

func (g *Game) Damage(target ecs.Entity, amount int) {
	if target == sim.PlayerTarget {
		if g.player != nil {
			g.player.Hurt()
		}
		g.hud.Toast(fmt.Sprintf("-%d", amount))
		return
	}
	g.hitFlash[target] = flashTime
}

func (g *Game) Knockback(target ecs.Entity, impulse cp.Vector) {
	if target == sim.PlayerTarget && g.player != nil {
		g.player.Knockback(impulse)
	}
}

func (g *Game) PlayDeathEffect(id ecs.Entity, a component.Archetype, pos cp.Vector) {
	delete(g.hitFlash, id)
	delete(g.attackFlash, id)
	g.bursts = append(g.bursts, burst{pos: pos, color: archetypeColor(a), left: burstTime})
}

func (g *Game) PlayAttackEffect(id ecs.Entity, _ component.Archetype) {
	g.attackFlash[id] = flashTime
}

func (g *Game) WaveChanged(a director.WaveAnnouncement) {
	g.hud.Announce(a)
}

func (g *Game) ResourcesChanged(c economy.Counters) {
	g.hud.SetCounters(c)
}

func (g *Game) PlayerDied() {
	g.hud.Toast("you died")
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the prefab watcher and the session.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("close prefab watcher", zap.Error(err))
		}
	}
	g.session.Teardown()
}
