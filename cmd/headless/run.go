package main

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/lightsout/config"
	"github.com/milk9111/lightsout/ecs"
	"github.com/milk9111/lightsout/sim"
)

// collaborator records every call and forwards player pushes to the bot.
type collaborator struct {
	*sim.Recorder
	bot *bot
}

func (c *collaborator) Knockback(target ecs.Entity, impulse cp.Vector) {
	c.Recorder.Knockback(target, impulse)
	if target == sim.PlayerTarget && c.bot != nil {
		c.bot.knock(impulse)
	}
}

// result summarizes one finished run.
type result struct {
	Run        int
	Seed       int64
	Difficulty string
	Wave       int
	Survived   bool
	DiedAt     float64
	Stats      sim.Stats
	Damage     int
	Health     int
	ByKind     map[string]int
}

// frameFunc observes the session after every tick. Returning false stops
// the run early.
type frameFunc func(s *sim.Session, b *bot) bool

// runSession plays one seeded session for ticks steps of 1/TickRate.
func runSession(cfg config.Config, run int, ticks int, logger *zap.Logger, frame frameFunc) (result, error) {
	collab := &collaborator{Recorder: &sim.Recorder{}}
	opts, err := sim.OptionsFromConfig(&cfg, collab, logger.With(zap.Int("run", run)))
	if err != nil {
		return result{}, fmt.Errorf("headless: run %d: %w", run, err)
	}
	s, err := sim.NewSession(opts)
	if err != nil {
		return result{}, fmt.Errorf("headless: run %d: %w", run, err)
	}
	defer s.Teardown()

	lvl := s.Level()
	collab.bot = newBot(s.PlayerSpec(), lvl.GroundY, lvl.Width/2)

	dt := 1.0 / float64(cfg.TickRate)
	res := result{Run: run, Seed: cfg.Seed, Difficulty: string(s.Profile().Tier), Survived: true}
	for i := 0; i < ticks; i++ {
		collab.bot.step(s, dt)
		s.Tick(dt)
		keepGoing := frame == nil || frame(s, collab.bot)
		if s.Over() {
			res.Survived = false
			res.DiedAt = float64(s.Stats().Ticks) * dt
			break
		}
		if !keepGoing {
			break
		}
	}

	res.Wave = s.Wave().Number
	res.Stats = s.Stats()
	res.Damage = collab.PlayerDamage()
	res.Health, _ = s.Health()
	res.ByKind = make(map[string]int)
	for a, n := range collab.SpawnsByArchetype() {
		res.ByKind[a.String()] = n
	}

	logger.Info("run finished",
		zap.Int("run", run),
		zap.Int64("seed", cfg.Seed),
		zap.Int("wave", res.Wave),
		zap.Int("kills", res.Stats.Kills),
		zap.Bool("survived", res.Survived))
	return res, nil
}
