package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/lightsout/common"
	"github.com/milk9111/lightsout/config"
	"github.com/milk9111/lightsout/director"
	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/economy"
	"github.com/milk9111/lightsout/levels"
	"github.com/milk9111/lightsout/prefabs"
)

// Options configure a session. Nil specs and levels are loaded from the
// prefab and level directories; a nil collaborator drops every call.
type Options struct {
	// Difficulty is the persisted tier name, read once at start.
	Difficulty string
	Seed       int64
	// Random overrides the seeded generator.
	Random common.Random
	// WaveScript names a tengo wave formula; empty uses the built-in one.
	WaveScript   string
	Level        *levels.Level
	Enemies      *prefabs.EnemySpec
	Director     *prefabs.DirectorSpec
	Collaborator Collaborator
	Logger       *zap.Logger
}

// OptionsFromConfig resolves the level and prefab directory named in cfg.
func OptionsFromConfig(cfg *config.Config, collab Collaborator, logger *zap.Logger) (Options, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	prefabs.SetDir(cfg.PrefabDir)
	lvl, err := levels.Load(cfg.LevelDir, cfg.Level)
	if err != nil {
		return Options{}, fmt.Errorf("sim: options: %w", err)
	}
	return Options{
		Difficulty:   cfg.Difficulty,
		Seed:         cfg.Seed,
		WaveScript:   cfg.WaveScript,
		Level:        lvl,
		Collaborator: collab,
		Logger:       logger,
	}, nil
}

// withDefaults fills zero fields of a partially written director prefab
// with the shipped values. The spawn distance only defaults when the key
// is missing, since 0 is a valid distance.
func withDefaults(d prefabs.DirectorSpec) prefabs.DirectorSpec {
	orDefault := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	orDefault(&d.BaseInterval, 3)
	orDefault(&d.Announce.LetterDelay, 0.1)
	orDefault(&d.Announce.Hold, 1)
	orDefault(&d.PowerUps.Interval, 15)
	orDefault(&d.Economy.ReloadSeconds, 1.5)
	orDefault(&d.Player.Width, 1)
	orDefault(&d.Player.Height, 2)
	orDefault(&d.Player.BatteryCapacity, 100)
	orDefault(&d.Player.BatteryDrain, 1)
	orDefault(&d.Player.BulletDamage, 10)
	orDefault(&d.Player.BulletRange, 20)
	orDefault(&d.Player.MeleeDamage, 25)
	orDefault(&d.Player.MeleeRange, 0.5)
	orDefault(&d.Player.MeleeCooldown, 1)

	minDistance := 5.0
	if d.MinSpawnDistance != nil {
		minDistance = max(0, *d.MinSpawnDistance)
	}
	d.MinSpawnDistance = &minDistance

	if d.Economy.HealthPackRestore <= 0 {
		d.Economy.HealthPackRestore = 20
	}
	if d.Economy.AmmoCap <= 0 {
		d.Economy.AmmoCap = 100
	}
	if d.Economy.ReloadAmount <= 0 {
		d.Economy.ReloadAmount = 30
	}
	if d.Player.MaxHealth <= 0 {
		d.Player.MaxHealth = 100
	}
	return d
}

func archetypeWeights(m map[string]float64) director.Weights {
	if len(m) == 0 {
		return director.DefaultWeights()
	}
	return director.Weights{
		Brute:  m["brute"],
		Runner: m["runner"],
		Jumper: m["jumper"],
		Walker: m["walker"],
	}
}

func powerUpWeights(m map[string]float64) director.PowerUpWeights {
	if len(m) == 0 {
		return director.DefaultPowerUpWeights()
	}
	return director.PowerUpWeights{
		Health:  m["health"],
		Ammo:    m["ammo"],
		Battery: m["battery"],
	}
}

// pickupAmount is what one dropped pickup of kind credits.
func pickupAmount(spec prefabs.PowerUpSpec, kind component.PickupKind) int {
	if n, ok := spec.Amounts[kind.String()]; ok && n > 0 {
		return n
	}
	if kind == component.PickupAmmo {
		return 30
	}
	return 1
}

func economyConfig(e prefabs.EconomySpec) economy.Config {
	return economy.Config{
		StartAmmo:         e.StartAmmo,
		StartHealthPacks:  e.StartHealthPacks,
		StartBatteryPacks: e.StartBatteryPacks,
		HealthPackRestore: e.HealthPackRestore,
		AmmoCap:           e.AmmoCap,
		ReloadSeconds:     e.ReloadSeconds,
		ReloadAmount:      e.ReloadAmount,
	}
}

func spawnCandidates(lvl *levels.Level) []director.Candidate {
	var out []director.Candidate
	for _, e := range lvl.OfType(levels.EntitySpawnPoint) {
		out = append(out, director.Candidate{
			Position: cp.Vector{X: e.X, Y: e.Y},
			Side:     director.ParseSide(e.String("side", "auto")),
		})
	}
	return out
}

func powerUpPoints(lvl *levels.Level) []cp.Vector {
	var out []cp.Vector
	for _, e := range lvl.OfType(levels.EntityPowerUpPoint) {
		out = append(out, cp.Vector{X: e.X, Y: e.Y})
	}
	return out
}

func campaignEntries(lvl *levels.Level, logger *zap.Logger) []director.CampaignEntry {
	var out []director.CampaignEntry
	for _, e := range lvl.OfType(levels.EntityCampaignSpawn) {
		a, ok := component.ParseArchetype(e.String("archetype", "walker"))
		if !ok {
			logger.Warn("campaign spawn with unknown archetype, using walker",
				zap.String("archetype", e.String("archetype", "")))
		}
		out = append(out, director.CampaignEntry{
			Archetype: a,
			Position:  cp.Vector{X: e.X, Y: e.Y},
			Delay:     e.Float("delay", 0),
		})
	}
	return out
}

func proximityTriggers(lvl *levels.Level, logger *zap.Logger) []*director.ProximityTrigger {
	var out []*director.ProximityTrigger
	for _, e := range lvl.OfType(levels.EntityProximitySpawner) {
		a, ok := component.ParseArchetype(e.String("archetype", "walker"))
		if !ok {
			logger.Warn("proximity spawner with unknown archetype, using walker",
				zap.String("archetype", e.String("archetype", "")))
		}
		out = append(out, &director.ProximityTrigger{
			Archetype: a,
			Position:  cp.Vector{X: e.X, Y: e.Y},
			Radius:    e.Float("radius", 5),
			Once:      e.Bool("once", true),
		})
	}
	return out
}
