package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/lightsout/config"
)

func main() {
	settings := flag.String("settings", "settings.yaml", "settings file; missing files use the defaults")
	debug := flag.Bool("debug", false, "enable debug mode")
	level := flag.String("level", "", "level name in the level dir (basename, .json optional)")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	watch := flag.Bool("watch", false, "reload prefabs when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*settings)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug = true
	}
	if *level != "" {
		cfg.Level = *level
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *watch {
		cfg.Watch = true
	}

	logger, err := config.NewLogger(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("lights out")
	ebiten.SetTPS(cfg.TickRate)

	game, err := NewGame(cfg, *settings, logger)
	if err != nil {
		logger.Fatal("start session", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run game", zap.Error(err))
	}
}
