// Command headless plays seeded sessions with a scripted player and prints
// how far each got. With -watch it shows a single run in the terminal.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/milk9111/lightsout/config"
)

func main() {
	settings := flag.String("settings", "settings.yaml", "settings file; missing files use the defaults")
	runs := flag.Int("runs", 5, "number of sessions to play")
	seconds := flag.Float64("seconds", 300, "simulated seconds per session")
	seed := flag.Int64("seed", 1, "seed of the first run; run i uses seed+i")
	tier := flag.String("difficulty", "", "override the configured difficulty")
	level := flag.String("level", "", "override the configured level")
	watch := flag.Bool("watch", false, "show one run in the terminal")
	sound := flag.Bool("sound", false, "play cues while watching")
	copyReport := flag.Bool("copy", false, "copy the report to the clipboard")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*settings)
	if err != nil {
		log.Fatal(err)
	}
	if *tier != "" {
		cfg.Difficulty = *tier
	}
	if *level != "" {
		cfg.Level = *level
	}

	logger, err := config.NewLogger(*debug || cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ticks := int(*seconds * float64(cfg.TickRate))

	var results []result
	if *watch {
		results, err = watchOne(*cfg, *seed, ticks, *sound, logger)
	} else {
		results, err = runAll(*cfg, *runs, *seed, ticks, logger)
	}
	if err != nil {
		logger.Fatal("headless run failed", zap.Error(err))
	}

	var buf bytes.Buffer
	if err := writeReport(&buf, results); err != nil {
		logger.Fatal("write report", zap.Error(err))
	}
	fmt.Fprint(os.Stdout, buf.String())

	if *copyReport {
		if err := clipboard.Init(); err != nil {
			logger.Warn("clipboard unavailable", zap.Error(err))
			return
		}
		<-clipboard.Write(clipboard.FmtText, buf.Bytes())
	}
}

// runAll plays every seed concurrently. Sessions share nothing but the
// read-only prefab directory.
func runAll(cfg config.Config, runs int, seed int64, ticks int, logger *zap.Logger) ([]result, error) {
	results := make([]result, runs)
	errs := make([]error, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := cfg
			c.Seed = seed + int64(i)
			results[i], errs[i] = runSession(c, i+1, ticks, logger, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func watchOne(cfg config.Config, seed int64, ticks int, withSound bool, logger *zap.Logger) ([]result, error) {
	var cues *sounder
	if withSound {
		s, err := newSounder()
		if err != nil {
			logger.Warn("sound disabled", zap.Error(err))
		}
		cues = s
		defer cues.close()
	}

	view, err := newWatchView(cfg.TickRate, cues)
	if err != nil {
		return nil, fmt.Errorf("headless: terminal: %w", err)
	}
	cfg.Seed = seed
	res, err := runSession(cfg, 1, ticks, logger, view.frame)
	view.close()
	if err != nil {
		return nil, err
	}
	return []result{res}, nil
}
