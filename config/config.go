// Package config loads session settings with viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the settings a session reads once at start.
type Config struct {
	Difficulty string `mapstructure:"difficulty"`
	// Seed 0 picks a time based seed.
	Seed      int64  `mapstructure:"seed"`
	TickRate  int    `mapstructure:"tick_rate"`
	Debug     bool   `mapstructure:"debug"`
	PrefabDir string `mapstructure:"prefab_dir"`
	LevelDir  string `mapstructure:"level_dir"`
	Level     string `mapstructure:"level"`
	// WaveScript names a tengo script under prefabs/scripts; empty uses
	// the built-in wave formula.
	WaveScript string `mapstructure:"wave_script"`
	Watch      bool   `mapstructure:"watch"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("difficulty", "Medium")
	v.SetDefault("seed", 0)
	v.SetDefault("tick_rate", 60)
	v.SetDefault("debug", false)
	v.SetDefault("prefab_dir", "prefabs")
	v.SetDefault("level_dir", "levels")
	v.SetDefault("level", "arena.json")
	v.SetDefault("wave_script", "")
	v.SetDefault("watch", false)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("LIGHTSOUT")
	v.AutomaticEnv()
	return v
}

// Default returns the settings used when no file exists.
func Default() *Config {
	cfg := &Config{}
	// Unmarshalling defaults only cannot fail.
	_ = newViper().Unmarshal(cfg)
	return cfg
}

// Load reads settings from a YAML file. An empty path or a missing file
// yields the defaults; LIGHTSOUT_* environment variables override both.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return cfg, nil
}

// SaveDifficulty persists the difficulty name into the settings file,
// keeping any other keys already there.
func SaveDifficulty(path, name string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	v.Set("difficulty", name)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// NewLogger builds the process logger: development output when debug is
// set, JSON production output otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
