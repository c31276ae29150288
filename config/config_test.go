package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Medium", cfg.Difficulty)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, "prefabs", cfg.PrefabDir)
	assert.Equal(t, "arena.json", cfg.Level)
	assert.Zero(t, cfg.Seed)
	assert.Empty(t, cfg.WaveScript)
	assert.False(t, cfg.Watch)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("difficulty: Hard\nseed: 42\nwave_script: wave_rules.tengo\ntick_rate: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Hard", cfg.Difficulty)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "wave_rules.tengo", cfg.WaveScript)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, "levels", cfg.LevelDir)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Medium", cfg.Difficulty)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("difficulty: [unterminated\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "config: read")
}

func TestSaveDifficultyKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\n"), 0o644))

	require.NoError(t, SaveDifficulty(path, "Easy"))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Easy", cfg.Difficulty)
	assert.Equal(t, int64(7), cfg.Seed)

	fresh := filepath.Join(t.TempDir(), "new.yaml")
	require.NoError(t, SaveDifficulty(fresh, "Hard"))
	cfg, err = Load(fresh)
	require.NoError(t, err)
	assert.Equal(t, "Hard", cfg.Difficulty)
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, err := NewLogger(debug)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
