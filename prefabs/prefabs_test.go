package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	enemies, err := LoadEnemySpec()
	require.NoError(t, err)
	for _, name := range []string{"walker", "runner", "jumper", "brute"} {
		a, ok := enemies.Archetypes[name]
		require.True(t, ok, name)
		assert.Greater(t, a.Health, 0.0, name)
		assert.Greater(t, a.Damage, 0, name)
	}
	assert.Equal(t, 2.0, enemies.Archetypes["jumper"].Timers["jump"])
	assert.Equal(t, 2.0, enemies.Archetypes["jumper"].Timers["attack"])

	dir, err := LoadDirectorSpec()
	require.NoError(t, err)
	assert.Equal(t, 3.0, dir.BaseInterval)
	assert.Equal(t, 100, dir.Economy.AmmoCap)
	assert.Equal(t, 0.65, dir.ArchetypeWeights["walker"])
}

func TestDiskOverrideWins(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	defer SetDir("prefabs")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "director.yaml"), []byte("base_interval: 9\n"), 0o644))

	spec, err := LoadDirectorSpec()
	require.NoError(t, err)
	assert.Equal(t, 9.0, spec.BaseInterval)

	_, ok := ModTime("director.yaml")
	assert.True(t, ok)
	_, ok = ModTime("enemies.yaml")
	assert.False(t, ok)
}

func TestLoadScript(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	for _, name := range []string{"wave_rules.tengo", "scripts/wave_rules.tengo", "prefabs/scripts/wave_rules.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "quota")
	}
}

func TestLoadSpecMissing(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	_, err := LoadSpec[DirectorSpec]("missing.yaml")
	assert.ErrorContains(t, err, "prefabs: load missing.yaml")
}

func TestClassify(t *testing.T) {
	kind, ok := classify("prefabs/enemies.yaml")
	assert.True(t, ok)
	assert.Equal(t, ChangeSpec, kind)

	kind, ok = classify("prefabs/scripts/wave_rules.tengo")
	assert.True(t, ok)
	assert.Equal(t, ChangeScript, kind)

	_, ok = classify("notes.txt")
	assert.False(t, ok)
}
