package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedArena(t *testing.T) {
	lvl, err := Load("", "arena")
	require.NoError(t, err)
	assert.Equal(t, "arena", lvl.Name)
	assert.Len(t, lvl.OfType(EntitySpawnPoint), 6)
	assert.Len(t, lvl.OfType(EntityPowerUpPoint), 4)

	x, y := lvl.PlayerStart()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	left := lvl.OfType(EntitySpawnPoint)[0]
	assert.Equal(t, "left", left.String("side", "auto"))
}

func TestLoadCampaignProps(t *testing.T) {
	lvl, err := Load("", "crypt.json")
	require.NoError(t, err)

	spawns := lvl.OfType(EntityCampaignSpawn)
	require.Len(t, spawns, 2)
	assert.Equal(t, "runner", spawns[1].String("archetype", "walker"))
	assert.Equal(t, 8.0, spawns[1].Float("delay", 0))

	triggers := lvl.OfType(EntityProximitySpawner)
	require.Len(t, triggers, 2)
	assert.True(t, triggers[0].Bool("once", false))
	assert.Equal(t, "auto", lvl.OfType(EntitySpawnPoint)[0].String("side", "auto"))
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arena.json"), []byte(`{"name":"custom","ground_y":2}`), 0o644))

	lvl, err := Load(dir, "arena")
	require.NoError(t, err)
	assert.Equal(t, "custom", lvl.Name)
	assert.Equal(t, -20.0, lvl.Gravity)
	x, y := lvl.PlayerStart()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 2.0, y)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("", "nope")
	assert.ErrorContains(t, err, "levels: read nope.json")
}
