package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Entity types understood by the session.
const (
	EntitySpawnPoint       = "spawn_point"
	EntityPowerUpPoint     = "powerup_point"
	EntityPlayerStart      = "player_start"
	EntityCampaignSpawn    = "campaign_spawn"
	EntityProximitySpawner = "proximity_spawner"
)

// Level is a flat arena: a ground height, gravity and the static entity
// markers the director reads.
type Level struct {
	Name     string   `json:"name"`
	GroundY  float64  `json:"ground_y"`
	Gravity  float64  `json:"gravity"`
	Width    float64  `json:"width"`
	Entities []Entity `json:"entities,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// OfType returns the entities of one type in file order.
func (l *Level) OfType(kind string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// PlayerStart returns the first player_start marker, or the arena origin
// on the ground.
func (l *Level) PlayerStart() (x, y float64) {
	if starts := l.OfType(EntityPlayerStart); len(starts) > 0 {
		return starts[0].X, starts[0].Y
	}
	return 0, l.GroundY
}

func (e Entity) String(key, fallback string) string {
	if v, ok := e.Props[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func (e Entity) Float(key string, fallback float64) float64 {
	if v, ok := e.Props[key].(float64); ok {
		return v
	}
	return fallback
}

func (e Entity) Bool(key string, fallback bool) bool {
	if v, ok := e.Props[key].(bool); ok {
		return v
	}
	return fallback
}

// Load reads a level by name from disk dir first, then the embedded set.
// The .json extension is optional.
func Load(dir, name string) (*Level, error) {
	if name == "" {
		name = "arena"
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	var (
		data []byte
		err  error
	)
	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, name))
	}
	if dir == "" || err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Gravity == 0 {
		lvl.Gravity = -20
	}
	return &lvl, nil
}
