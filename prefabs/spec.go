package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EnemySpec is enemies.yaml: base stats per archetype name.
type EnemySpec struct {
	Archetypes map[string]ArchetypeSpec `yaml:"archetypes"`
}

// ArchetypeSpec holds base stats before difficulty scaling. Timers are the
// countdown durations the behavior table starts, in seconds.
type ArchetypeSpec struct {
	Health        float64            `yaml:"health"`
	MoveSpeed     float64            `yaml:"move_speed"`
	ChargeSpeed   float64            `yaml:"charge_speed"`
	CloseRange    float64            `yaml:"close_range"`
	Damage        int                `yaml:"damage"`
	AttackRange   float64            `yaml:"attack_range"`
	PushForce     float64            `yaml:"push_force"`
	JumpForce     float64            `yaml:"jump_force"`
	LeapForce     float64            `yaml:"leap_force"`
	FlipThreshold float64            `yaml:"flip_threshold"`
	Width         float64            `yaml:"width"`
	Height        float64            `yaml:"height"`
	Mass          float64            `yaml:"mass"`
	Timers        map[string]float64 `yaml:"timers"`
	FSM           *FSMSpec           `yaml:"fsm"`
}

// FSMSpec overrides the built-in behavior table of an archetype.
type FSMSpec struct {
	Initial     string                      `yaml:"initial"`
	States      map[string]FSMStateSpec     `yaml:"states"`
	Transitions map[string][]map[string]any `yaml:"transitions"`
}

type FSMStateSpec struct {
	OnEnter []map[string]any `yaml:"on_enter"`
	While   []map[string]any `yaml:"while"`
	OnExit  []map[string]any `yaml:"on_exit"`
}

// DirectorSpec is director.yaml: wave pacing, drop tables, economy and
// player vitals.
type DirectorSpec struct {
	BaseInterval     float64            `yaml:"base_interval"`
	InitialDelay     float64            `yaml:"initial_delay"`
	MinSpawnDistance *float64           `yaml:"min_spawn_distance"`
	Announce         AnnounceSpec       `yaml:"announce"`
	ArchetypeWeights map[string]float64 `yaml:"archetype_weights"`
	PowerUps         PowerUpSpec        `yaml:"powerups"`
	Economy          EconomySpec        `yaml:"economy"`
	Player           PlayerSpec         `yaml:"player"`
}

type AnnounceSpec struct {
	LetterDelay float64 `yaml:"letter_delay"`
	Hold        float64 `yaml:"hold"`
}

type PowerUpSpec struct {
	Interval float64            `yaml:"interval"`
	Weights  map[string]float64 `yaml:"weights"`
	Amounts  map[string]int     `yaml:"amounts"`
}

type EconomySpec struct {
	StartAmmo         int     `yaml:"start_ammo"`
	StartHealthPacks  int     `yaml:"start_health_packs"`
	StartBatteryPacks int     `yaml:"start_battery_packs"`
	HealthPackRestore int     `yaml:"health_pack_restore"`
	AmmoCap           int     `yaml:"ammo_cap"`
	ReloadSeconds     float64 `yaml:"reload_seconds"`
	ReloadAmount      int     `yaml:"reload_amount"`
}

type PlayerSpec struct {
	MaxHealth       int     `yaml:"max_health"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BatteryCapacity float64 `yaml:"battery_capacity"`
	BatteryDrain    float64 `yaml:"battery_drain"`
	BulletDamage    float64 `yaml:"bullet_damage"`
	BulletRange     float64 `yaml:"bullet_range"`
	MeleeDamage     float64 `yaml:"melee_damage"`
	MeleeRange      float64 `yaml:"melee_range"`
	MeleeCooldown   float64 `yaml:"melee_cooldown"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadDirectorSpec() (*DirectorSpec, error) {
	spec, err := LoadSpec[DirectorSpec]("director.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
