// Package economy tracks the player's consumables and reports every change
// to its observers.
package economy

import (
	"go.uber.org/zap"

	"github.com/milk9111/lightsout/ecs/component"
)

// Counters is the snapshot reported to observers. Fields are never negative.
type Counters struct {
	Ammo         int
	HealthPacks  int
	BatteryPacks int
}

// Healer restores player health when a health pack is used.
type Healer interface {
	RestoreHealth(amount int)
}

// Config holds the economy limits and starting stock.
type Config struct {
	StartAmmo         int     `yaml:"start_ammo"`
	StartHealthPacks  int     `yaml:"start_health_packs"`
	StartBatteryPacks int     `yaml:"start_battery_packs"`
	HealthPackRestore int     `yaml:"health_pack_restore"`
	AmmoCap           int     `yaml:"ammo_cap"`
	ReloadSeconds     float64 `yaml:"reload_seconds"`
	ReloadAmount      int     `yaml:"reload_amount"`
}

// DefaultConfig mirrors the shipped director prefab.
func DefaultConfig() Config {
	return Config{
		HealthPackRestore: 20,
		AmmoCap:           100,
		ReloadSeconds:     1.5,
		ReloadAmount:      30,
	}
}

type reloadState struct {
	active    bool
	remaining float64
	amount    int
}

// Economy owns the counters. It is driven from the simulation tick and is
// not safe for concurrent use.
type Economy struct {
	cfg        Config
	counters   Counters
	healer     Healer
	flashlight *Flashlight
	observers  []func(Counters)
	reload     reloadState
	logger     *zap.Logger
}

// New creates an economy stocked from cfg. healer may be nil, in which case
// health packs cannot be used.
func New(cfg Config, healer Healer, logger *zap.Logger) *Economy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Economy{
		cfg: cfg,
		counters: Counters{
			Ammo:         max(cfg.StartAmmo, 0),
			HealthPacks:  max(cfg.StartHealthPacks, 0),
			BatteryPacks: max(cfg.StartBatteryPacks, 0),
		},
		healer: healer,
		logger: logger,
	}
}

// AttachFlashlight lets battery packs recharge the given light.
func (e *Economy) AttachFlashlight(f *Flashlight) {
	e.flashlight = f
}

// Subscribe registers fn for every change notification.
func (e *Economy) Subscribe(fn func(Counters)) {
	if fn == nil {
		return
	}
	e.observers = append(e.observers, fn)
}

// Counters returns the current totals.
func (e *Economy) Counters() Counters {
	return e.counters
}

func (e *Economy) AddAmmo(amount int) {
	if amount <= 0 {
		return
	}
	e.counters.Ammo += amount
	e.notify()
}

func (e *Economy) AddHealthPacks(amount int) {
	if amount <= 0 {
		return
	}
	e.counters.HealthPacks += amount
	e.notify()
}

func (e *Economy) AddBatteryPacks(amount int) {
	if amount <= 0 {
		return
	}
	e.counters.BatteryPacks += amount
	e.notify()
}

// Credit applies a collected pickup.
func (e *Economy) Credit(kind component.PickupKind, amount int) {
	switch kind {
	case component.PickupHealth:
		e.AddHealthPacks(amount)
	case component.PickupAmmo:
		e.AddAmmo(amount)
	case component.PickupBattery:
		e.AddBatteryPacks(amount)
	}
}

// UseHealthPack spends one pack to restore health. It is a no-op without
// packs or without a healer.
func (e *Economy) UseHealthPack() bool {
	if e.counters.HealthPacks <= 0 || e.healer == nil {
		return false
	}
	e.healer.RestoreHealth(e.cfg.HealthPackRestore)
	e.counters.HealthPacks--
	e.notify()
	return true
}

// UseBatteryPack spends one pack and recharges the flashlight if attached.
func (e *Economy) UseBatteryPack() bool {
	if e.counters.BatteryPacks <= 0 {
		return false
	}
	e.counters.BatteryPacks--
	if e.flashlight != nil {
		e.flashlight.Recharge()
	}
	e.notify()
	return true
}

// ConsumeAmmo spends one round for a shot. Firing is blocked while
// reloading.
func (e *Economy) ConsumeAmmo() bool {
	if e.reload.active || e.counters.Ammo <= 0 {
		return false
	}
	e.counters.Ammo--
	e.notify()
	return true
}

// StartReload begins a timed reload adding amount rounds when it completes.
// Requests while a reload is running are ignored.
func (e *Economy) StartReload(amount int) bool {
	if e.reload.active || amount <= 0 {
		return false
	}
	e.reload = reloadState{active: true, remaining: e.cfg.ReloadSeconds, amount: amount}
	return true
}

// Reloading reports whether a reload is in flight.
func (e *Economy) Reloading() bool {
	return e.reload.active
}

// Update advances the reload countdown and the flashlight drain.
func (e *Economy) Update(dt float64) {
	if e.flashlight != nil {
		e.flashlight.Update(dt)
	}
	if !e.reload.active {
		return
	}
	e.reload.remaining -= dt
	if e.reload.remaining > 0 {
		return
	}
	e.reload.active = false
	e.counters.Ammo += e.reload.amount
	if e.cfg.AmmoCap > 0 && e.counters.Ammo > e.cfg.AmmoCap {
		e.counters.Ammo = e.cfg.AmmoCap
	}
	e.logger.Debug("reload complete", zap.Int("ammo", e.counters.Ammo))
	e.notify()
}

// CancelReload drops an in-flight reload without crediting ammo.
func (e *Economy) CancelReload() {
	e.reload = reloadState{}
}

func (e *Economy) notify() {
	snapshot := e.counters
	for _, fn := range e.observers {
		fn(snapshot)
	}
}
