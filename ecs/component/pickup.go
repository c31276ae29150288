package component

// PickupKind is the resource a pickup credits when collected.
type PickupKind int

const (
	PickupHealth PickupKind = iota
	PickupAmmo
	PickupBattery
)

func (k PickupKind) String() string {
	switch k {
	case PickupHealth:
		return "health"
	case PickupAmmo:
		return "ammo"
	case PickupBattery:
		return "battery"
	default:
		return "unknown"
	}
}

// ParsePickupKind maps a prefab name to its pickup kind.
func ParsePickupKind(name string) (PickupKind, bool) {
	switch name {
	case "health":
		return PickupHealth, true
	case "ammo":
		return PickupAmmo, true
	case "battery":
		return PickupBattery, true
	}
	return PickupHealth, false
}

// Pickup is a collectible waiting in the arena.
type Pickup struct {
	Kind   PickupKind
	Amount int
}

var PickupComponent = NewComponent[Pickup]()
