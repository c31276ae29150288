package economy

// Flashlight is the player's light. Its charge drains every tick and a
// battery pack refills it.
type Flashlight struct {
	Capacity  float64
	DrainRate float64
	charge    float64
}

func NewFlashlight(capacity, drainRate float64) *Flashlight {
	return &Flashlight{Capacity: capacity, DrainRate: drainRate, charge: capacity}
}

func (f *Flashlight) Update(dt float64) {
	if f.charge <= 0 {
		return
	}
	f.charge -= f.DrainRate * dt
	if f.charge < 0 {
		f.charge = 0
	}
}

func (f *Flashlight) Recharge() {
	f.charge = f.Capacity
}

func (f *Flashlight) Charge() float64 {
	return f.charge
}

// On reports whether the light still has charge.
func (f *Flashlight) On() bool {
	return f.charge > 0
}
