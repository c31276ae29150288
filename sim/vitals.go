package sim

// Vitals is the player's health pool. The host owns the player body; the
// core only keeps the number enemies chip away at.
type Vitals struct {
	Current int
	Max     int
}

func NewVitals(max int) *Vitals {
	if max <= 0 {
		max = 100
	}
	return &Vitals{Current: max, Max: max}
}

// TakeDamage applies n and reports how much landed and whether this hit
// was the killing one. A dead player takes no more damage.
func (v *Vitals) TakeDamage(n int) (applied int, died bool) {
	if n <= 0 || v.Current <= 0 {
		return 0, false
	}
	applied = min(n, v.Current)
	v.Current -= applied
	return applied, v.Current == 0
}

// RestoreHealth heals up to Max. The dead stay dead.
func (v *Vitals) RestoreHealth(n int) {
	if n <= 0 || v.Current <= 0 {
		return
	}
	v.Current = min(v.Current+n, v.Max)
}

func (v *Vitals) Dead() bool {
	return v.Current <= 0
}
