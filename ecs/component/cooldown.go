package component

// Cooldowns holds named countdown timers in seconds. A missing or
// non-positive entry is ready.
type Cooldowns struct {
	Remaining map[string]float64
}

// Start (re)arms the named timer.
func (c *Cooldowns) Start(name string, seconds float64) {
	if c.Remaining == nil {
		c.Remaining = make(map[string]float64)
	}
	c.Remaining[name] = seconds
}

// Ready reports whether the named timer has run out.
func (c *Cooldowns) Ready(name string) bool {
	return c.Remaining[name] <= 0
}

// Clear drops every timer without firing anything.
func (c *Cooldowns) Clear() {
	for k := range c.Remaining {
		delete(c.Remaining, k)
	}
}

var CooldownsComponent = NewComponent[Cooldowns]()
