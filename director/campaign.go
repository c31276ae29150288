package director

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lightsout/ecs/component"
)

// CampaignEntry is one scripted spawn of a level.
type CampaignEntry struct {
	Archetype component.Archetype
	Position  cp.Vector
	Delay     float64
}

// Campaign spawns every entry once, after its delay from session start.
type Campaign struct {
	entries []CampaignEntry
	fired   []bool
	elapsed float64
	sink    Sink
	stopped bool
}

func NewCampaign(entries []CampaignEntry, sink Sink) *Campaign {
	return &Campaign{
		entries: entries,
		fired:   make([]bool, len(entries)),
		sink:    sink,
	}
}

func (c *Campaign) Update(dt float64) {
	if c.stopped {
		return
	}
	c.elapsed += dt
	for i, e := range c.entries {
		if c.fired[i] || c.elapsed < e.Delay {
			continue
		}
		c.fired[i] = true
		if c.sink != nil {
			c.sink.SpawnEnemy(SpawnRequest{Archetype: e.Archetype, Position: e.Position, Source: SourceCampaign})
		}
	}
}

// Remaining counts the entries that have not fired yet.
func (c *Campaign) Remaining() int {
	n := 0
	for _, f := range c.fired {
		if !f {
			n++
		}
	}
	return n
}

func (c *Campaign) Stop() {
	c.stopped = true
}
