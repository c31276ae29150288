package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/lightsout/ecs/component"
	"github.com/milk9111/lightsout/sim"
)

const maxSpeed = 16

// watchView draws a running session in the terminal. Esc or Ctrl-C stops
// the run, space pauses, + and - change how many ticks pass per frame.
type watchView struct {
	screen tcell.Screen
	events chan tcell.Event
	ticker *time.Ticker
	sound  *sounder

	speed  int
	ticks  int
	paused bool

	kills     int
	wave      int
	health    int
	collected int
}

func newWatchView(tickRate int, sound *sounder) (*watchView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &watchView{
		screen: screen,
		events: make(chan tcell.Event, 100),
		ticker: time.NewTicker(time.Second / time.Duration(tickRate)),
		sound:  sound,
		speed:  1,
	}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			v.events <- ev
		}
	}()
	return v, nil
}

func (v *watchView) close() {
	v.ticker.Stop()
	v.screen.Fini()
}

// frame is called after every tick; it paces the run and redraws.
func (v *watchView) frame(s *sim.Session, b *bot) bool {
	v.cue(s)
	v.ticks++
	if s.Over() {
		v.draw(s, b)
		time.Sleep(2 * time.Second)
		return false
	}
	if v.ticks%v.speed != 0 {
		return true
	}

	for {
		select {
		case ev := <-v.events:
			if !v.handle(ev) {
				return false
			}
		case <-v.ticker.C:
			v.draw(s, b)
			if !v.paused {
				return true
			}
		}
	}
}

func (v *watchView) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case ' ':
				v.paused = !v.paused
			case '+':
				v.speed = min(v.speed*2, maxSpeed)
			case '-':
				v.speed = max(v.speed/2, 1)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// cue plays a sound for whatever changed since the last tick.
func (v *watchView) cue(s *sim.Session) {
	stats := s.Stats()
	if stats.Kills > v.kills {
		v.sound.kill()
	}
	if w := s.Wave().Number; w > v.wave {
		v.sound.wave()
		v.wave = w
	}
	if h, _ := s.Health(); h < v.health {
		v.sound.hurt()
	}
	if stats.PickupsCollected > v.collected {
		v.sound.pickup()
	}
	v.kills = stats.Kills
	v.health, _ = s.Health()
	v.collected = stats.PickupsCollected
}

func (v *watchView) draw(s *sim.Session, b *bot) {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width < 20 || height < 8 {
		v.screen.Show()
		return
	}

	plain := tcell.StyleDefault
	dimmed := plain.Foreground(tcell.ColorGray)
	groundRow := height - 4

	col := func(x float64) int {
		c := int((x - b.minX) / (b.maxX - b.minX) * float64(width-1))
		return max(0, min(width-1, c))
	}

	wave := s.Wave()
	counters := s.Counters()
	current, maxHealth := s.Health()
	charge, capacity := s.Light()
	v.text(0, 0, plain, fmt.Sprintf("wave %d  %d/%d  alive %d  tier %s  x%d",
		wave.Number, wave.Spawned, wave.Quota, wave.Alive, s.Profile().Tier, v.speed))
	v.text(0, 1, plain, fmt.Sprintf("hp %d/%d  light %.0f/%.0f  ammo %d  packs %d/%d  kills %d",
		current, maxHealth, charge, capacity, counters.Ammo, counters.HealthPacks, counters.BatteryPacks, s.Stats().Kills))
	if v.paused {
		v.text(width-8, 0, plain.Reverse(true), "PAUSED")
	}

	for x := 0; x < width; x++ {
		v.screen.SetContent(x, groundRow+1, '=', nil, dimmed)
	}
	for _, p := range s.Pickups() {
		v.screen.SetContent(col(p.Position.X), groundRow, pickupRune(p.Kind), nil, plain.Foreground(tcell.ColorGreen))
	}
	for _, e := range s.Enemies() {
		r, style := enemyGlyph(e.Archetype)
		c := col(e.Position.X)
		v.screen.SetContent(c, groundRow, r, nil, style)
		if e.Height > 1.5 {
			v.screen.SetContent(c, groundRow-1, r, nil, style)
		}
	}
	pc := col(b.pos.X)
	v.screen.SetContent(pc, groundRow, '@', nil, plain.Foreground(tcell.ColorRed).Bold(true))
	v.screen.SetContent(pc, groundRow-1, 'o', nil, plain.Foreground(tcell.ColorRed))

	if s.Over() {
		v.text(width/2-5, groundRow-4, plain.Foreground(tcell.ColorRed).Bold(true), "LIGHTS OUT")
	}
	v.text(0, height-1, dimmed, "esc quit  space pause  +/- speed")
	v.screen.Show()
}

func (v *watchView) text(x, y int, style tcell.Style, msg string) {
	for i, r := range msg {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func enemyGlyph(a component.Archetype) (rune, tcell.Style) {
	switch a {
	case component.ArchetypeRunner:
		return 'r', tcell.StyleDefault.Foreground(tcell.ColorYellow)
	case component.ArchetypeJumper:
		return 'j', tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case component.ArchetypeBrute:
		return 'B', tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	default:
		return 'w', tcell.StyleDefault.Foreground(tcell.ColorOlive)
	}
}

func pickupRune(k component.PickupKind) rune {
	switch k {
	case component.PickupAmmo:
		return 'a'
	case component.PickupBattery:
		return 'b'
	default:
		return '+'
	}
}
