package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/lightsout/director"
	"github.com/milk9111/lightsout/economy"
	"github.com/milk9111/lightsout/sim"
)

const toastTime = 1.5

// banner reveals the wave text letter by letter over Reveal seconds, then
// holds the full text for Hold seconds.
type banner struct {
	text    string
	reveal  float64
	hold    float64
	elapsed float64
	active  bool
}

func (b *banner) start(a director.WaveAnnouncement) {
	*b = banner{text: a.Text, reveal: a.Reveal, hold: a.Hold, active: true}
}

func (b *banner) update(dt float64) {
	if !b.active {
		return
	}
	b.elapsed += dt
	if b.elapsed >= b.reveal+b.hold {
		b.active = false
	}
}

// visible returns the revealed prefix.
func (b *banner) visible() string {
	if !b.active {
		return ""
	}
	if b.reveal <= 0 || len(b.text) == 0 {
		return b.text
	}
	n := int(b.elapsed*float64(len(b.text))/b.reveal) + 1
	if n > len(b.text) {
		n = len(b.text)
	}
	return b.text[:n]
}

type HUD struct {
	face     ebtext.Face
	counters economy.Counters
	banner   banner
	toast    string
	toastFor float64
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Announce(a director.WaveAnnouncement) {
	h.banner.start(a)
}

func (h *HUD) SetCounters(c economy.Counters) {
	h.counters = c
}

// Toast shows a short message under the counters.
func (h *HUD) Toast(msg string) {
	h.toast = msg
	h.toastFor = toastTime
}

func (h *HUD) Reset() {
	h.toast = ""
	h.toastFor = 0
}

func (h *HUD) Update(dt float64) {
	h.banner.update(dt)
	if h.toastFor > 0 {
		h.toastFor -= dt
	}
}

func (h *HUD) Draw(screen *ebiten.Image, s *sim.Session) {
	current, maxHealth := s.Health()
	charge, capacity := s.Light()
	h.bar(screen, 16, 16, float64(current), float64(maxHealth), colornames.Crimson)
	h.bar(screen, 16, 30, charge, capacity, colornames.Gold)

	reload := ""
	if s.Reloading() {
		reload = "  reloading"
	}
	h.print(screen, fmt.Sprintf("HP %d/%d", current, maxHealth), 230, 14, 1, colornames.White)
	h.print(screen, fmt.Sprintf("Ammo %d  Health packs %d  Batteries %d%s",
		h.counters.Ammo, h.counters.HealthPacks, h.counters.BatteryPacks, reload), 16, 50, 1, colornames.White)

	wave := s.Wave()
	h.print(screen, fmt.Sprintf("Wave %d  %d/%d  alive %d  [%s]",
		wave.Number, wave.Spawned, wave.Quota, wave.Alive, s.Profile().Tier), baseWidth-330, 14, 1, colornames.Lightgrey)

	if h.toastFor > 0 && h.toast != "" {
		h.print(screen, h.toast, 16, 70, 1, colornames.Khaki)
	}
	if txt := h.banner.visible(); txt != "" {
		h.print(screen, txt, baseWidth/2-float64(len(h.banner.text))*7*3/2, 140, 3, colornames.White)
	}
	if s.Over() {
		stats := s.Stats()
		h.print(screen, "LIGHTS OUT", baseWidth/2-10*7*4/2, 260, 4, colornames.Crimson)
		h.print(screen, fmt.Sprintf("wave %d  kills %d  press Enter to restart", wave.Number, stats.Kills),
			baseWidth/2-180, 320, 1, colornames.White)
	}
}

func (h *HUD) bar(screen *ebiten.Image, x, y float32, value, limit float64, c color.RGBA) {
	const width, height = 200, 8
	vector.FillRect(screen, x, y, width, height, colornames.Dimgray, false)
	if limit > 0 {
		vector.FillRect(screen, x, y, float32(width*value/limit), height, c, false)
	}
}

func (h *HUD) print(screen *ebiten.Image, msg string, x, y, scale float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, msg, h.face, op)
}
