package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/lightsout/levels"
)

const (
	arenaMargin = 2.0 // world units of empty floor drawn past each wall
	groundPx    = 560.0
)

// Arena maps the level's Y-up world units onto the screen and draws the
// static markers.
type Arena struct {
	level *levels.Level
	// scale is pixels per world unit.
	scale float64
}

func NewArena(lvl *levels.Level) *Arena {
	width := lvl.Width
	if width <= 0 {
		width = 60
	}
	return &Arena{level: lvl, scale: baseWidth / (width + 2*arenaMargin)}
}

func (a *Arena) GroundY() float64 { return a.level.GroundY }

func (a *Arena) Gravity() float64 {
	if a.level.Gravity == 0 {
		return -20
	}
	return a.level.Gravity
}

// Bounds returns the walkable x range.
func (a *Arena) Bounds() (minX, maxX float64) {
	half := (baseWidth/a.scale - 2*arenaMargin) / 2
	return -half, half
}

func (a *Arena) PlayerStart() (x, y float64) {
	return a.level.PlayerStart()
}

func (a *Arena) ToScreen(v cp.Vector) (float32, float32) {
	x := baseWidth/2 + v.X*a.scale
	y := groundPx - (v.Y-a.level.GroundY)*a.scale
	return float32(x), float32(y)
}

// RectToScreen converts a world box to a screen box with its top-left
// corner first.
func (a *Arena) RectToScreen(r Rect) (x, y, w, h float32) {
	x, y = a.ToScreen(cp.Vector{X: r.X, Y: r.Y + r.Height})
	return x, y, float32(r.Width * a.scale), float32(r.Height * a.scale)
}

// Draw renders the floor and the spawn and power-up markers.
func (a *Arena) Draw(screen *ebiten.Image, lit float64) {
	floor := color.RGBA{R: 0x30, G: 0x30, B: 0x38, A: 0xff}
	vector.FillRect(screen, 0, groundPx, baseWidth, baseHeight-groundPx, floor, false)
	vector.StrokeLine(screen, 0, groundPx, baseWidth, groundPx, 2, dim(colornames.Lightgrey, lit), false)

	for _, e := range a.level.OfType(levels.EntitySpawnPoint) {
		x, y := a.ToScreen(cp.Vector{X: e.X, Y: e.Y})
		mark := colornames.Darkred
		if e.String("side", "auto") == "right" {
			mark = colornames.Darkorange
		}
		vector.StrokeRect(screen, x-6, y-24, 12, 24, 1, dim(mark, lit), false)
	}
	for _, e := range a.level.OfType(levels.EntityPowerUpPoint) {
		x, y := a.ToScreen(cp.Vector{X: e.X, Y: e.Y})
		vector.StrokeLine(screen, x-5, y-2, x+5, y-2, 2, dim(colornames.Seagreen, lit), false)
	}
	for _, e := range a.level.OfType(levels.EntityProximitySpawner) {
		x, y := a.ToScreen(cp.Vector{X: e.X, Y: e.Y})
		r := float32(e.Float("radius", 5) * a.scale)
		vector.StrokeLine(screen, x-r, y+6, x+r, y+6, 1, dim(colornames.Purple, lit), false)
	}
}

// dim scales a color by the flashlight charge, keeping a floor so the
// arena never goes fully black.
func dim(c color.RGBA, lit float64) color.RGBA {
	f := 0.25 + 0.75*lit
	if f > 1 {
		f = 1
	}
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}
