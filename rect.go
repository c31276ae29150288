package main

import "github.com/jakecoffman/cp"

// Rect is an axis aligned box in world units, Y up.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectAround centers a w by h box on c.
func RectAround(c cp.Vector, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

func (r *Rect) Intersects(other *Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
