package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned box in world units. X/Y is the bottom-left corner
// and Y grows upwards.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the rect as a Chipmunk bounding box.
func (r *Rect) Bounds() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// Translate moves the rect by delta.
func (r *Rect) Translate(delta cp.Vector) {
	r.X += delta.X
	r.Y += delta.Y
}

// Center returns the midpoint of the rect.
func (r *Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r *Rect) Intersects(other *Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
