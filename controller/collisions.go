package controller

import (
	"strings"

	"github.com/jakecoffman/cp"
)

// Collisions records which sides of the box touched geometry during a Move.
// It is returned by value; callers keep the snapshot they were given.
type Collisions struct {
	Above, Below bool
	Left, Right  bool
}

// Reset clears every flag.
func (c *Collisions) Reset() {
	c.Above, c.Below = false, false
	c.Left, c.Right = false, false
}

// Any reports whether any side is in contact.
func (c Collisions) Any() bool {
	return c.Above || c.Below || c.Left || c.Right
}

func (c Collisions) String() string {
	var sides []string
	if c.Above {
		sides = append(sides, "above")
	}
	if c.Below {
		sides = append(sides, "below")
	}
	if c.Left {
		sides = append(sides, "left")
	}
	if c.Right {
		sides = append(sides, "right")
	}
	if len(sides) == 0 {
		return "none"
	}
	return strings.Join(sides, ",")
}

// Ray is one cast made during the last Move, kept for debug drawing.
type Ray struct {
	Origin   cp.Vector
	Dir      cp.Vector
	Length   float64
	Hit      bool
	Distance float64
}

// End returns the far end of the ray, or the hit point when it hit.
func (r Ray) End() cp.Vector {
	if r.Hit {
		return r.Origin.Add(r.Dir.Mult(r.Distance))
	}
	return r.Origin.Add(r.Dir.Mult(r.Length))
}

// SetDebug toggles recording of the rays cast by Move.
func (c *Controller) SetDebug(enabled bool) {
	c.debug = enabled
	if !enabled {
		c.rays = nil
	}
}

// Rays returns the rays cast by the last Move while debug is enabled. The
// slice is reused by the next Move.
func (c *Controller) Rays() []Ray {
	return c.rays
}
