// Package controller resolves the movement of a single axis-aligned box
// against static geometry by casting rays from the edges of the box along
// each axis of travel.
package controller

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/common"
)

// SkinWidth is the inset applied to every side of the body's bounds before
// rays are cast. Rays start slightly inside the box so a body resting flush
// against a surface still sees that surface.
const SkinWidth = 0.015

const minRayCount = 2

// Raycaster answers nearest-hit queries against static geometry. dir is a
// unit vector and only geometry whose category matches mask is considered.
type Raycaster interface {
	Raycast(origin, dir cp.Vector, maxDist float64, mask uint) (float64, bool)
}

// Body supplies the box being moved.
type Body interface {
	Bounds() cp.BB
	Translate(delta cp.Vector)
}

// Config holds the ray layout and collision mask of a controller.
type Config struct {
	HorizontalRayCount int
	VerticalRayCount   int
	CollisionMask      uint
}

// DefaultConfig casts four rays per axis against every category.
func DefaultConfig() Config {
	return Config{
		HorizontalRayCount: 4,
		VerticalRayCount:   4,
		CollisionMask:      cp.ALL_CATEGORIES,
	}
}

type raycastOrigins struct {
	topLeft, topRight       cp.Vector
	bottomLeft, bottomRight cp.Vector
}

// Controller moves a Body through static geometry. It is driven once per
// frame from a single goroutine and is not safe for concurrent use.
type Controller struct {
	body   Body
	caster Raycaster

	horizontalRayCount int
	verticalRayCount   int
	collisionMask      uint

	horizontalRaySpacing float64
	verticalRaySpacing   float64
	spacingWidth         float64
	spacingHeight        float64

	origins    raycastOrigins
	collisions Collisions

	debug bool
	rays  []Ray
}

// New builds a controller for body that queries caster for obstructions.
func New(body Body, caster Raycaster, cfg Config) *Controller {
	c := &Controller{body: body, caster: caster}
	c.Configure(cfg.HorizontalRayCount, cfg.VerticalRayCount, cfg.CollisionMask)
	return c
}

// Configure sets the number of rays cast along each edge and the collision
// mask. Ray counts below two are raised to two.
func (c *Controller) Configure(horizontalRayCount, verticalRayCount int, mask uint) {
	if c == nil {
		return
	}
	c.horizontalRayCount = max(horizontalRayCount, minRayCount)
	c.verticalRayCount = max(verticalRayCount, minRayCount)
	c.collisionMask = mask
	c.calculateRaySpacing(c.bounds())
}

// RayCounts returns the clamped horizontal and vertical ray counts.
func (c *Controller) RayCounts() (int, int) {
	return c.horizontalRayCount, c.verticalRayCount
}

// RaySpacing returns the distance between neighbouring horizontal rays
// (along the vertical edges) and vertical rays (along the horizontal edges).
func (c *Controller) RaySpacing() (float64, float64) {
	return c.horizontalRaySpacing, c.verticalRaySpacing
}

// CollisionMask returns the mask passed to the raycaster.
func (c *Controller) CollisionMask() uint {
	return c.collisionMask
}

// Collisions returns the contact flags produced by the last Move.
func (c *Controller) Collisions() Collisions {
	return c.collisions
}

// Move clamps velocity against the geometry around the body, translates the
// body by the clamped amount and returns it together with the contacts found
// this call. A zero component skips that axis entirely.
func (c *Controller) Move(velocity cp.Vector) (cp.Vector, Collisions) {
	if c == nil || c.body == nil {
		return velocity, Collisions{}
	}

	c.updateRaycastOrigins()

	c.collisions.Reset()
	c.rays = c.rays[:0]

	if velocity.X != 0 {
		velocity.X = c.horizontalCollisions(velocity.X)
	}
	if velocity.Y != 0 {
		velocity.Y = c.verticalCollisions(velocity)
	}

	c.body.Translate(velocity)
	return velocity, c.collisions
}

func (c *Controller) horizontalCollisions(vx float64) float64 {
	dirX := common.Sign(vx)
	rayLength := math.Abs(vx) + SkinWidth
	dir := cp.Vector{X: dirX}

	for i := 0; i < c.horizontalRayCount; i++ {
		origin := c.origins.bottomRight
		if dirX == -1 {
			origin = c.origins.bottomLeft
		}
		origin.Y += c.horizontalRaySpacing * float64(i)

		dist, hit := c.cast(origin, dir, rayLength)
		if !hit {
			continue
		}

		vx = (dist - SkinWidth) * dirX
		rayLength = dist

		c.collisions.Left = dirX == -1
		c.collisions.Right = dirX == 1
	}

	return vx
}

// verticalCollisions shifts every origin by the already resolved x velocity
// so rays start from where the body is about to be.
func (c *Controller) verticalCollisions(velocity cp.Vector) float64 {
	vy := velocity.Y
	dirY := common.Sign(vy)
	rayLength := math.Abs(vy) + SkinWidth
	dir := cp.Vector{Y: dirY}

	for i := 0; i < c.verticalRayCount; i++ {
		origin := c.origins.topLeft
		if dirY == -1 {
			origin = c.origins.bottomLeft
		}
		origin.X += c.verticalRaySpacing*float64(i) + velocity.X

		dist, hit := c.cast(origin, dir, rayLength)
		if !hit {
			continue
		}

		vy = (dist - SkinWidth) * dirY
		rayLength = dist

		c.collisions.Below = dirY == -1
		c.collisions.Above = dirY == 1
	}

	return vy
}

func (c *Controller) cast(origin, dir cp.Vector, length float64) (float64, bool) {
	if c.caster == nil {
		return 0, false
	}
	dist, hit := c.caster.Raycast(origin, dir, length, c.collisionMask)
	if c.debug {
		c.rays = append(c.rays, Ray{Origin: origin, Dir: dir, Length: length, Hit: hit, Distance: dist})
	}
	return dist, hit
}

// bounds returns the body's box shrunk by SkinWidth. An axis thinner than
// twice the skin collapses onto its centre line.
func (c *Controller) bounds() cp.BB {
	if c.body == nil {
		return cp.BB{}
	}
	bb := c.body.Bounds()
	bb.L += SkinWidth
	bb.R -= SkinWidth
	bb.B += SkinWidth
	bb.T -= SkinWidth
	if bb.L > bb.R {
		mid := (bb.L + bb.R) / 2
		bb.L, bb.R = mid, mid
	}
	if bb.B > bb.T {
		mid := (bb.B + bb.T) / 2
		bb.B, bb.T = mid, mid
	}
	return bb
}

func (c *Controller) updateRaycastOrigins() {
	bb := c.bounds()
	if bb.R-bb.L != c.spacingWidth || bb.T-bb.B != c.spacingHeight {
		c.calculateRaySpacing(bb)
	}
	c.origins = raycastOrigins{
		topLeft:     cp.Vector{X: bb.L, Y: bb.T},
		topRight:    cp.Vector{X: bb.R, Y: bb.T},
		bottomLeft:  cp.Vector{X: bb.L, Y: bb.B},
		bottomRight: cp.Vector{X: bb.R, Y: bb.B},
	}
}

func (c *Controller) calculateRaySpacing(bb cp.BB) {
	c.spacingWidth = bb.R - bb.L
	c.spacingHeight = bb.T - bb.B
	c.horizontalRaySpacing = c.spacingHeight / float64(c.horizontalRayCount-1)
	c.verticalRaySpacing = c.spacingWidth / float64(c.verticalRayCount-1)
}
