package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/common"
)

// Camera maps world units (y up) to screen pixels (y down) around a view
// centre that follows a target.
type Camera struct {
	// view centre in world units
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64
	off     *ebiten.Image

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds in world units (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size and initial zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

// SetWorldBounds sets the level size in world units for clamping.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// Scale is the number of screen pixels per world unit.
func (c *Camera) Scale() float64 {
	return common.PixelsPerUnit * c.zoom
}

// ViewSize returns the visible area in world units.
func (c *Camera) ViewSize() (float64, float64) {
	s := c.Scale()
	return float64(c.screenW) / s, float64(c.screenH) / s
}

// WorldToScreen converts a world position to screen pixels.
func (c *Camera) WorldToScreen(p cp.Vector) (float64, float64) {
	viewW, viewH := c.ViewSize()
	left := c.PosX - viewW/2
	top := c.PosY + viewH/2
	s := c.Scale()
	return (p.X - left) * s, (top - p.Y) * s
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate Update loop to get consistent smoothing.
func (c *Camera) Update(target cp.Vector) {
	if c.smooth <= 0 {
		c.PosX = target.X
		c.PosY = target.Y
	} else {
		c.PosX = common.Lerp(c.PosX, target.X, c.smooth)
		c.PosY = common.Lerp(c.PosY, target.Y, c.smooth)
	}
	c.constrain()
}

// SnapTo places the camera without smoothing, e.g. after a level load or
// respawn.
func (c *Camera) SnapTo(target cp.Vector) {
	c.PosX = target.X
	c.PosY = target.Y
	c.constrain()
}

func (c *Camera) constrain() {
	// snap to the pixel grid so tiles do not shimmer
	if s := c.Scale(); s != 0 {
		c.PosX = math.Round(c.PosX*s) / s
		c.PosY = math.Round(c.PosY*s) / s
	}

	viewW, viewH := c.ViewSize()
	c.PosX = clampAxis(c.PosX, viewW/2, c.worldW)
	c.PosY = clampAxis(c.PosY, viewH/2, c.worldH)
}

// clampAxis keeps a half-view inside [0, size], centring on the world when
// it is smaller than the view.
func clampAxis(pos, half, size float64) float64 {
	if size <= 0 {
		return pos
	}
	if size-half < half {
		return size / 2
	}
	return common.Clamp(pos, half, size-half)
}

// Render lets drawWorld paint into an offscreen buffer sized to the screen,
// then copies it onto screen.
func (c *Camera) Render(screen *ebiten.Image, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.screenW, c.screenH)
	}

	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
