package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/controller"
	"github.com/milk9111/raycontroller/physics"
)

var (
	rayMissColor = color.RGBA{R: 0x60, G: 0xa0, B: 0xff, A: 0xc0}
	rayHitColor  = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
)

// DrawPhysics outlines every shape in the world's Chipmunk space.
func DrawPhysics(screen *ebiten.Image, cam *Camera, world *physics.World) {
	if screen == nil || cam == nil || world.Space() == nil {
		return
	}
	cp.DrawSpace(world.Space(), &chipmunkDrawer{screen: screen, cam: cam})
}

// DrawRays draws the rays cast by the last controller move. Rays that hit
// stop at the hit point and are drawn red.
func DrawRays(screen *ebiten.Image, cam *Camera, rays []controller.Ray) {
	for _, r := range rays {
		x0, y0 := cam.WorldToScreen(r.Origin)
		x1, y1 := cam.WorldToScreen(r.End())
		c := rayMissColor
		if r.Hit {
			c = rayHitColor
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, false)
	}
}

type chipmunkDrawer struct {
	screen *ebiten.Image
	cam    *Camera
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	x0, y0 := d.cam.WorldToScreen(a)
	x1, y1 := d.cam.WorldToScreen(b)
	vector.StrokeLine(d.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, false)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, c)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	l := size / 2 / d.cam.Scale()
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

// ShapeColor tells solid and hazard geometry apart by filter category.
func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Filter.Categories&physics.CategoryHazard != 0 {
		return cp.FColor{R: 1.0, G: 0.3, B: 0.2, A: 1.0}
	}
	return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
