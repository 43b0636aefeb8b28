package obj

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/levels"
	"github.com/milk9111/raycontroller/prefabs"
)

// tilePixels is the resolution of the cached tile images; they are scaled
// to the camera when drawn.
const tilePixels = 32

var hazardColor = color.RGBA{R: 0xe0, G: 0x20, B: 0x20, A: 0xff}

// Level draws the tiles of a levels.Level.
type Level struct {
	level      *levels.Level
	layerImgs  []*ebiten.Image
	hazardImg  *ebiten.Image
	background color.Color
}

func NewLevel(l *levels.Level) *Level {
	lvl := &Level{
		level:      l,
		hazardImg:  triangleImage(tilePixels, hazardColor),
		background: color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff},
	}
	if l == nil {
		return lvl
	}
	for i := range l.Layers {
		hex := ""
		if i < len(l.LayerMeta) {
			hex = l.LayerMeta[i].Color
		}
		lvl.layerImgs = append(lvl.layerImgs, layerImageFromHex(tilePixels, hex))
	}
	return lvl
}

// Draw renders every layer in order, skipping tiles outside the view.
func (l *Level) Draw(screen *ebiten.Image, cam *Camera) {
	if l == nil {
		return
	}
	screen.Fill(l.background)
	if l.level == nil {
		return
	}

	scale := cam.Scale() / tilePixels
	viewW, viewH := cam.ViewSize()
	view := cp.BB{
		L: cam.PosX - viewW/2,
		B: cam.PosY - viewH/2,
		R: cam.PosX + viewW/2,
		T: cam.PosY + viewH/2,
	}

	for layer, tiles := range l.level.Layers {
		for y := 0; y < l.level.Height; y++ {
			for x := 0; x < l.level.Width; x++ {
				var img *ebiten.Image
				switch tiles[y*l.level.Width+x] {
				case levels.TileSolid:
					img = l.layerImgs[layer]
				case levels.TileHazard:
					img = l.hazardImg
				default:
					continue
				}

				bb := l.level.TileBB(x, y, 1, 1)
				if !bb.Intersects(view) {
					continue
				}
				sx, sy := cam.WorldToScreen(cp.Vector{X: bb.L, Y: bb.T})
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(scale, scale)
				op.GeoM.Translate(sx, sy)
				screen.DrawImage(img, op)
			}
		}
	}
}

// layerImageFromHex creates an image filled with the provided hex color.
func layerImageFromHex(size int, hex string) *ebiten.Image {
	c, err := prefabs.ParseColor(hex)
	if err != nil {
		c = color.RGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}
	}
	img := ebiten.NewImage(size, size)
	img.Fill(c)
	return img
}

// triangleImage builds an RGBA image with a filled upward-pointing triangle of the given color.
func triangleImage(size int, col color.RGBA) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	for y := 0; y < size; y++ {
		progress := float64(y) / float64(size-1)
		rowWidth := progress * float64(size)
		left := cx - rowWidth/2
		right := cx + rowWidth/2
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			if fx >= left && fx <= right {
				rgba.Set(x, y, col)
			}
		}
	}
	return ebiten.NewImageFromImage(rgba)
}
