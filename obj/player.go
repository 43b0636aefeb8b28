package obj

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/entity"
	"golang.org/x/image/colornames"
)

var (
	contactColor = colornames.Yellow
	outlineColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
)

// DrawPlayer fills the player's box. Sides in contact with geometry are
// highlighted when debug is set.
func DrawPlayer(screen *ebiten.Image, cam *Camera, p *entity.Player, debug bool) {
	if p == nil {
		return
	}
	x, y := cam.WorldToScreen(cp.Vector{X: p.X, Y: p.Y + p.Height})
	w := p.Width * cam.Scale()
	h := p.Height * cam.Scale()

	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), p.Color, false)
	if !debug {
		return
	}

	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, outlineColor, false)

	cols := p.Driver().Collisions()
	edge := func(x0, y0, x1, y1 float64) {
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 3, contactColor, false)
	}
	if cols.Above {
		edge(x, y, x+w, y)
	}
	if cols.Below {
		edge(x, y+h, x+w, y+h)
	}
	if cols.Left {
		edge(x, y, x, y+h)
	}
	if cols.Right {
		edge(x+w, y, x+w, y+h)
	}

	DrawRays(screen, cam, p.Controller().Rays())
}

// DrawDebugText prints the player's state in the top-left corner.
func DrawDebugText(screen *ebiten.Image, p *entity.Player) {
	if p == nil {
		return
	}
	d := p.Driver()
	in := d.LastInput()
	msg := fmt.Sprintf("TPS %0.1f  FPS %0.1f\n%s\ninput x=%0.2f y=%0.2f jump=%v\nrespawns %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), p.State(), in.MoveX, in.MoveY, in.JumpPressed, p.Respawns())
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
