package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/raycontroller/common"
	"github.com/milk9111/raycontroller/physics"
	"golang.org/x/image/font/basicfont"
)

// pauseMenu is the centered panel shown while the game is paused. It lists
// the player's current tuning so hot reloads can be checked at a glance.
type pauseMenu struct {
	ui     *ebitenui.UI
	tuning *widget.Text
	game   *Game
}

func newPauseMenu(g *Game) *pauseMenu {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	m := &pauseMenu{game: g}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	m.tuning = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnPressedImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Left: 16, Right: 16, Top: 6, Bottom: 6}),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(m.tuning)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Reload player.yaml", g.reloadPlayer))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	m.ui = &ebitenui.UI{Container: root}
	m.refresh()
	return m
}

func (m *pauseMenu) Update() {
	m.refresh()
	m.ui.Update()
}

func (m *pauseMenu) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}

func (m *pauseMenu) refresh() {
	m.tuning.Label = tuningText(m.game)
}

func tuningText(g *Game) string {
	spec := g.player.Spec()
	d := g.player.Driver()
	c := g.player.Controller()
	hRays, vRays := c.RayCounts()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", spec.Name)
	fmt.Fprintf(&b, "move speed      %6.2f\n", spec.MoveSpeed)
	fmt.Fprintf(&b, "jump height     %6.2f\n", spec.JumpHeight)
	fmt.Fprintf(&b, "time to apex    %6.2f\n", spec.TimeToJumpApex)
	fmt.Fprintf(&b, "accel air       %6.2f\n", spec.AccelerationTimeAirborne)
	fmt.Fprintf(&b, "accel ground    %6.2f\n", spec.AccelerationTimeGrounded)
	fmt.Fprintf(&b, "max jumps       %6d\n\n", d.Config().MaxJumps)
	fmt.Fprintf(&b, "gravity         %6.2f\n", d.Gravity())
	fmt.Fprintf(&b, "jump velocity   %6.2f\n", d.JumpVelocity())
	fmt.Fprintf(&b, "rays            %d x %d\n", hRays, vRays)
	fmt.Fprintf(&b, "mask            %s\n\n", strings.Join(physics.MaskNames(c.CollisionMask()), ","))
	fmt.Fprintf(&b, "camera zoom     %6.2f", g.camera.Zoom())
	return b.String()
}
