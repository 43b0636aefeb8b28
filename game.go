package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/raycontroller/common"
	"github.com/milk9111/raycontroller/entity"
	"github.com/milk9111/raycontroller/levels"
	"github.com/milk9111/raycontroller/obj"
	"github.com/milk9111/raycontroller/physics"
	"github.com/milk9111/raycontroller/prefabs"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool

	input     *obj.Input
	world     *physics.World
	player    *entity.Player
	camera    *obj.Camera
	levelView *obj.Level

	watcher   *prefabs.Watcher
	pauseUI   *pauseMenu
	clipboard bool
}

func NewGame(levelName string, debug bool) (*Game, error) {
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}

	world := physics.NewWorld(lvl)
	input := obj.NewInput()
	player, err := entity.NewPlayer(spec, world, lvl.SpawnPoint(), input, obj.TPSClock{})
	if err != nil {
		return nil, err
	}
	player.Controller().SetDebug(debug)
	log.Printf("game: level %dx%d, %d static shapes, spawn (%.1f, %.1f)",
		lvl.Width, lvl.Height, world.ShapeCount(), player.Spawn.X, player.Spawn.Y)

	camera := obj.NewCamera(common.BaseWidth, common.BaseHeight, camSpec.Zoom)
	camera.SetSmooth(camSpec.Smoothness)
	camera.SetWorldBounds(lvl.WorldSize())
	camera.SnapTo(player.Center())

	g := &Game{
		debug:     debug,
		input:     input,
		world:     world,
		player:    player,
		camera:    camera,
		levelView: obj.NewLevel(lvl),
	}
	g.pauseUI = newPauseMenu(g)

	if w, err := prefabs.NewWatcher("prefabs"); err != nil {
		log.Printf("game: hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	return g, nil
}

// Close stops background work owned by the game.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}

	g.reloadChangedPrefabs()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.player.Controller().SetDebug(g.debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.player.Respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
		g.copyState()
	}

	respawns := g.player.Respawns()
	g.input.Update()
	g.player.Update()

	if g.player.Respawns() != respawns {
		g.camera.SnapTo(g.player.Center())
	} else {
		g.camera.Update(g.player.Center())
	}
	return nil
}

// reloadChangedPrefabs applies edits picked up by the watcher. A prefab
// that fails to load is logged and the previous values stay in effect.
func (g *Game) reloadChangedPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Poll() {
		switch filepath.Base(path) {
		case "player.yaml":
			g.reloadPlayer()
		case "camera.yaml":
			spec, err := prefabs.LoadCameraSpec()
			if err != nil {
				log.Printf("game: reload camera: %v", err)
				continue
			}
			g.camera.SetZoom(spec.Zoom)
			g.camera.SetSmooth(spec.Smoothness)
			log.Printf("game: reloaded camera.yaml")
		}
	}
	for {
		select {
		case err, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reloadPlayer() {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("game: reload player: %v", err)
		return
	}
	if err := g.player.ApplySpec(spec); err != nil {
		log.Printf("game: apply player spec: %v", err)
		return
	}
	log.Printf("game: reloaded player.yaml (gravity %.2f, jump velocity %.2f)",
		g.player.Driver().Gravity(), g.player.Driver().JumpVelocity())
}

func (g *Game) copyState() {
	if !g.clipboard {
		return
	}
	lvl := g.world.Level()
	out, err := yaml.Marshal(struct {
		Level  string       `yaml:"level_size"`
		Frame  int          `yaml:"frame"`
		Player entity.State `yaml:"player"`
	}{
		Level:  fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
		Frame:  g.frames,
		Player: g.player.State(),
	})
	if err != nil {
		log.Printf("game: marshal state: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	log.Printf("game: copied player state to clipboard")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.camera.Render(screen, func(world *ebiten.Image) {
		g.levelView.Draw(world, g.camera)
		if g.debug {
			obj.DrawPhysics(world, g.camera, g.world)
		}
		obj.DrawPlayer(world, g.camera, g.player, g.debug)
	})

	if g.debug {
		obj.DrawDebugText(screen, g.player)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

var _ ebiten.Game = (*Game)(nil)
