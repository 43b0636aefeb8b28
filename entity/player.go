package entity

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/common"
	"github.com/milk9111/raycontroller/controller"
	"github.com/milk9111/raycontroller/motion"
	"github.com/milk9111/raycontroller/physics"
	"github.com/milk9111/raycontroller/prefabs"
	"golang.org/x/image/colornames"
)

var ErrNilSpec = errors.New("entity: nil player spec")

// killDepth is how far below the bottom of the level the player may fall
// before being respawned.
const killDepth = 4.0

// Player is the controllable box. Its Rect is moved in place by the
// controller; X/Y is the bottom-left corner in world units.
type Player struct {
	common.Rect
	Spawn cp.Vector
	Color color.Color

	world      *physics.World
	controller *controller.Controller
	driver     *motion.Driver

	spec     prefabs.PlayerSpec
	respawns int
}

// NewPlayer builds a player standing on spawn (bottom-centre of its box)
// and wires a controller and motion driver to it.
func NewPlayer(spec *prefabs.PlayerSpec, world *physics.World, spawn cp.Vector, input motion.InputProvider, clock motion.Clock) (*Player, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("entity: player: %w", err)
	}
	mask, err := physics.MaskFromNames(spec.CollisionMask)
	if err != nil {
		return nil, fmt.Errorf("entity: player: %w", err)
	}

	p := &Player{
		Spawn: spawn,
		world: world,
		spec:  *spec,
	}
	p.Width, p.Height = spec.Collider.Width, spec.Collider.Height
	p.placeAt(spawn)
	p.Color = specColor(spec)

	p.controller = controller.New(&p.Rect, world, controller.Config{
		HorizontalRayCount: spec.Rays.Horizontal,
		VerticalRayCount:   spec.Rays.Vertical,
		CollisionMask:      mask,
	})
	p.driver = motion.NewDriver(p.controller, input, clock, MotionConfig(spec))
	return p, nil
}

// MotionConfig converts the movement section of a player spec.
func MotionConfig(spec *prefabs.PlayerSpec) motion.Config {
	return motion.Config{
		MoveSpeed:                spec.MoveSpeed,
		JumpHeight:               spec.JumpHeight,
		TimeToJumpApex:           spec.TimeToJumpApex,
		AccelerationTimeAirborne: spec.AccelerationTimeAirborne,
		AccelerationTimeGrounded: spec.AccelerationTimeGrounded,
		MaxJumps:                 spec.MaxJumps,
	}
}

func specColor(spec *prefabs.PlayerSpec) color.Color {
	if spec.Color != nil && spec.Color.Color != nil {
		return spec.Color.Color
	}
	return colornames.Crimson
}

// Update advances the player one frame and respawns it after touching a
// hazard or falling out of the level.
func (p *Player) Update() {
	p.driver.Update()

	if p.touchingHazard() || p.fellOut() {
		p.Respawn()
	}
}

// Respawn puts the player back on its spawn point at rest.
func (p *Player) Respawn() {
	p.placeAt(p.Spawn)
	p.driver.Reset()
	p.respawns++
	log.Printf("player: respawned at (%.2f, %.2f)", p.Spawn.X, p.Spawn.Y)
}

// ApplySpec swaps in new tunables without resetting motion. The collider
// is resized around its bottom-centre so the player stays on the floor.
func (p *Player) ApplySpec(spec *prefabs.PlayerSpec) error {
	if spec == nil {
		return ErrNilSpec
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("entity: player: %w", err)
	}
	mask, err := physics.MaskFromNames(spec.CollisionMask)
	if err != nil {
		return fmt.Errorf("entity: player: %w", err)
	}

	foot := cp.Vector{X: p.X + p.Width/2, Y: p.Y}
	p.Width, p.Height = spec.Collider.Width, spec.Collider.Height
	p.placeAt(foot)

	p.controller.Configure(spec.Rays.Horizontal, spec.Rays.Vertical, mask)
	p.driver.Reconfigure(MotionConfig(spec))
	p.Color = specColor(spec)
	p.spec = *spec
	return nil
}

func (p *Player) placeAt(foot cp.Vector) {
	p.X = foot.X - p.Width/2
	p.Y = foot.Y
}

// touchingHazard checks the box shrunk by the skin width so resting next
// to a hazard tile does not count.
func (p *Player) touchingHazard() bool {
	bb := p.Bounds()
	bb.L += controller.SkinWidth
	bb.B += controller.SkinWidth
	bb.R -= controller.SkinWidth
	bb.T -= controller.SkinWidth
	return p.world.Overlaps(bb, physics.CategoryHazard)
}

func (p *Player) fellOut() bool {
	return p.Y+p.Height < -killDepth
}

func (p *Player) Controller() *controller.Controller { return p.controller }

func (p *Player) Driver() *motion.Driver { return p.driver }

func (p *Player) Spec() prefabs.PlayerSpec { return p.spec }

func (p *Player) Respawns() int { return p.respawns }

// State is a snapshot of the player suitable for logging or pasting into a
// bug report. MoveX/MoveY is the clamped displacement of the last move.
type State struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	VelocityX  float64 `yaml:"velocity_x"`
	VelocityY  float64 `yaml:"velocity_y"`
	MoveX      float64 `yaml:"move_x"`
	MoveY      float64 `yaml:"move_y"`
	Collisions string  `yaml:"collisions"`
	JumpCount  int     `yaml:"jump_count"`
	Respawns   int     `yaml:"respawns"`
}

func (p *Player) State() State {
	v := p.driver.Velocity()
	moved := p.driver.Displacement()
	return State{
		X:          p.X,
		Y:          p.Y,
		VelocityX:  v.X,
		VelocityY:  v.Y,
		MoveX:      moved.X,
		MoveY:      moved.Y,
		Collisions: p.driver.Collisions().String(),
		JumpCount:  p.driver.JumpCount(),
		Respawns:   p.respawns,
	}
}

func (s State) String() string {
	return fmt.Sprintf("pos=(%.3f, %.3f) vel=(%.3f, %.3f) moved=(%.4f, %.4f) contacts=%s jumps=%d",
		s.X, s.Y, s.VelocityX, s.VelocityY, s.MoveX, s.MoveY, s.Collisions, s.JumpCount)
}
