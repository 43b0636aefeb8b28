// Package motion turns player input into a per-frame displacement for a
// controller: gravity, jump impulses and smoothed horizontal acceleration.
package motion

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raycontroller/common"
	"github.com/milk9111/raycontroller/controller"
)

// Input is one frame of player intent. MoveX and MoveY are raw axes in
// [-1, 1]; JumpPressed is true only on the frame the button went down.
type Input struct {
	MoveX       float64
	MoveY       float64
	JumpPressed bool
}

type InputProvider interface {
	Input() Input
}

// Clock reports the seconds elapsed since the previous frame.
type Clock interface {
	DeltaTime() float64
}

// Mover applies a displacement and reports the contacts it ran into.
// *controller.Controller satisfies it.
type Mover interface {
	Move(velocity cp.Vector) (cp.Vector, controller.Collisions)
}

// Config holds the movement tunables.
type Config struct {
	MoveSpeed                float64
	JumpHeight               float64
	TimeToJumpApex           float64
	AccelerationTimeAirborne float64
	AccelerationTimeGrounded float64
	MaxJumps                 int
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:                6,
		JumpHeight:               3,
		TimeToJumpApex:           0.4,
		AccelerationTimeAirborne: 0.2,
		AccelerationTimeGrounded: 0.1,
		MaxJumps:                 2,
	}
}

// Gravity is the constant downward acceleration that makes a jump peak at
// JumpHeight after TimeToJumpApex seconds.
func (c Config) Gravity() float64 {
	if c.TimeToJumpApex <= 0 {
		return 0
	}
	return -2 * c.JumpHeight / (c.TimeToJumpApex * c.TimeToJumpApex)
}

// JumpVelocity is the initial upward speed of a jump under Gravity.
func (c Config) JumpVelocity() float64 {
	return math.Abs(c.Gravity()) * c.TimeToJumpApex
}

// Driver integrates velocity once per frame and hands the displacement to
// its Mover. It keeps the contact snapshot returned by the last move and
// uses it on the next frame. A Driver is not safe for concurrent use.
type Driver struct {
	mover Mover
	input InputProvider
	clock Clock

	cfg          Config
	gravity      float64
	jumpVelocity float64

	velocity         cp.Vector
	velocityXSmooth  float64
	jumpCount        int
	collisions       controller.Collisions
	lastDisplacement cp.Vector
	lastInput        Input
}

func NewDriver(m Mover, in InputProvider, clk Clock, cfg Config) *Driver {
	d := &Driver{mover: m, input: in, clock: clk}
	d.Reconfigure(cfg)
	return d
}

// Reconfigure replaces the tunables and re-derives gravity and jump
// velocity. Velocity and jump state carry over.
func (d *Driver) Reconfigure(cfg Config) {
	cfg.MaxJumps = max(cfg.MaxJumps, 1)
	d.cfg = cfg
	d.gravity = cfg.Gravity()
	d.jumpVelocity = cfg.JumpVelocity()
}

// Update advances the driver by one frame.
func (d *Driver) Update() {
	var dt float64
	if d.clock != nil {
		dt = d.clock.DeltaTime()
	}
	var in Input
	if d.input != nil {
		in = d.input.Input()
	}
	d.lastInput = in

	switch {
	case d.collisions.Above:
		d.velocity.Y = 0
	case d.collisions.Below:
		d.velocity.Y = 0
		d.jumpCount = 0
	case d.jumpCount != d.cfg.MaxJumps:
		// airborne without having used the last jump, e.g. walked off a ledge
		d.jumpCount = 1
	}

	if in.JumpPressed && d.jumpCount < d.cfg.MaxJumps {
		d.velocity.Y = d.jumpVelocity
		d.jumpCount++
	}

	smoothTime := d.cfg.AccelerationTimeAirborne
	if d.collisions.Below {
		smoothTime = d.cfg.AccelerationTimeGrounded
	}
	target := in.MoveX * d.cfg.MoveSpeed
	d.velocity.X = common.SmoothDamp(d.velocity.X, target, &d.velocityXSmooth, smoothTime, math.Inf(1), dt)

	d.velocity.Y += d.gravity * dt

	if d.mover == nil {
		return
	}
	d.lastDisplacement, d.collisions = d.mover.Move(d.velocity.Mult(dt))
}

// Reset clears velocity, smoothing and contact state, as after a respawn.
func (d *Driver) Reset() {
	d.velocity = cp.Vector{}
	d.velocityXSmooth = 0
	d.jumpCount = 0
	d.collisions = controller.Collisions{}
	d.lastDisplacement = cp.Vector{}
}

func (d *Driver) Config() Config { return d.cfg }

// JumpCount returns the jumps taken since the driver was last grounded.
func (d *Driver) JumpCount() int { return d.jumpCount }

// Collisions returns the snapshot produced by the most recent move.
func (d *Driver) Collisions() controller.Collisions { return d.collisions }

// Velocity returns the velocity in units per second used for the last move.
func (d *Driver) Velocity() cp.Vector { return d.velocity }

// Displacement returns the clamped displacement applied by the last move.
func (d *Driver) Displacement() cp.Vector { return d.lastDisplacement }

func (d *Driver) LastInput() Input { return d.lastInput }

func (d *Driver) Gravity() float64 { return d.gravity }

func (d *Driver) JumpVelocity() float64 { return d.jumpVelocity }

// Grounded reports whether the last move ended on the floor.
func (d *Driver) Grounded() bool { return d.collisions.Below }
