package obj

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/raycontroller/motion"
)

// stickDeadzone is the stick deflection below which an axis reads as zero.
const stickDeadzone = 0.3

// Input polls keyboard and the first standard gamepad. Call Update once per
// tick before the player reads it through Input.
type Input struct {
	// MoveX/MoveY are raw axes: -1, 0 or +1 on keyboard, stick value past
	// the deadzone on a gamepad. MoveY is positive up.
	MoveX float64
	MoveY float64
	// JumpPressed is true on the frame the jump key or button went down.
	JumpPressed bool

	gamepads []ebiten.GamepadID
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the devices.
func (i *Input) Update() {
	var moveX, moveY float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveY += 1
	}
	jump := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	i.gamepads = inpututil.AppendJustConnectedGamepadIDs(i.gamepads[:0])
	for _, id := range i.gamepads {
		log.Printf("input: gamepad %d ready (%s)", id, ebiten.GamepadName(id))
	}

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
			if x < -stickDeadzone || x > stickDeadzone {
				moveX = x
			}
			// stick y grows downwards
			if y < -stickDeadzone || y > stickDeadzone {
				moveY = -y
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
				moveX = -1
			}
			if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
				moveX = 1
			}
			jump = jump || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		}
	}

	i.MoveX = moveX
	i.MoveY = moveY
	i.JumpPressed = jump
}

// Input implements motion.InputProvider.
func (i *Input) Input() motion.Input {
	return motion.Input{MoveX: i.MoveX, MoveY: i.MoveY, JumpPressed: i.JumpPressed}
}
