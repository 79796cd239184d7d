package main

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/locomotion/locomotion"
)

const stickDeadzone = 0.2

// Input polls keyboard and gamepad once per tick and forwards changes to the
// controller as input events.
type Input struct {
	// Move is the planar input, X right and Y forward, at most unit length.
	Move mgl32.Vec2
	Jump bool
	Run  bool
	// CameraYaw and CameraPitch are orbit axes in [-1,1].
	CameraYaw   float32
	CameraPitch float32

	ResetPressed bool
	DebugPressed bool

	sent struct {
		move mgl32.Vec2
		jump bool
		run  bool
	}
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var move mgl32.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		move[1] -= 1
	}

	var yaw, pitch float32
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		yaw -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyE) {
		yaw += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		pitch += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		pitch -= 1
	}

	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	run := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]

		stick := mgl32.Vec2{
			float32(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)),
			-float32(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)),
		}
		if stick.Len() > stickDeadzone {
			move = stick
		}

		rx := float32(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal))
		ry := float32(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical))
		if rx*rx+ry*ry > stickDeadzone*stickDeadzone {
			yaw = rx
			pitch = -ry
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		run = run || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
	}

	// Diagonals and stick overshoot are clamped to unit length.
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}

	i.Move = move
	i.Jump = jump
	i.Run = run
	i.CameraYaw = mgl32.Clamp(yaw, -1, 1)
	i.CameraPitch = mgl32.Clamp(pitch, -1, 1)
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
}

// Apply forwards only what changed since the last call.
func (i *Input) Apply(ctx *locomotion.Context) {
	if i.Move != i.sent.move {
		ctx.OnMove(i.Move)
		i.sent.move = i.Move
	}
	if i.Run != i.sent.run {
		ctx.OnRun(i.Run)
		i.sent.run = i.Run
	}
	if i.Jump != i.sent.jump {
		ctx.OnJump(i.Jump)
		i.sent.jump = i.Jump
	}
}

// Sync pushes the full input state, e.g. into a freshly built controller.
func (i *Input) Sync(ctx *locomotion.Context) {
	ctx.Restore(i.Move, i.Run, i.Jump)
	i.sent.move = i.Move
	i.sent.run = i.Run
	i.sent.jump = i.Jump
}
