package locomotion

import (
	"fmt"

	"github.com/chewxy/math32"
)

type groundedState struct{}

type jumpState struct{}

// fallState covers losing contact without a jump, e.g. walking off a ledge.
// It is only entered when Config.LedgeFall is set.
type fallState struct{}

func (*groundedState) ID() StateID { return StateGrounded }
func (*groundedState) Enter(ctx *Context) error {
	holdGround(ctx)
	return nil
}
func (*groundedState) Update(ctx *Context, _ float32) error {
	holdGround(ctx)
	return nil
}
func (*groundedState) Exit(*Context) {}
func (*groundedState) Next(ctx *Context) StateID {
	if ctx.IsJumpPressed && !ctx.RequireNewJumpPress {
		return StateJump
	}
	if ctx.LedgeFall && !ctx.Grounded {
		return StateFall
	}
	return StateGrounded
}

func (*jumpState) ID() StateID { return StateJump }
func (*jumpState) Enter(ctx *Context) error {
	if ctx.JumpCount >= MaxJumpStage {
		return fmt.Errorf("%w: jump launched with chain at %d", ErrInvariant, ctx.JumpCount)
	}
	if ctx.resetPending {
		ctx.cancelJumpReset()
	}

	ctx.setBool(ctx.Params.IsJumping, true)
	ctx.JumpCount++
	ctx.publishJumpCount()

	v, err := ctx.Profile.LaunchVelocity(ctx.JumpCount)
	if err != nil {
		return err
	}
	ctx.CurrentMovement[1] = v
	ctx.AppliedMovement[1] = v
	return nil
}
func (*jumpState) Update(ctx *Context, dt float32) error {
	return integrateAirborne(ctx, ctx.JumpCount, dt, false)
}
func (*jumpState) Exit(ctx *Context) {
	ctx.setBool(ctx.Params.IsJumping, false)
	if ctx.IsJumpPressed {
		ctx.RequireNewJumpPress = true
	}
	ctx.scheduleJumpReset()
	if ctx.JumpCount == MaxJumpStage {
		ctx.JumpCount = 0
		ctx.publishJumpCount()
	}
}
func (*jumpState) Next(ctx *Context) StateID {
	if ctx.Grounded {
		return StateGrounded
	}
	return StateJump
}

func (*fallState) ID() StateID { return StateFall }
func (*fallState) Enter(ctx *Context) error {
	ctx.setBool(ctx.Params.IsFalling, true)
	return nil
}
func (*fallState) Update(ctx *Context, dt float32) error {
	return integrateAirborne(ctx, 0, dt, true)
}
func (*fallState) Exit(ctx *Context) {
	ctx.setBool(ctx.Params.IsFalling, false)
}
func (*fallState) Next(ctx *Context) StateID {
	if ctx.Grounded {
		return StateGrounded
	}
	return StateFall
}

func holdGround(ctx *Context) {
	ctx.CurrentMovement[1] = ctx.GroundedGravity
	ctx.AppliedMovement[1] = ctx.GroundedGravity
}

// integrateAirborne advances the vertical velocity by one frame. The applied
// value is the average of the previous and new velocity. Releasing the button
// mid-rise switches to the falling branch, which cuts the jump short.
func integrateAirborne(ctx *Context, stage int, dt float32, forceFall bool) error {
	g, err := ctx.Profile.Gravity(stage)
	if err != nil {
		return err
	}

	prev := ctx.CurrentMovement[1]
	if forceFall || prev <= 0 || !ctx.IsJumpPressed {
		ctx.CurrentMovement[1] = prev + g*ctx.FallMultiplier*dt
		ctx.AppliedMovement[1] = math32.Max((prev+ctx.CurrentMovement[1])*0.5, ctx.TerminalVelocity)
		return nil
	}
	ctx.CurrentMovement[1] = prev + g*dt
	ctx.AppliedMovement[1] = (prev + ctx.CurrentMovement[1]) * 0.5
	return nil
}
