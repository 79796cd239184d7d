package locomotion

// Leaf states only write the planar components of the applied movement.

type idleState struct{}

type walkState struct{}

type runState struct{}

func (*idleState) ID() StateID { return StateIdle }
func (*idleState) Enter(ctx *Context) error {
	ctx.setBool(ctx.Params.IsWalking, false)
	ctx.setBool(ctx.Params.IsRunning, false)
	setPlanar(ctx, 0, 0)
	return nil
}
func (*idleState) Update(ctx *Context, _ float32) error {
	setPlanar(ctx, 0, 0)
	return nil
}
func (*idleState) Exit(*Context)              {}
func (*idleState) Next(ctx *Context) StateID { return movementState(ctx) }

func (*walkState) ID() StateID { return StateWalk }
func (*walkState) Enter(ctx *Context) error {
	ctx.setBool(ctx.Params.IsWalking, true)
	ctx.setBool(ctx.Params.IsRunning, false)
	return nil
}
func (*walkState) Update(ctx *Context, _ float32) error {
	setPlanar(ctx, ctx.MovementInput[0], ctx.MovementInput[1])
	return nil
}
func (*walkState) Exit(*Context)              {}
func (*walkState) Next(ctx *Context) StateID { return movementState(ctx) }

func (*runState) ID() StateID { return StateRun }
func (*runState) Enter(ctx *Context) error {
	ctx.setBool(ctx.Params.IsWalking, true)
	ctx.setBool(ctx.Params.IsRunning, true)
	return nil
}
func (*runState) Update(ctx *Context, _ float32) error {
	setPlanar(ctx, ctx.MovementInput[0]*ctx.RunMultiplier, ctx.MovementInput[1]*ctx.RunMultiplier)
	return nil
}
func (*runState) Exit(*Context)              {}
func (*runState) Next(ctx *Context) StateID { return movementState(ctx) }

func setPlanar(ctx *Context, x, z float32) {
	ctx.AppliedMovement[0] = x
	ctx.AppliedMovement[2] = z
}
