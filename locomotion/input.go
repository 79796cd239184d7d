package locomotion

import "github.com/go-gl/mathgl/mgl32"

// OnMove records the latest planar input sample. A zero vector is a release.
func (c *Context) OnMove(v mgl32.Vec2) {
	c.MovementInput = v
	c.IsMovementPressed = v[0] != 0 || v[1] != 0
}

// OnJump records the jump button level. Only a press edge clears the
// re-press latch set when a jump ends with the button held.
func (c *Context) OnJump(pressed bool) {
	if pressed && !c.IsJumpPressed {
		c.RequireNewJumpPress = false
	}
	c.IsJumpPressed = pressed
}

func (c *Context) OnRun(pressed bool) {
	c.IsRunPressed = pressed
}

// Restore seeds a fresh context with buttons already held. A held jump is
// latched so it needs a release and press before launching.
func (c *Context) Restore(move mgl32.Vec2, run, jump bool) {
	c.OnMove(move)
	c.OnRun(run)
	c.IsJumpPressed = jump
	c.RequireNewJumpPress = jump
}
