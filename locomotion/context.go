package locomotion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Context is the blackboard shared by every state of one character.
// Only the owning Machine and the input callbacks mutate it.
type Context struct {
	MovementInput   mgl32.Vec2
	CurrentMovement mgl32.Vec3
	AppliedMovement mgl32.Vec3

	IsMovementPressed   bool
	IsRunPressed        bool
	IsJumpPressed       bool
	RequireNewJumpPress bool

	JumpCount int
	// Grounded mirrors the mover's contact flag for the current frame.
	Grounded bool

	Profile          JumpProfile
	GroundedGravity  float32
	RunMultiplier    float32
	FallMultiplier   float32
	TerminalVelocity float32
	LedgeFall        bool

	Params   AnimParams
	Animator Animator

	now          float64
	resetDelay   float64
	resetDue     float64
	resetPending bool
}

func newContext(cfg Config, profile JumpProfile) *Context {
	return &Context{
		Profile:          profile,
		GroundedGravity:  cfg.GroundedGravity,
		RunMultiplier:    cfg.RunMultiplier,
		FallMultiplier:   cfg.FallMultiplier,
		TerminalVelocity: cfg.TerminalVelocity,
		LedgeFall:        cfg.LedgeFall,
		Params:           DefaultAnimParams(),
		Animator:         NopAnimator{},
		resetDelay:       cfg.JumpResetDelay,
	}
}

// Now returns the frame clock in seconds.
func (c *Context) Now() float64 {
	return c.now
}

// JumpResetDue returns the deadline of the pending jump chain reset.
func (c *Context) JumpResetDue() (float64, bool) {
	return c.resetDue, c.resetPending
}

func (c *Context) setBool(param AnimParam, value bool) {
	if c.Animator != nil {
		c.Animator.SetBool(param, value)
	}
}

func (c *Context) setInt(param AnimParam, value int) {
	if c.Animator != nil {
		c.Animator.SetInt(param, value)
	}
}

func (c *Context) publishJumpCount() {
	c.setInt(c.Params.JumpCount, c.JumpCount)
}

func (c *Context) scheduleJumpReset() {
	c.resetDue = c.now + c.resetDelay
	c.resetPending = true
}

func (c *Context) cancelJumpReset() {
	c.resetDue = 0
	c.resetPending = false
}

// fireJumpReset resets the chain once the deadline has passed.
func (c *Context) fireJumpReset() bool {
	if !c.resetPending || c.now < c.resetDue {
		return false
	}
	c.cancelJumpReset()
	c.JumpCount = 0
	c.publishJumpCount()
	return true
}

func (c *Context) validate() error {
	if c.JumpCount < 0 || c.JumpCount > MaxJumpStage {
		return fmt.Errorf("%w: jump count %d outside [0,%d]", ErrInvariant, c.JumpCount, MaxJumpStage)
	}
	return nil
}
