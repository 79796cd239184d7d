package locomotion

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Config holds the tunables of a character controller.
type Config struct {
	// RunMultiplier scales the planar input while running.
	RunMultiplier float32
	// RotationFactor is the slerp factor applied per second when turning
	// toward the movement direction.
	RotationFactor float32
	// GroundedGravity keeps the mover pressed against the ground. Never zero.
	GroundedGravity float32

	MaxJumpHeight float32
	MaxJumpTime   float32

	// FallMultiplier scales gravity once the rise is over or the button is
	// released.
	FallMultiplier float32
	// TerminalVelocity is the floor for the applied vertical velocity while
	// falling.
	TerminalVelocity float32
	// JumpResetDelay is the time in seconds after landing before the jump
	// chain resets.
	JumpResetDelay float64

	// LedgeFall enters the fall state when ground contact is lost without a
	// jump.
	LedgeFall bool
}

func DefaultConfig() Config {
	return Config{
		RunMultiplier:    4.0,
		RotationFactor:   15.0,
		GroundedGravity:  -0.05,
		MaxJumpHeight:    4.0,
		MaxJumpTime:      0.75,
		FallMultiplier:   2.0,
		TerminalVelocity: -20.0,
		JumpResetDelay:   0.5,
	}
}

// Validate rejects configurations that cannot drive a character.
func (c Config) Validate() error {
	if !finitePositive(c.MaxJumpHeight) || !finitePositive(c.MaxJumpTime) {
		return fmt.Errorf("%w: height=%v jump time=%v", ErrInvalidJumpProfile, c.MaxJumpHeight, c.MaxJumpTime)
	}
	switch {
	case !finitePositive(c.RunMultiplier):
		return fmt.Errorf("%w: run multiplier %v", ErrInvalidConfig, c.RunMultiplier)
	case !(c.RotationFactor >= 0) || math32.IsInf(c.RotationFactor, 1):
		return fmt.Errorf("%w: rotation factor %v", ErrInvalidConfig, c.RotationFactor)
	case !(c.GroundedGravity < 0) || math32.IsInf(c.GroundedGravity, -1):
		return fmt.Errorf("%w: grounded gravity %v must be negative", ErrInvalidConfig, c.GroundedGravity)
	case !finitePositive(c.FallMultiplier):
		return fmt.Errorf("%w: fall multiplier %v", ErrInvalidConfig, c.FallMultiplier)
	case !(c.TerminalVelocity < 0) || math32.IsInf(c.TerminalVelocity, -1):
		return fmt.Errorf("%w: terminal velocity %v must be negative", ErrInvalidConfig, c.TerminalVelocity)
	case !(c.JumpResetDelay >= 0):
		return fmt.Errorf("%w: jump reset delay %v", ErrInvalidConfig, c.JumpResetDelay)
	}
	return nil
}
