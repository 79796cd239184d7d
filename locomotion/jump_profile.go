package locomotion

import (
	"fmt"

	"github.com/chewxy/math32"
)

// MaxJumpStage is the last stage of a jump chain. Landing the third jump
// always resets the chain.
const MaxJumpStage = 3

const (
	stageHeightStep = 2.0
	stageTimeStep   = 0.25
)

// JumpProfile holds the per-stage gravity and launch velocity derived from
// designer targets. Index 0 of the gravity table is the baseline used before
// any jump has happened.
type JumpProfile struct {
	gravities  [MaxJumpStage + 1]float32
	velocities [MaxJumpStage + 1]float32
	ready      bool
}

// NewJumpProfile derives the jump tables from the apex height of the first
// stage and the total time of its jump. Time to apex is half of maxJumpTime.
func NewJumpProfile(maxHeight, maxJumpTime float32) (JumpProfile, error) {
	if !finitePositive(maxHeight) || !finitePositive(maxJumpTime) {
		return JumpProfile{}, fmt.Errorf("%w: height=%v jump time=%v", ErrInvalidJumpProfile, maxHeight, maxJumpTime)
	}

	timeToApex := maxJumpTime / 2
	var p JumpProfile
	for stage := 1; stage <= MaxJumpStage; stage++ {
		h, t := StageTargets(maxHeight, timeToApex, stage)
		p.gravities[stage] = -2 * h / (t * t)
		p.velocities[stage] = 2 * h / t
	}
	p.gravities[0] = p.gravities[1]
	p.ready = true
	return p, nil
}

// StageTargets returns the apex height and time to apex for a stage of the
// chain. Each stage is two units taller and a quarter slower than the first.
func StageTargets(height, timeToApex float32, stage int) (h, t float32) {
	k := float32(stage - 1)
	return height + stageHeightStep*k, timeToApex * (1 + stageTimeStep*k)
}

// Gravity returns the rise gravity for stage 0..3.
func (p JumpProfile) Gravity(stage int) (float32, error) {
	if !p.ready || stage < 0 || stage > MaxJumpStage {
		return 0, fmt.Errorf("%w: no gravity for jump stage %d", ErrInvariant, stage)
	}
	return p.gravities[stage], nil
}

// LaunchVelocity returns the initial vertical velocity for stage 1..3.
func (p JumpProfile) LaunchVelocity(stage int) (float32, error) {
	if !p.ready || stage < 1 || stage > MaxJumpStage {
		return 0, fmt.Errorf("%w: no launch velocity for jump stage %d", ErrInvariant, stage)
	}
	return p.velocities[stage], nil
}

// Ready reports whether the tables were populated by NewJumpProfile.
func (p JumpProfile) Ready() bool {
	return p.ready
}

func finitePositive(v float32) bool {
	return v > 0 && !math32.IsInf(v, 1)
}
