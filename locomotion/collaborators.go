package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"
)

// Mover displaces the body and reports ground contact from its last move.
type Mover interface {
	Move(displacement mgl32.Vec3)
	IsGrounded() bool
}

// Camera exposes the world-space basis used for camera-relative movement.
type Camera interface {
	Forward() mgl32.Vec3
	Right() mgl32.Vec3
}

// Animator receives animation parameters. It never feeds back into the
// state machine.
type Animator interface {
	SetBool(param AnimParam, value bool)
	SetInt(param AnimParam, value int)
}

// AnimParam is an opaque animation parameter handle.
type AnimParam uint64

// ParamID hashes a parameter name into a handle.
func ParamID(name string) AnimParam {
	return AnimParam(xxh3.HashString(name))
}

// AnimParams are the handles a controller publishes to.
type AnimParams struct {
	IsWalking AnimParam
	IsRunning AnimParam
	IsJumping AnimParam
	IsFalling AnimParam
	JumpCount AnimParam
}

func DefaultAnimParams() AnimParams {
	return AnimParams{
		IsWalking: ParamID("isWalking"),
		IsRunning: ParamID("isRunning"),
		IsJumping: ParamID("isJumping"),
		IsFalling: ParamID("isFalling"),
		JumpCount: ParamID("jumpCount"),
	}
}

type NopAnimator struct{}

func (NopAnimator) SetBool(AnimParam, bool) {}
func (NopAnimator) SetInt(AnimParam, int)   {}

// RecordingAnimator keeps the last value written to each parameter. The zero
// value is ready to use.
type RecordingAnimator struct {
	Bools  map[AnimParam]bool
	Ints   map[AnimParam]int
	Writes int
}

func NewRecordingAnimator() *RecordingAnimator {
	return &RecordingAnimator{
		Bools: make(map[AnimParam]bool),
		Ints:  make(map[AnimParam]int),
	}
}

func (r *RecordingAnimator) SetBool(param AnimParam, value bool) {
	if r.Bools == nil {
		r.Bools = make(map[AnimParam]bool)
	}
	r.Bools[param] = value
	r.Writes++
}

func (r *RecordingAnimator) SetInt(param AnimParam, value int) {
	if r.Ints == nil {
		r.Ints = make(map[AnimParam]int)
	}
	r.Ints[param] = value
	r.Writes++
}

func (r *RecordingAnimator) Bool(param AnimParam) bool {
	return r.Bools[param]
}

func (r *RecordingAnimator) Int(param AnimParam) int {
	return r.Ints[param]
}
