package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/locomotion/common"
)

const (
	minPitch = -1.2
	maxPitch = 1.2
)

// Orbit is a third-person rig circling a target. Yaw 0 looks down +Z.
type Orbit struct {
	Yaw      float32
	Pitch    float32
	Distance float32
	// TurnSpeed is in radians per second.
	TurnSpeed float32
	// Smoothness blends the focus point toward the target each frame.
	Smoothness float32

	focus mgl32.Vec3
}

func NewOrbit(yaw, pitch, distance float32) *Orbit {
	return &Orbit{
		Yaw:        yaw,
		Pitch:      mgl32.Clamp(pitch, minPitch, maxPitch),
		Distance:   distance,
		TurnSpeed:  2,
		Smoothness: 0.15,
	}
}

// Forward is the view direction, pitched down for positive Pitch.
func (o *Orbit) Forward() mgl32.Vec3 {
	sy, cy := math32.Sincos(o.Yaw)
	sp, cp := math32.Sincos(o.Pitch)
	return mgl32.Vec3{sy * cp, -sp, cy * cp}
}

func (o *Orbit) Right() mgl32.Vec3 {
	sy, cy := math32.Sincos(o.Yaw)
	return mgl32.Vec3{cy, 0, -sy}
}

// Rotate turns the rig by input axes in [-1,1] scaled by TurnSpeed.
func (o *Orbit) Rotate(yawAxis, pitchAxis, dt float32) {
	o.Yaw = common.WrapAngle(o.Yaw + yawAxis*o.TurnSpeed*dt)
	o.Pitch = mgl32.Clamp(o.Pitch+pitchAxis*o.TurnSpeed*dt, minPitch, maxPitch)
}

// Follow eases the focus point toward target.
func (o *Orbit) Follow(target mgl32.Vec3) {
	o.focus = common.LerpVec3(o.focus, target, mgl32.Clamp(o.Smoothness, 0, 1))
}

// Snap moves the focus point onto target immediately.
func (o *Orbit) Snap(target mgl32.Vec3) {
	o.focus = target
}

func (o *Orbit) Focus() mgl32.Vec3 {
	return o.focus
}

// Eye is the camera position behind the focus point.
func (o *Orbit) Eye() mgl32.Vec3 {
	return o.focus.Sub(o.Forward().Mul(o.Distance))
}
