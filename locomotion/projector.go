package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const planarEpsilon = 1e-6

var worldUp = mgl32.Vec3{0, 1, 0}

// WorldAxes is a camera looking down +Z with +X to its right.
var WorldAxes Camera = worldAxes{}

type worldAxes struct{}

func (worldAxes) Forward() mgl32.Vec3 { return mgl32.Vec3{0, 0, 1} }
func (worldAxes) Right() mgl32.Vec3   { return mgl32.Vec3{1, 0, 0} }

// Project maps v from camera space into world space. X follows the camera's
// flattened right vector, Z its flattened forward vector, and Y is kept as is.
func Project(v mgl32.Vec3, cam Camera) mgl32.Vec3 {
	forward := flatten(cam.Forward())
	right := flatten(cam.Right())

	out := forward.Mul(v[2]).Add(right.Mul(v[0]))
	out[1] = v[1]
	return out
}

// YawRotation returns the heading that faces dir on the ground plane.
func YawRotation(dir mgl32.Vec3) (mgl32.Quat, bool) {
	if dir[0]*dir[0]+dir[2]*dir[2] < planarEpsilon {
		return mgl32.QuatIdent(), false
	}
	return mgl32.QuatRotate(math32.Atan2(dir[0], dir[2]), worldUp), true
}

// TurnToward slerps current toward the heading facing dir by fraction t.
func TurnToward(current mgl32.Quat, dir mgl32.Vec3, t float32) mgl32.Quat {
	target, ok := YawRotation(dir)
	if !ok {
		return current
	}
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return mgl32.QuatSlerp(current, target, mgl32.Clamp(t, 0, 1)).Normalize()
}

// Yaw returns the heading angle in radians, zero facing +Z.
func Yaw(q mgl32.Quat) float32 {
	f := q.Rotate(mgl32.Vec3{0, 0, 1})
	return math32.Atan2(f[0], f[2])
}

func flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	l := v.Len()
	if l < planarEpsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
