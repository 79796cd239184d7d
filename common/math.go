package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// LerpVec3 blends each component of a toward b.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t), Lerp(a[2], b[2], t)}
}

// WrapAngle maps a into [-Pi, Pi].
func WrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}
