package locomotion

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	cases := []struct {
		name  string
		cam   Camera
		input mgl32.Vec3
		want  mgl32.Vec3
	}{
		{
			name:  "world_axes",
			cam:   WorldAxes,
			input: mgl32.Vec3{1, -0.05, 2},
			want:  mgl32.Vec3{1, -0.05, 2},
		},
		{
			name:  "camera_facing_plus_x",
			cam:   fixedCamera{forward: mgl32.Vec3{1, 0, 0}, right: mgl32.Vec3{0, 0, -1}},
			input: mgl32.Vec3{0, 3, 1},
			want:  mgl32.Vec3{1, 3, 0},
		},
		{
			name:  "pitched_camera_is_flattened",
			cam:   fixedCamera{forward: mgl32.Vec3{0, -0.8, 0.6}, right: mgl32.Vec3{2, 0, 0}},
			input: mgl32.Vec3{1, 0, 1},
			want:  mgl32.Vec3{1, 0, 1},
		},
		{
			name:  "camera_looking_straight_down",
			cam:   fixedCamera{forward: mgl32.Vec3{0, -1, 0}, right: mgl32.Vec3{1, 0, 0}},
			input: mgl32.Vec3{0.5, 1, 1},
			want:  mgl32.Vec3{0.5, 1, 0},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Project(c.input, c.cam)
			require.True(t, got.ApproxEqualThreshold(c.want, 1e-5), "got %v want %v", got, c.want)
		})
	}
}

func TestTurnToward(t *testing.T) {
	start := mgl32.QuatIdent()

	same := TurnToward(start, mgl32.Vec3{}, 1)
	require.Equal(t, start, same)

	full := TurnToward(start, mgl32.Vec3{-1, 0, 0}, 1)
	require.InDelta(t, -math32.Pi/2, Yaw(full), 1e-4)

	half := TurnToward(start, mgl32.Vec3{1, 0, 0}, 0.5)
	require.InDelta(t, math32.Pi/4, Yaw(half), 1e-4)

	clamped := TurnToward(start, mgl32.Vec3{1, 0, 0}, 3)
	require.InDelta(t, math32.Pi/2, Yaw(clamped), 1e-4)
}

func TestYawRotationFacesDirection(t *testing.T) {
	q, ok := YawRotation(mgl32.Vec3{0, 5, 0})
	require.False(t, ok)
	require.Equal(t, mgl32.QuatIdent(), q)

	q, ok = YawRotation(mgl32.Vec3{3, 0, 3})
	require.True(t, ok)
	f := q.Rotate(mgl32.Vec3{0, 0, 1})
	require.True(t, f.ApproxEqualThreshold(mgl32.Vec3{math32.Sqrt2 / 2, 0, math32.Sqrt2 / 2}, 1e-5))
}
