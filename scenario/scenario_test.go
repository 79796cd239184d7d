package scenario

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/stretchr/testify/require"
)

type rig struct {
	machine *locomotion.Machine
	arena   *physics.Arena
	orbit   *camera.Orbit
}

func newRig(t *testing.T, cfg locomotion.Config, arenaCfg physics.ArenaConfig) rig {
	t.Helper()
	arena, err := physics.NewArena(arenaCfg)
	require.NoError(t, err)
	orbit := camera.NewOrbit(0, 0.4, 8)
	m, err := locomotion.NewMachine(cfg, arena, locomotion.WithCamera(orbit))
	require.NoError(t, err)
	return rig{machine: m, arena: arena, orbit: orbit}
}

func (r rig) run(t *testing.T, s *Scenario) *Result {
	t.Helper()
	res, err := Run(s, r.machine, r.arena, r.orbit)
	require.NoError(t, err)
	require.Len(t, res.Samples, s.Frames)
	return res
}

func TestCompile(t *testing.T) {
	src := `
dt := 0.02
frames := 50
yaw := 1.5
start := [1, 2, 3]
events := [
	{frame: 10, jump: false},
	{frame: 2, move: [0.5, 1], run: true},
	{frame: 10, yaw: 3}
]
`
	s, err := Compile("inline.tengo", []byte(src))
	require.NoError(t, err)
	require.Equal(t, "inline", s.Name)
	require.InDelta(t, 0.02, s.DT, 1e-7)
	require.Equal(t, 50, s.Frames)
	require.InDelta(t, 1.5, s.Yaw, 1e-7)
	require.Equal(t, &mgl32.Vec3{1, 2, 3}, s.Start)

	require.Len(t, s.Events, 3)
	require.Equal(t, 2, s.Events[0].Frame)
	require.Equal(t, mgl32.Vec2{0.5, 1}, *s.Events[0].Move)
	require.True(t, *s.Events[0].Run)
	require.Nil(t, s.Events[0].Jump)

	require.Equal(t, 10, s.Events[1].Frame)
	require.False(t, *s.Events[1].Jump)
	require.Equal(t, float32(3), *s.Events[2].Yaw)
}

func TestCompileDefaults(t *testing.T) {
	s, err := Compile("empty", []byte(`x := 1`))
	require.NoError(t, err)
	require.Equal(t, float32(defaultDT), s.DT)
	require.Equal(t, defaultFrames, s.Frames)
	require.Nil(t, s.Start)
	require.Empty(t, s.Events)
}

func TestCompileRejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"zero_dt", `dt := 0`},
		{"negative_frames", `frames := -5`},
		{"events_not_array", `events := {frame: 1}`},
		{"event_not_map", `events := [1]`},
		{"missing_frame", `events := [{jump: true}]`},
		{"negative_frame", `events := [{frame: -1, jump: true}]`},
		{"unknown_key", `events := [{frame: 1, crouch: true}]`},
		{"short_move", `events := [{frame: 1, move: [1]}]`},
		{"bad_start", `start := [1, 2]`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Compile(c.name, []byte(c.src))
			require.ErrorIs(t, err, ErrInvalidScenario)
		})
	}

	_, err := Compile("syntax", []byte(`events := [`))
	require.Error(t, err)
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	names, err := prefabs.Scripts()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, err := Load(name)
			require.NoError(t, err)
		})
	}
}

func TestRunIdle(t *testing.T) {
	s, err := Load("idle")
	require.NoError(t, err)

	r := newRig(t, locomotion.DefaultConfig(), physics.DefaultArenaConfig())
	res := r.run(t, s)

	for _, sample := range res.Samples {
		require.Equal(t, locomotion.StateGrounded, sample.Root)
		require.True(t, sample.HasSub)
		require.Equal(t, locomotion.StateIdle, sample.Sub)
		require.Equal(t, mgl32.Vec3{0, -0.05, 0}, sample.Applied)
		require.True(t, sample.Grounded)
	}
	require.Zero(t, res.Summary.Transitions)
	require.Zero(t, res.Summary.Distance)
	require.Equal(t, mgl32.Vec3{}, res.Summary.Final)
}

func TestRunWalkRun(t *testing.T) {
	s, err := Load("walk_run")
	require.NoError(t, err)

	r := newRig(t, locomotion.DefaultConfig(), physics.DefaultArenaConfig())
	res := r.run(t, s)

	require.Equal(t, locomotion.StateWalk, res.Samples[30].Sub)
	require.Equal(t, locomotion.StateRun, res.Samples[100].Sub)
	require.Equal(t, locomotion.StateWalk, res.Samples[170].Sub)
	require.Equal(t, locomotion.StateIdle, res.Samples[230].Sub)

	// 60 walking frames, 90 running frames, then 49 walking frames.
	require.InDelta(t, 1+6+49.0/60, res.Summary.Final[2], 0.05)
	require.InDelta(t, 0, res.Summary.Final[0], 1e-3)
	require.Zero(t, res.Summary.Jumps)
}

func TestRunTripleJump(t *testing.T) {
	s, err := Load("triple_jump")
	require.NoError(t, err)

	anim := locomotion.NewRecordingAnimator()
	arena, err := physics.NewArena(physics.DefaultArenaConfig())
	require.NoError(t, err)
	m, err := locomotion.NewMachine(locomotion.DefaultConfig(), arena,
		locomotion.WithAnimator(anim, locomotion.DefaultAnimParams()))
	require.NoError(t, err)

	res, err := Run(s, m, arena, nil)
	require.NoError(t, err)

	sum := res.Summary
	require.Equal(t, 3, sum.Jumps)
	require.Equal(t, 3, sum.Landings)
	require.Equal(t, 3, sum.MaxJumpCount)
	require.Greater(t, sum.Apex, float32(6))

	last := res.Samples[len(res.Samples)-1]
	require.Equal(t, locomotion.StateGrounded, last.Root)
	require.Equal(t, 0, last.JumpCount)
	require.Equal(t, 0, anim.Int(locomotion.DefaultAnimParams().JumpCount))

	stage := 0
	for _, sample := range res.Samples {
		if sample.Root == locomotion.StateJump && sample.JumpCount != stage {
			require.Equal(t, stage+1, sample.JumpCount, "chain must advance one stage per jump")
			stage = sample.JumpCount
		}
	}
	require.Equal(t, 3, stage)
}

func TestRunLedgeFall(t *testing.T) {
	s, err := Load("ledge_fall")
	require.NoError(t, err)

	charSpec, err := prefabs.LoadCharacterSpec("")
	require.NoError(t, err)
	cfg, err := charSpec.Config()
	require.NoError(t, err)
	arenaSpec, err := prefabs.LoadArenaSpec("")
	require.NoError(t, err)

	r := newRig(t, cfg, arenaSpec.Config())
	res := r.run(t, s)

	fell := false
	for _, sample := range res.Samples {
		if sample.Root == locomotion.StateFall {
			fell = true
			require.Zero(t, sample.JumpCount)
		}
	}
	require.True(t, fell)
	require.Zero(t, res.Summary.Jumps)
	require.Equal(t, 1, res.Summary.Landings)

	last := res.Samples[len(res.Samples)-1]
	require.Equal(t, locomotion.StateGrounded, last.Root)
	require.Equal(t, float32(0), last.Position[1])
	require.Greater(t, last.Position[0], float32(-4.5))
}

func TestRunOrbitTurn(t *testing.T) {
	s, err := Load("orbit_turn")
	require.NoError(t, err)

	r := newRig(t, locomotion.DefaultConfig(), physics.DefaultArenaConfig())
	res := r.run(t, s)

	require.InDelta(t, 0, res.Samples[50].Heading, 1e-3)
	require.InDelta(t, math32.Pi/2, r.orbit.Yaw, 1e-5)
	require.InDelta(t, math32.Pi/2, res.Samples[len(res.Samples)-1].Heading, 1e-2)
}

type staticBody struct{}

func (staticBody) Move(mgl32.Vec3)      {}
func (staticBody) IsGrounded() bool     { return true }
func (staticBody) Position() mgl32.Vec3 { return mgl32.Vec3{} }

func TestRunRequiresTeleportForStart(t *testing.T) {
	m, err := locomotion.NewMachine(locomotion.DefaultConfig(), staticBody{})
	require.NoError(t, err)

	s := &Scenario{Name: "start", DT: defaultDT, Frames: 1, Start: &mgl32.Vec3{1, 0, 0}}
	_, err = Run(s, m, staticBody{}, nil)
	require.ErrorIs(t, err, ErrInvalidScenario)

	s.Start = nil
	res, err := Run(s, m, staticBody{}, nil)
	require.NoError(t, err)
	require.Len(t, res.Samples, 1)
}
