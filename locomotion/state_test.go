package locomotion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestRegistryHoldsOneInstancePerState(t *testing.T) {
	r := NewRegistry()

	for id := StateID(0); id < stateCount; id++ {
		s, err := r.Get(id)
		require.NoError(t, err)
		require.Equal(t, id, s.ID())

		again, _ := r.Get(id)
		require.Same(t, s, again)
	}

	_, err := r.Get(stateCount)
	require.ErrorIs(t, err, ErrInvariant)
}

func TestRegistryComposites(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		id        StateID
		root      bool
		composite bool
	}{
		{StateIdle, false, false},
		{StateWalk, false, false},
		{StateRun, false, false},
		{StateGrounded, true, true},
		{StateJump, true, true},
		{StateFall, true, true},
	}

	for _, c := range cases {
		t.Run(c.id.String(), func(t *testing.T) {
			require.Equal(t, c.root, c.id.IsRoot())
			require.Equal(t, c.composite, r.Composite(c.id))
		})
	}
	require.Equal(t, "state(42)", StateID(42).String())
}

func TestMovementStateSelection(t *testing.T) {
	cases := []struct {
		name    string
		moving  bool
		running bool
		want    StateID
	}{
		{"still", false, false, StateIdle},
		{"run_held_still", false, true, StateIdle},
		{"walking", true, false, StateWalk},
		{"running", true, true, StateRun},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := &Context{IsMovementPressed: c.moving, IsRunPressed: c.running}
			require.Equal(t, c.want, movementState(ctx))
		})
	}
}

func TestContextInputChannels(t *testing.T) {
	ctx := newContext(DefaultConfig(), JumpProfile{})

	ctx.OnMove(mgl32.Vec2{0.5, 0})
	require.True(t, ctx.IsMovementPressed)
	ctx.OnMove(mgl32.Vec2{})
	require.False(t, ctx.IsMovementPressed)

	ctx.OnRun(true)
	require.True(t, ctx.IsRunPressed)
	ctx.OnRun(false)
	require.False(t, ctx.IsRunPressed)

	ctx.RequireNewJumpPress = true
	ctx.OnJump(false)
	require.True(t, ctx.RequireNewJumpPress, "release must not clear the latch")
	ctx.OnJump(true)
	require.False(t, ctx.RequireNewJumpPress)
	require.True(t, ctx.IsJumpPressed)

	ctx.RequireNewJumpPress = true
	ctx.OnJump(true)
	require.True(t, ctx.RequireNewJumpPress, "held button is not a new press")
}

func TestJumpResetTimer(t *testing.T) {
	cfg := DefaultConfig()
	anim := NewRecordingAnimator()
	ctx := newContext(cfg, JumpProfile{})
	ctx.Animator = anim
	ctx.JumpCount = 2

	ctx.scheduleJumpReset()
	due, ok := ctx.JumpResetDue()
	require.True(t, ok)
	require.InDelta(t, 0.5, due, 1e-9)

	ctx.now = 0.49
	require.False(t, ctx.fireJumpReset())
	require.Equal(t, 2, ctx.JumpCount)

	ctx.now = 0.5
	require.True(t, ctx.fireJumpReset())
	require.Equal(t, 0, ctx.JumpCount)
	require.Equal(t, 0, anim.Int(ctx.Params.JumpCount))
	require.False(t, ctx.fireJumpReset())

	ctx.JumpCount = 1
	ctx.scheduleJumpReset()
	ctx.cancelJumpReset()
	ctx.now = 10
	require.False(t, ctx.fireJumpReset())
	require.Equal(t, 1, ctx.JumpCount)
}

func TestParamIDsAreStable(t *testing.T) {
	p := DefaultAnimParams()
	require.Equal(t, ParamID("isWalking"), p.IsWalking)
	require.NotEqual(t, p.IsWalking, p.IsRunning)
	require.NotEqual(t, p.IsJumping, p.JumpCount)
}

func TestRecordingAnimatorZeroValue(t *testing.T) {
	var anim RecordingAnimator
	params := DefaultAnimParams()

	anim.SetBool(params.IsJumping, true)
	anim.SetInt(params.JumpCount, 2)
	require.True(t, anim.Bool(params.IsJumping))
	require.Equal(t, 2, anim.Int(params.JumpCount))
	require.Equal(t, 2, anim.Writes)
	require.False(t, anim.Bool(params.IsFalling))
}
