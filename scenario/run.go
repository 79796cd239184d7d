package scenario

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/locomotion"
)

// Body is a mover that can report where it is.
type Body interface {
	locomotion.Mover
	Position() mgl32.Vec3
}

// Teleporter is implemented by bodies that honor a scenario start position.
type Teleporter interface {
	Teleport(p mgl32.Vec3)
}

// Sample is the controller state after one frame.
type Sample struct {
	Frame     int
	Time      float64
	Root      locomotion.StateID
	Sub       locomotion.StateID
	HasSub    bool
	JumpCount int
	Applied   mgl32.Vec3
	Grounded  bool
	Position  mgl32.Vec3
	Heading   float32
}

type Summary struct {
	Frames      int
	Jumps       int
	Landings    int
	Transitions int
	// MaxJumpCount is the deepest chain stage reached.
	MaxJumpCount int
	// Apex is the highest position reached above the start.
	Apex     float32
	Distance float32
	Final    mgl32.Vec3
}

type Result struct {
	Samples []Sample
	Summary Summary
}

// Run replays s against m. The machine must drive body and use cam.
func Run(s *Scenario, m *locomotion.Machine, body Body, cam *camera.Orbit) (*Result, error) {
	if s == nil || m == nil || body == nil {
		return nil, fmt.Errorf("%w: nil scenario, machine or body", ErrInvalidScenario)
	}
	if s.Start != nil {
		t, ok := body.(Teleporter)
		if !ok {
			return nil, fmt.Errorf("%w: %s sets a start but the body cannot teleport", ErrInvalidScenario, s.Name)
		}
		t.Teleport(*s.Start)
	}
	if cam != nil {
		cam.Yaw = s.Yaw
		cam.Snap(body.Position())
		m.SetCamera(cam)
	}

	ctx := m.Context()
	res := &Result{Samples: make([]Sample, 0, s.Frames)}
	sum := &res.Summary

	origin := body.Position()
	last := origin
	prevRoot := m.Root()
	next := 0

	for frame := 0; frame < s.Frames; frame++ {
		for next < len(s.Events) && s.Events[next].Frame <= frame {
			apply(s.Events[next], ctx, cam)
			next++
		}

		if err := m.Update(s.DT); err != nil {
			return res, fmt.Errorf("scenario: %s frame %d: %w", s.Name, frame, err)
		}
		pos := body.Position()
		if cam != nil {
			cam.Follow(pos)
		}

		root := m.Root()
		sub, hasSub := m.Sub()
		res.Samples = append(res.Samples, Sample{
			Frame:     frame,
			Time:      ctx.Now(),
			Root:      root,
			Sub:       sub,
			HasSub:    hasSub,
			JumpCount: ctx.JumpCount,
			Applied:   ctx.AppliedMovement,
			Grounded:  ctx.Grounded,
			Position:  pos,
			Heading:   locomotion.Yaw(m.Heading()),
		})

		if root != prevRoot {
			sum.Transitions++
			switch root {
			case locomotion.StateJump:
				sum.Jumps++
			case locomotion.StateGrounded:
				sum.Landings++
			}
		}
		prevRoot = root

		sum.MaxJumpCount = max(sum.MaxJumpCount, ctx.JumpCount)
		sum.Apex = max(sum.Apex, pos[1]-origin[1])
		d := pos.Sub(last)
		d[1] = 0
		sum.Distance += d.Len()
		last = pos
	}

	sum.Frames = s.Frames
	sum.Final = last
	return res, nil
}

func apply(ev Event, ctx *locomotion.Context, cam *camera.Orbit) {
	if ev.Move != nil {
		ctx.OnMove(*ev.Move)
	}
	if ev.Run != nil {
		ctx.OnRun(*ev.Run)
	}
	if ev.Jump != nil {
		ctx.OnJump(*ev.Jump)
	}
	if ev.Yaw != nil && cam != nil {
		cam.Yaw = *ev.Yaw
	}
}
