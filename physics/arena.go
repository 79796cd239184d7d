package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

var ErrInvalidArena = errors.New("physics: invalid arena")

// Rect is an axis-aligned region on the ground plane.
type Rect struct {
	MinX, MinZ float32
	MaxX, MaxZ float32
}

func (r Rect) Contains(x, z float32) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

// Platform is a raised block. The character stands on Top and is blocked
// horizontally when Top is more than a step above its feet.
type Platform struct {
	Rect
	Top float32
}

type ArenaConfig struct {
	HalfWidth float32
	HalfDepth float32
	Floor     float32
	// Radius of the character footprint.
	Radius     float32
	StepOffset float32
	// Step is the simulation step used to turn a displacement into velocity.
	Step float64

	Start     mgl32.Vec3
	Obstacles []Rect
	Platforms []Platform
}

func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		HalfWidth:  12,
		HalfDepth:  12,
		Radius:     0.5,
		StepOffset: 0.3,
		Step:       1.0 / 60.0,
	}
}

func (c ArenaConfig) Validate() error {
	if c.HalfWidth <= 0 || c.HalfDepth <= 0 {
		return fmt.Errorf("%w: bounds %vx%v", ErrInvalidArena, c.HalfWidth, c.HalfDepth)
	}
	if c.Radius <= 0 || c.Radius >= c.HalfWidth || c.Radius >= c.HalfDepth {
		return fmt.Errorf("%w: radius %v", ErrInvalidArena, c.Radius)
	}
	if c.StepOffset < 0 {
		return fmt.Errorf("%w: step offset %v", ErrInvalidArena, c.StepOffset)
	}
	if !(c.Step > 0) {
		return fmt.Errorf("%w: step %v", ErrInvalidArena, c.Step)
	}
	return nil
}

// Arena moves a character capsule through a walled yard. Chipmunk resolves
// the ground plane (world X/Z map to space X/Y); height is tracked here
// against the floor and platform tops.
type Arena struct {
	cfg   ArenaConfig
	space *cp.Space
	body  *cp.Body
	shape *cp.Shape

	height   float32
	grounded bool
	moves    int
}

func NewArena(cfg ArenaConfig) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	space := cp.NewSpace()
	space.Iterations = 20

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: float64(cfg.Start[0]), Y: float64(cfg.Start[2])})
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, 1, dt)
	})
	shape := cp.NewCircle(body, float64(cfg.Radius), cp.Vector{})
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	space.AddBody(body)
	space.AddShape(shape)

	a := &Arena{
		cfg:    cfg,
		space:  space,
		body:   body,
		shape:  shape,
		height: cfg.Start[1],
	}
	a.addWalls()
	for _, o := range cfg.Obstacles {
		a.addSolid(o)
	}

	if ground := a.groundAt(cfg.Start[0], cfg.Start[2], a.height); a.height <= ground {
		a.height = ground
		a.grounded = true
	}
	return a, nil
}

func (a *Arena) addWalls() {
	w := float64(a.cfg.HalfWidth)
	d := float64(a.cfg.HalfDepth)
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: -w, Y: -d}, b: cp.Vector{X: w, Y: -d}},
		{a: cp.Vector{X: -w, Y: d}, b: cp.Vector{X: w, Y: d}},
		{a: cp.Vector{X: -w, Y: -d}, b: cp.Vector{X: -w, Y: d}},
		{a: cp.Vector{X: w, Y: -d}, b: cp.Vector{X: w, Y: d}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(a.space.StaticBody, seg.a, seg.b, 0.1)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		a.space.AddShape(shape)
	}
}

func (a *Arena) addSolid(r Rect) {
	bb := cp.BB{L: float64(r.MinX), B: float64(r.MinZ), R: float64(r.MaxX), T: float64(r.MaxZ)}
	shape := cp.NewBox2(a.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeSolid)
	a.space.AddShape(shape)
}

// Move applies displacement: the planar part through the space, the vertical
// part against the ground under the new position.
func (a *Arena) Move(d mgl32.Vec3) {
	a.moves++
	prev := a.body.Position()

	step := a.cfg.Step
	a.body.SetVelocity(float64(d[0])/step, float64(d[2])/step)
	a.space.Step(step)
	a.body.SetVelocity(0, 0)

	pos := a.body.Position()
	if a.blocked(float32(pos.X), float32(pos.Y)) {
		a.body.SetPosition(prev)
		pos = prev
	}

	from := a.height
	a.height += d[1]
	ground := a.groundAt(float32(pos.X), float32(pos.Y), max(from, a.height))
	if a.height <= ground {
		a.height = ground
		a.grounded = true
	} else {
		a.grounded = false
	}
}

func (a *Arena) IsGrounded() bool {
	return a.grounded
}

// Position returns the character's feet in world space.
func (a *Arena) Position() mgl32.Vec3 {
	p := a.body.Position()
	return mgl32.Vec3{float32(p.X), a.height, float32(p.Y)}
}

// Teleport places the character, snapping it to the ground when below it.
func (a *Arena) Teleport(p mgl32.Vec3) {
	a.body.SetPosition(cp.Vector{X: float64(p[0]), Y: float64(p[2])})
	a.body.SetVelocity(0, 0)
	a.height = p[1]
	ground := a.groundAt(p[0], p[2], a.height)
	a.grounded = a.height <= ground
	if a.grounded {
		a.height = ground
	}
}

func (a *Arena) Config() ArenaConfig {
	return a.cfg
}

func (a *Arena) Moves() int {
	return a.moves
}

// GroundAt returns the highest surface under (x, z) reachable from feet height y.
func (a *Arena) GroundAt(x, z, y float32) float32 {
	return a.groundAt(x, z, y)
}

func (a *Arena) groundAt(x, z, y float32) float32 {
	ground := a.cfg.Floor
	for _, p := range a.cfg.Platforms {
		if !a.overlaps(p.Rect, x, z) {
			continue
		}
		if p.Top <= y+a.cfg.StepOffset && p.Top > ground {
			ground = p.Top
		}
	}
	return ground
}

func (a *Arena) blocked(x, z float32) bool {
	for _, p := range a.cfg.Platforms {
		if p.Top > a.height+a.cfg.StepOffset && p.Contains(x, z) {
			return true
		}
	}
	return false
}

// overlaps reports whether any part of the footprint at (x, z) is over r.
func (a *Arena) overlaps(r Rect, x, z float32) bool {
	rad := a.cfg.Radius
	return x+rad > r.MinX && x-rad < r.MaxX && z+rad > r.MinZ && z-rad < r.MaxZ
}
