package locomotion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Machine drives one character. It owns the context and the active root and
// sub-state, and hands the resulting velocity to the mover once per frame.
type Machine struct {
	ctx      *Context
	registry *Registry
	root     State
	sub      State

	mover          Mover
	camera         Camera
	heading        mgl32.Quat
	rotationFactor float32

	log   zerolog.Logger
	frame uint64
}

type Option func(m *Machine)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Machine) {
		m.log = logger
	}
}

func WithCamera(cam Camera) Option {
	return func(m *Machine) {
		if cam != nil {
			m.camera = cam
		}
	}
}

func WithAnimator(anim Animator, params AnimParams) Option {
	return func(m *Machine) {
		if anim != nil {
			m.ctx.Animator = anim
		}
		m.ctx.Params = params
	}
}

func WithHeading(q mgl32.Quat) Option {
	return func(m *Machine) {
		m.heading = q.Normalize()
	}
}

// NewMachine builds the jump tables from cfg and starts in the grounded state.
func NewMachine(cfg Config, mover Mover, opts ...Option) (*Machine, error) {
	if mover == nil {
		return nil, fmt.Errorf("%w: nil mover", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	profile, err := NewJumpProfile(cfg.MaxJumpHeight, cfg.MaxJumpTime)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		ctx:            newContext(cfg, profile),
		registry:       NewRegistry(),
		mover:          mover,
		camera:         WorldAxes,
		heading:        mgl32.QuatIdent(),
		rotationFactor: cfg.RotationFactor,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.ctx.Grounded = mover.IsGrounded()
	if err := m.enterRoot(StateGrounded); err != nil {
		return nil, fmt.Errorf("locomotion: enter initial state: %w", err)
	}
	return m, nil
}

// Context returns the blackboard. Input collaborators call its On* methods.
func (m *Machine) Context() *Context {
	return m.ctx
}

// Root returns the active root state.
func (m *Machine) Root() StateID {
	return m.root.ID()
}

// Sub returns the active sub-state of a composite root.
func (m *Machine) Sub() (StateID, bool) {
	if m.sub == nil {
		return 0, false
	}
	return m.sub.ID(), true
}

func (m *Machine) Heading() mgl32.Quat {
	return m.heading
}

func (m *Machine) Frame() uint64 {
	return m.frame
}

func (m *Machine) SetCamera(cam Camera) {
	if cam != nil {
		m.camera = cam
	}
}

// Update advances one frame of dt seconds: jump reset timer, heading, states,
// then the mover.
func (m *Machine) Update(dt float32) error {
	if !(dt >= 0) {
		return fmt.Errorf("%w: frame delta %v", ErrInvariant, dt)
	}
	m.frame++
	m.ctx.now += float64(dt)
	// A reset due this frame fires before the states run, so a press on the
	// same frame starts a new chain.
	if m.ctx.fireJumpReset() {
		m.log.Debug().Uint64("frame", m.frame).Msg("jump chain reset")
	}
	m.ctx.Grounded = m.mover.IsGrounded()

	m.rotate(dt)
	if err := m.step(dt); err != nil {
		return err
	}

	world := Project(m.ctx.AppliedMovement, m.camera)
	m.mover.Move(world.Mul(dt))
	return nil
}

func (m *Machine) rotate(dt float32) {
	if !m.ctx.IsMovementPressed {
		return
	}
	in := m.ctx.MovementInput
	dir := Project(mgl32.Vec3{in[0], 0, in[1]}, m.camera)
	m.heading = TurnToward(m.heading, dir, m.rotationFactor*dt)
}

func (m *Machine) step(dt float32) error {
	if err := m.checkInvariants(); err != nil {
		return err
	}

	if m.sub != nil {
		if err := m.sub.Update(m.ctx, dt); err != nil {
			return err
		}
		if next := m.sub.Next(m.ctx); next != m.sub.ID() {
			if err := m.switchSub(next); err != nil {
				return err
			}
		}
	}

	if err := m.root.Update(m.ctx, dt); err != nil {
		return err
	}
	if next := m.root.Next(m.ctx); next != m.root.ID() {
		return m.switchRoot(next)
	}
	return nil
}

func (m *Machine) checkInvariants() error {
	if m.root == nil || !m.root.ID().IsRoot() {
		return fmt.Errorf("%w: active root is not a root state", ErrInvariant)
	}
	if m.registry.Composite(m.root.ID()) {
		if m.sub == nil {
			return fmt.Errorf("%w: %s has no sub-state", ErrInvariant, m.root.ID())
		}
		if m.sub.ID().IsRoot() {
			return fmt.Errorf("%w: %s active as sub-state of %s", ErrInvariant, m.sub.ID(), m.root.ID())
		}
	}
	return m.ctx.validate()
}

func (m *Machine) switchSub(next StateID) error {
	if next.IsRoot() {
		return fmt.Errorf("%w: %s requested as sub-state", ErrInvariant, next)
	}
	s, err := m.registry.Get(next)
	if err != nil {
		return err
	}
	prev := m.sub.ID()
	m.sub.Exit(m.ctx)
	m.sub = s
	m.log.Debug().Uint64("frame", m.frame).Stringer("from", prev).Stringer("to", next).Msg("sub-state transition")
	return m.sub.Enter(m.ctx)
}

func (m *Machine) switchRoot(next StateID) error {
	if !next.IsRoot() {
		return fmt.Errorf("%w: %s requested as root", ErrInvariant, next)
	}
	prev := m.root.ID()
	if m.sub != nil {
		m.sub.Exit(m.ctx)
	}
	m.root.Exit(m.ctx)

	if err := m.enterRoot(next); err != nil {
		return err
	}
	m.log.Debug().
		Uint64("frame", m.frame).
		Stringer("from", prev).
		Stringer("to", next).
		Int("jump_count", m.ctx.JumpCount).
		Msg("root transition")
	if next == StateJump {
		m.log.Debug().
			Uint64("frame", m.frame).
			Int("stage", m.ctx.JumpCount).
			Float32("velocity", m.ctx.CurrentMovement[1]).
			Msg("jump launch")
	}
	return nil
}

// enterRoot picks the sub-state of a composite root before entering the root
// itself, so a jump launches with its movement state already chosen.
func (m *Machine) enterRoot(id StateID) error {
	root, err := m.registry.Get(id)
	if err != nil {
		return err
	}
	m.root = root
	m.sub = nil

	if m.registry.Composite(id) {
		sub, err := m.registry.Get(movementState(m.ctx))
		if err != nil {
			return err
		}
		m.sub = sub
		if err := m.sub.Enter(m.ctx); err != nil {
			return err
		}
	}
	return m.root.Enter(m.ctx)
}
