package locomotion

import (
	"fmt"
	"strconv"
)

// StateID tags every state the controller can be in.
type StateID uint8

const (
	StateIdle StateID = iota
	StateWalk
	StateRun
	StateGrounded
	StateJump
	StateFall
	stateCount
)

var stateNames = [stateCount]string{
	StateIdle:     "idle",
	StateWalk:     "walk",
	StateRun:      "run",
	StateGrounded: "grounded",
	StateJump:     "jump",
	StateFall:     "fall",
}

func (s StateID) String() string {
	if s < stateCount {
		return stateNames[s]
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// IsRoot reports whether s is a top-level mode.
func (s StateID) IsRoot() bool {
	return s == StateGrounded || s == StateJump || s == StateFall
}

// State is one node of the machine. Next is a predicate over the context and
// returns the state's own ID to stay put.
type State interface {
	ID() StateID
	Enter(ctx *Context) error
	Update(ctx *Context, dt float32) error
	Exit(ctx *Context)
	Next(ctx *Context) StateID
}

// Registry holds exactly one instance of each state, indexed by tag.
type Registry struct {
	states    [stateCount]State
	composite [stateCount]bool
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.register(&idleState{}, false)
	r.register(&walkState{}, false)
	r.register(&runState{}, false)
	r.register(&groundedState{}, true)
	r.register(&jumpState{}, true)
	r.register(&fallState{}, true)
	return r
}

func (r *Registry) register(s State, composite bool) {
	r.states[s.ID()] = s
	r.composite[s.ID()] = composite
}

// Get returns the registered instance for id.
func (r *Registry) Get(id StateID) (State, error) {
	if id >= stateCount || r.states[id] == nil {
		return nil, fmt.Errorf("%w: unknown state %s", ErrInvariant, id)
	}
	return r.states[id], nil
}

// Composite reports whether id owns a movement sub-state.
func (r *Registry) Composite(id StateID) bool {
	return id < stateCount && r.composite[id]
}

// movementState picks the Idle/Walk/Run leaf for the current flags. Run held
// without movement is Idle, matching the animation flags, rather than Run.
func movementState(ctx *Context) StateID {
	switch {
	case !ctx.IsMovementPressed:
		return StateIdle
	case ctx.IsRunPressed:
		return StateRun
	default:
		return StateWalk
	}
}
