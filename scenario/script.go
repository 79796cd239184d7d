package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/locomotion/prefabs"
)

var ErrInvalidScenario = errors.New("scenario: invalid script")

const (
	defaultDT     = 1.0 / 60.0
	defaultFrames = 120
	maxFrames     = 1 << 20
)

// Event changes the input on a given frame. Nil fields leave that input as is.
type Event struct {
	Frame int
	Move  *mgl32.Vec2
	Jump  *bool
	Run   *bool
	Yaw   *float32
}

// Scenario is a compiled input timeline.
type Scenario struct {
	Name   string
	DT     float32
	Frames int
	Yaw    float32
	Start  *mgl32.Vec3
	Events []Event
}

// Load reads a script through prefabs, so disk copies override embedded ones.
func Load(name string) (*Scenario, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// Compile runs the script and reads its globals: dt, frames, yaw, start and
// events. Events are sorted by frame, keeping script order within a frame.
func Compile(name string, src []byte) (*Scenario, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("scenario: run %s: %w", name, err)
	}

	s := &Scenario{
		Name:   strings.TrimSuffix(name, ".tengo"),
		DT:     defaultDT,
		Frames: defaultFrames,
	}
	if compiled.IsDefined("dt") {
		s.DT = float32(compiled.Get("dt").Float())
	}
	if compiled.IsDefined("frames") {
		s.Frames = compiled.Get("frames").Int()
	}
	if compiled.IsDefined("yaw") {
		s.Yaw = float32(compiled.Get("yaw").Float())
	}
	if !(s.DT > 0) {
		return nil, fmt.Errorf("%w: %s: dt %v", ErrInvalidScenario, name, s.DT)
	}
	if s.Frames <= 0 || s.Frames > maxFrames {
		return nil, fmt.Errorf("%w: %s: frames %d", ErrInvalidScenario, name, s.Frames)
	}

	if compiled.IsDefined("start") {
		v, err := vec3(compiled.Get("start").Object())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: start: %v", ErrInvalidScenario, name, err)
		}
		s.Start = &v
	}

	if compiled.IsDefined("events") {
		events, err := parseEvents(compiled.Get("events").Object())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, name, err)
		}
		s.Events = events
	}
	return s, nil
}

func parseEvents(obj tengo.Object) ([]Event, error) {
	arr, ok := obj.(*tengo.Array)
	if !ok {
		return nil, fmt.Errorf("events must be an array, got %s", obj.TypeName())
	}

	events := make([]Event, 0, len(arr.Value))
	for i, item := range arr.Value {
		fields, ok := mapValue(item)
		if !ok {
			return nil, fmt.Errorf("event %d: expected a map, got %s", i, item.TypeName())
		}
		ev, err := parseEvent(fields)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Frame < events[j].Frame
	})
	return events, nil
}

func parseEvent(fields map[string]tengo.Object) (Event, error) {
	var ev Event

	frame, ok := fields["frame"]
	if !ok {
		return ev, errors.New("missing frame")
	}
	f, ok := tengo.ToInt(frame)
	if !ok || f < 0 {
		return ev, fmt.Errorf("bad frame %s", frame.String())
	}
	ev.Frame = f

	for key, val := range fields {
		switch key {
		case "frame":
		case "move":
			v, err := vec2(val)
			if err != nil {
				return ev, fmt.Errorf("move: %w", err)
			}
			ev.Move = &v
		case "jump":
			b, ok := tengo.ToBool(val)
			if !ok {
				return ev, fmt.Errorf("jump: bad value %s", val.String())
			}
			ev.Jump = &b
		case "run":
			b, ok := tengo.ToBool(val)
			if !ok {
				return ev, fmt.Errorf("run: bad value %s", val.String())
			}
			ev.Run = &b
		case "yaw":
			y, ok := tengo.ToFloat64(val)
			if !ok {
				return ev, fmt.Errorf("yaw: bad value %s", val.String())
			}
			f := float32(y)
			ev.Yaw = &f
		default:
			return ev, fmt.Errorf("unknown key %q", key)
		}
	}
	return ev, nil
}

func mapValue(obj tengo.Object) (map[string]tengo.Object, bool) {
	switch v := obj.(type) {
	case *tengo.Map:
		return v.Value, true
	case *tengo.ImmutableMap:
		return v.Value, true
	default:
		return nil, false
	}
}

func floats(obj tengo.Object, n int) ([]float32, error) {
	arr, ok := obj.(*tengo.Array)
	if !ok || len(arr.Value) != n {
		return nil, fmt.Errorf("expected %d numbers, got %s", n, obj.String())
	}
	out := make([]float32, n)
	for i, item := range arr.Value {
		f, ok := tengo.ToFloat64(item)
		if !ok {
			return nil, fmt.Errorf("element %d is %s", i, item.TypeName())
		}
		out[i] = float32(f)
	}
	return out, nil
}

func vec2(obj tengo.Object) (mgl32.Vec2, error) {
	f, err := floats(obj, 2)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	return mgl32.Vec2{f[0], f[1]}, nil
}

func vec3(obj tengo.Object) (mgl32.Vec3, error) {
	f, err := floats(obj, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}
