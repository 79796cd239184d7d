package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/physics"
	"gopkg.in/yaml.v3"
)

const (
	CharacterFile = "character.yaml"
	ArenaFile     = "arena.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CharacterSpec tunes a character's locomotion. Omitted numeric fields keep
// the controller defaults; explicit values, zero included, are validated.
type CharacterSpec struct {
	Name             string     `yaml:"name"`
	RunMultiplier    *float32   `yaml:"run_multiplier"`
	RotationFactor   *float32   `yaml:"rotation_factor"`
	GroundedGravity  *float32   `yaml:"grounded_gravity"`
	MaxJumpHeight    *float32   `yaml:"max_jump_height"`
	MaxJumpTime      *float32   `yaml:"max_jump_time"`
	FallMultiplier   *float32   `yaml:"fall_multiplier"`
	TerminalVelocity *float32   `yaml:"terminal_velocity"`
	JumpResetDelay   *float64   `yaml:"jump_reset_delay"`
	LedgeFall        bool       `yaml:"ledge_fall"`
	Color            *YAMLColor `yaml:"color"`
}

func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	if filename == "" {
		filename = CharacterFile
	}
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config overlays the spec on the defaults and validates the result.
func (s *CharacterSpec) Config() (locomotion.Config, error) {
	cfg := locomotion.DefaultConfig()
	set(&cfg.RunMultiplier, s.RunMultiplier)
	set(&cfg.RotationFactor, s.RotationFactor)
	set(&cfg.GroundedGravity, s.GroundedGravity)
	set(&cfg.MaxJumpHeight, s.MaxJumpHeight)
	set(&cfg.MaxJumpTime, s.MaxJumpTime)
	set(&cfg.FallMultiplier, s.FallMultiplier)
	set(&cfg.TerminalVelocity, s.TerminalVelocity)
	set(&cfg.JumpResetDelay, s.JumpResetDelay)
	cfg.LedgeFall = s.LedgeFall

	if err := cfg.Validate(); err != nil {
		return locomotion.Config{}, fmt.Errorf("prefabs: character %q: %w", s.Name, err)
	}
	return cfg, nil
}

type Vec3Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

type RectSpec struct {
	MinX float32 `yaml:"min_x"`
	MinZ float32 `yaml:"min_z"`
	MaxX float32 `yaml:"max_x"`
	MaxZ float32 `yaml:"max_z"`
}

func (r RectSpec) Rect() physics.Rect {
	return physics.Rect{
		MinX: min(r.MinX, r.MaxX),
		MinZ: min(r.MinZ, r.MaxZ),
		MaxX: max(r.MinX, r.MaxX),
		MaxZ: max(r.MinZ, r.MaxZ),
	}
}

type PlatformSpec struct {
	RectSpec `yaml:",inline"`
	Top      float32    `yaml:"top"`
	Color    *YAMLColor `yaml:"color"`
}

type CameraSpec struct {
	Yaw        float32 `yaml:"yaw"`
	Pitch      float32 `yaml:"pitch"`
	Distance   float32 `yaml:"distance"`
	TurnSpeed  float32 `yaml:"turn_speed"`
	Smoothness float32 `yaml:"smoothness"`
}

// Orbit builds the rig, keeping rig defaults for zero fields.
func (c CameraSpec) Orbit() *camera.Orbit {
	o := camera.NewOrbit(c.Yaw, c.Pitch, c.Distance)
	overlay(&o.TurnSpeed, c.TurnSpeed)
	overlay(&o.Smoothness, c.Smoothness)
	return o
}

type ArenaSpec struct {
	Name       string         `yaml:"name"`
	HalfWidth  float32        `yaml:"half_width"`
	HalfDepth  float32        `yaml:"half_depth"`
	Floor      float32        `yaml:"floor"`
	Radius     float32        `yaml:"radius"`
	StepOffset float32        `yaml:"step_offset"`
	Start      Vec3Spec       `yaml:"start"`
	Obstacles  []RectSpec     `yaml:"obstacles"`
	Platforms  []PlatformSpec `yaml:"platforms"`
	Camera     CameraSpec     `yaml:"camera"`
}

func LoadArenaSpec(filename string) (*ArenaSpec, error) {
	if filename == "" {
		filename = ArenaFile
	}
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *ArenaSpec) Config() physics.ArenaConfig {
	cfg := physics.DefaultArenaConfig()
	overlay(&cfg.HalfWidth, s.HalfWidth)
	overlay(&cfg.HalfDepth, s.HalfDepth)
	overlay(&cfg.Radius, s.Radius)
	overlay(&cfg.StepOffset, s.StepOffset)
	cfg.Floor = s.Floor
	cfg.Start = s.Start.Vec3()

	for _, o := range s.Obstacles {
		cfg.Obstacles = append(cfg.Obstacles, o.Rect())
	}
	for _, p := range s.Platforms {
		cfg.Platforms = append(cfg.Platforms, physics.Platform{Rect: p.Rect(), Top: p.Top})
	}
	return cfg
}

func overlay[T float32 | float64](dst *T, v T) {
	if v != 0 {
		*dst = v
	}
}

func set[T float32 | float64](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when none was set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
