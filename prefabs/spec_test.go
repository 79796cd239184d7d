package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadCharacterSpec(t *testing.T) {
	spec, err := LoadCharacterSpec("")
	require.NoError(t, err)
	require.Equal(t, "hero", spec.Name)

	cfg, err := spec.Config()
	require.NoError(t, err)

	want := locomotion.DefaultConfig()
	want.LedgeFall = true
	require.Equal(t, want, cfg)
	require.Equal(t, color.NRGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}, spec.Color.Or(color.Black))
}

func TestCharacterSpecOverlay(t *testing.T) {
	var spec CharacterSpec
	require.NoError(t, yaml.Unmarshal([]byte("name: floaty\nmax_jump_height: 6\nfall_multiplier: 1.5\n"), &spec))

	cfg, err := spec.Config()
	require.NoError(t, err)
	require.Equal(t, float32(6), cfg.MaxJumpHeight)
	require.Equal(t, float32(1.5), cfg.FallMultiplier)
	require.Equal(t, locomotion.DefaultConfig().RunMultiplier, cfg.RunMultiplier)
	require.False(t, cfg.LedgeFall)
	require.Equal(t, color.Color(color.White), spec.Color.Or(color.White))
}

func TestCharacterSpecRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"negative_height", "max_jump_height: -1\n", locomotion.ErrInvalidJumpProfile},
		{"zero_height", "max_jump_height: 0\n", locomotion.ErrInvalidJumpProfile},
		{"zero_jump_time", "max_jump_time: 0\n", locomotion.ErrInvalidJumpProfile},
		{"zero_grounded_gravity", "grounded_gravity: 0\n", locomotion.ErrInvalidConfig},
		{"zero_run_multiplier", "run_multiplier: 0\n", locomotion.ErrInvalidConfig},
		{"positive_grounded_gravity", "grounded_gravity: 1\n", locomotion.ErrInvalidConfig},
		{"upward_terminal_velocity", "terminal_velocity: 5\n", locomotion.ErrInvalidConfig},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec CharacterSpec
			require.NoError(t, yaml.Unmarshal([]byte(c.src), &spec))
			_, err := spec.Config()
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestLoadArenaSpec(t *testing.T) {
	spec, err := LoadArenaSpec("")
	require.NoError(t, err)

	cfg := spec.Config()
	require.NoError(t, cfg.Validate())
	require.Equal(t, mgl32.Vec3{0, 0, -6}, cfg.Start)
	require.Len(t, cfg.Obstacles, 2)
	require.Len(t, cfg.Platforms, 3)
	require.Equal(t, float32(5), cfg.Platforms[2].Top)
	require.NotNil(t, spec.Platforms[0].Color)

	orbit := spec.Camera.Orbit()
	require.InDelta(t, 0.45, orbit.Pitch, 1e-6)
	require.Equal(t, float32(9), orbit.Distance)
}

func TestRectSpecNormalizesCorners(t *testing.T) {
	r := RectSpec{MinX: 3, MinZ: 4, MaxX: -1, MaxZ: 2}.Rect()
	require.Equal(t, float32(-1), r.MinX)
	require.Equal(t, float32(3), r.MaxX)
	require.Equal(t, float32(2), r.MinZ)
	require.Equal(t, float32(4), r.MaxZ)
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    color.Color
		wantErr bool
	}{
		{"rgb", `"#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"rgba", `"10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"short", `"#fff"`, nil, true},
		{"not_hex", `"#zzzzzz"`, nil, true},
		{"sequence", `[1, 2, 3]`, nil, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.src), &got)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.want, got.Color)
		})
	}
}

func TestLoadExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\nrun_multiplier: 2\n"), 0o644))

	spec, err := LoadCharacterSpec(path)
	require.NoError(t, err)
	require.Equal(t, "custom", spec.Name)
	require.NotNil(t, spec.RunMultiplier)
	require.Equal(t, float32(2), *spec.RunMultiplier)
	require.Nil(t, spec.MaxJumpHeight)

	_, ok := ModTime(path)
	require.True(t, ok)

	_, err = LoadCharacterSpec("missing.yaml")
	require.Error(t, err)
}

func TestScripts(t *testing.T) {
	names, err := Scripts()
	require.NoError(t, err)
	require.Contains(t, names, "triple_jump")
	require.Contains(t, names, "idle")

	for _, name := range []string{"idle", "scripts/idle.tengo", "prefabs/scripts/idle"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		require.NotEmpty(t, data)
	}
}

func TestCleanPaths(t *testing.T) {
	require.Equal(t, "character.yaml", cleanPrefabPath("prefabs/character.yaml"))
	require.Equal(t, "scripts/idle.tengo", cleanScriptPath("idle"))
	require.Equal(t, "scripts/idle.tengo", cleanScriptPath("prefabs/scripts/idle.tengo"))
	require.True(t, isExternal("./x.yaml"))
	require.True(t, isExternal("/tmp/x.yaml"))
	require.False(t, isExternal("character.yaml"))
}
