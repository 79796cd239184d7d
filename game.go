package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	debug  bool

	characterFile string
	arenaFile     string

	input   *Input
	machine *locomotion.Machine
	arena   *physics.Arena
	orbit   *camera.Orbit
	anim    *locomotion.RecordingAnimator

	character *prefabs.CharacterSpec
	arenaSpec *prefabs.ArenaSpec
	watcher   *prefabs.Watcher

	logger zerolog.Logger
}

func NewGame(characterFile, arenaFile string, debug, watch bool) (*Game, error) {
	g := &Game{
		debug:         debug,
		characterFile: characterFile,
		arenaFile:     arenaFile,
		input:         NewInput(),
		logger:        log.With().Str("component", "game").Logger(),
	}
	if err := g.build(nil); err != nil {
		return nil, err
	}

	if watch {
		if _, err := os.Stat("prefabs"); err == nil {
			w, err := prefabs.NewWatcher("prefabs")
			if err != nil {
				g.logger.Warn().Err(err).Msg("hot reload disabled")
			} else {
				g.watcher = w
			}
		}
	}
	return g, nil
}

// build loads both specs and replaces the controller. A nil keep places the
// character at the arena start, otherwise at keep.
func (g *Game) build(keep *mgl32.Vec3) error {
	character, err := prefabs.LoadCharacterSpec(g.characterFile)
	if err != nil {
		return err
	}
	cfg, err := character.Config()
	if err != nil {
		return err
	}
	arenaSpec, err := prefabs.LoadArenaSpec(g.arenaFile)
	if err != nil {
		return err
	}
	arena, err := physics.NewArena(arenaSpec.Config())
	if err != nil {
		return err
	}
	if keep != nil {
		arena.Teleport(*keep)
	}

	orbit := g.orbit
	if orbit == nil {
		orbit = arenaSpec.Camera.Orbit()
		orbit.Snap(arena.Position())
	}

	var heading mgl32.Quat
	if g.machine != nil {
		heading = g.machine.Heading()
	} else {
		heading = mgl32.QuatIdent()
	}

	anim := locomotion.NewRecordingAnimator()
	m, err := locomotion.NewMachine(cfg, arena,
		locomotion.WithCamera(orbit),
		locomotion.WithAnimator(anim, locomotion.DefaultAnimParams()),
		locomotion.WithHeading(heading),
		locomotion.WithLogger(log.With().Str("character", character.Name).Logger()),
	)
	if err != nil {
		return err
	}

	g.character = character
	g.arenaSpec = arenaSpec
	g.arena = arena
	g.orbit = orbit
	g.anim = anim
	g.machine = m
	g.input.Sync(m.Context())
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if change.Kind != prefabs.ChangeSpec {
				continue
			}
			pos := g.arena.Position()
			if err := g.build(&pos); err != nil {
				g.logger.Error().Err(err).Str("file", change.Name()).Msg("reload failed, keeping previous controller")
				continue
			}
			g.logger.Info().Str("file", change.Name()).Msg("reloaded")
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn().Err(err).Msg("watch error")
			}
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++
	dt := float32(1.0 / float64(ebiten.TPS()))

	g.pollReload()
	g.input.Update()

	if g.input.DebugPressed {
		g.debug = !g.debug
	}
	if g.input.ResetPressed {
		if err := g.build(nil); err != nil {
			return err
		}
	}

	g.orbit.Rotate(g.input.CameraYaw, g.input.CameraPitch, dt)
	g.input.Apply(g.machine.Context())
	if err := g.machine.Update(dt); err != nil {
		return fmt.Errorf("frame %d: %w", g.frames, err)
	}
	g.orbit.Follow(g.arena.Position())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	v := newTopDownView(g.arena.Config(), g.orbit.Focus())
	v.drawArena(screen, g.arenaSpec)
	v.drawCamera(screen, g.orbit)
	v.drawCharacter(screen, g.arena, g.machine.Heading(), g.character.Color.Or(characterColor))
	drawHeightBar(screen, g.arena, g.arenaSpec)

	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	ctx := g.machine.Context()
	sub := "-"
	if id, ok := g.machine.Sub(); ok {
		sub = id.String()
	}
	s := fmt.Sprintf("Frames: %d    FPS: %.2f\nState: %s/%s  jumps: %d",
		g.frames, ebiten.ActualFPS(), g.machine.Root(), sub, ctx.JumpCount)
	if !g.debug {
		return s
	}

	p := g.arena.Position()
	params := ctx.Params
	s += fmt.Sprintf("\nPos: %.2f %.2f %.2f  grounded: %v\nApplied: %.2f %.2f %.2f\nAnim walk=%v run=%v jump=%v fall=%v count=%d",
		p[0], p[1], p[2], ctx.Grounded,
		ctx.AppliedMovement[0], ctx.AppliedMovement[1], ctx.AppliedMovement[2],
		g.anim.Bool(params.IsWalking), g.anim.Bool(params.IsRunning),
		g.anim.Bool(params.IsJumping), g.anim.Bool(params.IsFalling), g.anim.Int(params.JumpCount))
	if due, ok := ctx.JumpResetDue(); ok {
		s += fmt.Sprintf("\nChain reset in %.2fs", due-ctx.Now())
	}
	return s
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
