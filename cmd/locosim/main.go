package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"github.com/milk9111/locomotion/scenario"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Log state transitions."`

	Run struct {
		Script    string `arg:"" name:"script" help:"Scenario name or path to a .tengo file."`
		Character string `help:"Character spec to load." default:"character.yaml"`
		Arena     string `help:"Arena spec to load." default:"arena.yaml"`
		Frames    int    `help:"Override the scenario's frame count."`
		Table     bool   `help:"Print every frame instead of a summary." short:"t"`
	} `cmd:"" help:"Replay a scenario headlessly."`

	Profile struct {
		Character string `help:"Character spec to load." default:"character.yaml"`
	} `cmd:"" help:"Print the jump tables for a character."`

	Scripts struct {
	} `cmd:"" help:"List the embedded scenarios."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("locosim"),
		kong.Description("headless third-person locomotion simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "run <script>":
		err = runCommand(os.Stdout)
	case "profile":
		err = profileCommand(os.Stdout)
	case "scripts":
		err = scriptsCommand(os.Stdout)
	}
	if err != nil {
		writeError(err)
	}
}

func loadConfig(name string) (locomotion.Config, error) {
	spec, err := prefabs.LoadCharacterSpec(name)
	if err != nil {
		return locomotion.Config{}, err
	}
	return spec.Config()
}

func runCommand(out io.Writer) error {
	s, err := scenario.Load(CLI.Run.Script)
	if err != nil {
		return err
	}
	if CLI.Run.Frames > 0 {
		s.Frames = CLI.Run.Frames
	}

	cfg, err := loadConfig(CLI.Run.Character)
	if err != nil {
		return err
	}
	arenaSpec, err := prefabs.LoadArenaSpec(CLI.Run.Arena)
	if err != nil {
		return err
	}
	arena, err := physics.NewArena(arenaSpec.Config())
	if err != nil {
		return err
	}
	orbit := arenaSpec.Camera.Orbit()

	logger := log.With().Str("scenario", s.Name).Logger()
	m, err := locomotion.NewMachine(cfg, arena,
		locomotion.WithCamera(orbit),
		locomotion.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info().Int("frames", s.Frames).Int("events", len(s.Events)).Msg("running scenario")
	res, err := scenario.Run(s, m, arena, orbit)
	if err != nil {
		return err
	}

	if CLI.Run.Table {
		return writeSamples(out, res.Samples)
	}
	return writeSummary(out, res.Summary)
}

func writeSamples(out io.Writer, samples []scenario.Sample) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "frame\ttime\troot\tsub\tjumps\tvy\tgrounded\tx\ty\tz\theading")
	for _, s := range samples {
		sub := "-"
		if s.HasSub {
			sub = s.Sub.String()
		}
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\t%d\t%.3f\t%t\t%.3f\t%.3f\t%.3f\t%.2f\n",
			s.Frame, s.Time, s.Root, sub, s.JumpCount, s.Applied[1], s.Grounded,
			s.Position[0], s.Position[1], s.Position[2], s.Heading)
	}
	return w.Flush()
}

func writeSummary(out io.Writer, sum scenario.Summary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "frames\t%d\n", sum.Frames)
	fmt.Fprintf(w, "jumps\t%d\n", sum.Jumps)
	fmt.Fprintf(w, "landings\t%d\n", sum.Landings)
	fmt.Fprintf(w, "transitions\t%d\n", sum.Transitions)
	fmt.Fprintf(w, "max jump count\t%d\n", sum.MaxJumpCount)
	fmt.Fprintf(w, "apex\t%.3f\n", sum.Apex)
	fmt.Fprintf(w, "distance\t%.3f\n", sum.Distance)
	fmt.Fprintf(w, "final\t%.3f %.3f %.3f\n", sum.Final[0], sum.Final[1], sum.Final[2])
	return w.Flush()
}

func profileCommand(out io.Writer) error {
	cfg, err := loadConfig(CLI.Profile.Character)
	if err != nil {
		return err
	}
	p, err := locomotion.NewJumpProfile(cfg.MaxJumpHeight, cfg.MaxJumpTime)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "stage\theight\ttime to apex\tgravity\tlaunch velocity")
	for stage := 0; stage <= locomotion.MaxJumpStage; stage++ {
		g, err := p.Gravity(stage)
		if err != nil {
			return err
		}
		if stage == 0 {
			fmt.Fprintf(w, "%d\t-\t-\t%.4f\t-\n", stage, g)
			continue
		}
		v, err := p.LaunchVelocity(stage)
		if err != nil {
			return err
		}
		h, t := locomotion.StageTargets(cfg.MaxJumpHeight, cfg.MaxJumpTime/2, stage)
		fmt.Fprintf(w, "%d\t%.3f\t%.4f\t%.4f\t%.4f\n", stage, h, t, g, v)
	}
	return w.Flush()
}

func scriptsCommand(out io.Writer) error {
	names, err := prefabs.Scripts()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
