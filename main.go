package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and transition logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	character := flag.String("character", "", "character spec (defaults to prefabs/character.yaml)")
	arena := flag.String("arena", "", "arena spec (defaults to prefabs/arena.yaml)")
	watch := flag.Bool("watch", true, "reload specs when files under prefabs/ change")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("locomotion")

	game, err := NewGame(*character, *arena, *debug, *watch)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game loop stopped")
	}
}
