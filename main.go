package main

import (
	"flag"
	"fmt"
	"hex3taboo/experiments"
	"hex3taboo/game"
	"hex3taboo/meta"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	defaults := experiments.DefaultConfig()

	games := flag.Int("games", meta.GAMES, "Number of games per matchup")
	radius := flag.Int("radius", meta.RADIUS, "Board radius")
	seed := flag.Uint64("seed", meta.SEED, "Base seed for agent move choice")
	workers := flag.Int("workers", meta.WORKERS, "Number of games played concurrently")
	out := flag.String("out", defaults.OutDir, "Directory for experiment records, empty to skip writing")
	show := flag.String("show", "", "Print the match stored in a snapshot file and exit")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	if *show != "" {
		if err := showSnapshot(*show); err != nil {
			log.Fatal().Err(err).Msgf("failed to show %s", *show)
		}
		return
	}

	cfg := defaults
	cfg.Games = *games
	cfg.Radius = *radius
	cfg.Seed = *seed
	cfg.Workers = *workers
	cfg.OutDir = *out

	summary, err := experiments.RunSelfPlay(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}
	fmt.Printf("games=%d first=%d second=%d draws=%d losses=%d neutralized=%d moves=%d duration=%s\n",
		summary.Games, summary.FirstWins, summary.SecondWins, summary.Draws,
		summary.Losses, summary.Neutralizations, summary.Moves, summary.Duration)
}

func showSnapshot(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := game.DecodeSnapshot(f)
	if err != nil {
		return err
	}
	m, err := game.Restore(s)
	if err != nil {
		return err
	}
	fmt.Println(m)
	fmt.Printf("to move: %s  outcome: %s  moves: %d  neutralize available: %t\n",
		m.CurrentPlayer(), m.Outcome(), m.MoveCount(), m.CanNeutralize())
	return nil
}
