package experiments

import (
	"fmt"
	"hex3taboo/engine"
	"hex3taboo/experiments/metrics"
	"hex3taboo/game"
	"hex3taboo/meta"
	"sync"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Name    string
	Games   int // Per matchup
	Radius  int
	Seed    uint64
	Workers int
	OutDir  string // Records are not written when empty
}

func DefaultConfig() Config {
	return Config{
		Name:    "self_play",
		Games:   meta.GAMES,
		Radius:  meta.RADIUS,
		Seed:    meta.SEED,
		Workers: meta.WORKERS,
		OutDir:  "experiments",
	}
}

var agentConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "random"},
	{ID: 2, Kind: "safe"},
}

type job struct {
	id     int
	first  metrics.AgentConfig
	second metrics.AgentConfig
}

type outcome struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
	err    error
}

// RunSelfPlay plays cfg.Games games for every ordered pairing of the agent
// kinds, so each kind plays both sides, and writes the records under
// cfg.OutDir.
func RunSelfPlay(cfg Config) (metrics.Summary, error) {
	if cfg.Games <= 0 {
		return metrics.Summary{}, fmt.Errorf("%w: games must be positive, got %d", game.ErrInvalidConfiguration, cfg.Games)
	}
	if cfg.Radius <= 0 || cfg.Radius > game.MaxRadius {
		return metrics.Summary{}, fmt.Errorf("%w: radius %d", game.ErrInvalidConfiguration, cfg.Radius)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	// Each matchup pairs every agent with every agent, in both seats
	jobs := []job{}
	for _, first := range agentConfigs {
		for _, second := range agentConfigs {
			for i := 0; i < cfg.Games; i++ {
				jobs = append(jobs, job{id: len(jobs) + 1, first: first, second: second})
			}
		}
	}

	log.Info().Msgf("starting %s experiment with %d games on radius %d...", cfg.Name, len(jobs), cfg.Radius)

	collector := metrics.NewCollector()
	collector.Start()

	results := make([]outcome, len(jobs))
	queue := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = runGame(cfg, jobs[i])
				if results[i].err == nil {
					collector.AddGame(results[i].record.GameMetric)
					log.Debug().Msgf("completed game %d of %d with %s", jobs[i].id, len(jobs), results[i].record.Outcome)
				}
			}
		}()
	}
	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()

	summary := collector.Complete()

	gameRecords := make([]metrics.GameRecord, 0, len(jobs))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		if r.err != nil {
			return summary, fmt.Errorf("game %d: %w", r.record.ID, r.err)
		}
		gameRecords = append(gameRecords, r.record)
		for _, mm := range r.moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: r.record.ID, MoveMetric: mm})
		}
	}

	log.Info().Msgf("completed %s experiment: %d games, first %d, second %d, draws %d, losses by three %d, neutralized %d, in %s",
		cfg.Name, summary.Games, summary.FirstWins, summary.SecondWins, summary.Draws, summary.Losses, summary.Neutralizations, summary.Duration)

	if cfg.OutDir == "" {
		return summary, nil
	}
	return summary, writeRecords(cfg, gameRecords, moveRecords)
}

func writeRecords(cfg Config, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(agentConfigs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// runGame executes a single game between two agents. Seeds derive from the
// game id so results do not depend on scheduling.
func runGame(cfg Config, j job) outcome {
	record := metrics.GameRecord{ID: j.id, Agent1: j.first.ID, Agent2: j.second.ID}

	m, err := game.NewMatch(cfg.Radius)
	if err != nil {
		return outcome{record: record, err: err}
	}
	seed := cfg.Seed + 2*uint64(j.id)
	var e engine.Engine = engine.NewLocalEngine(m,
		engine.NewAgent(j.first.Kind, seed),
		engine.NewAgent(j.second.Kind, seed+1),
	)

	result, err := e.Run()
	if err != nil {
		return outcome{record: record, err: err}
	}
	record.GameMetric = result.Game
	return outcome{record: record, moves: result.Moves}
}
