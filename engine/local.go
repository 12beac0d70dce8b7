package engine

import (
	"errors"
	"fmt"
	"hex3taboo/experiments/metrics"
	"hex3taboo/game"
	"hex3taboo/meta"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrNoLegalMoves = errors.New("no legal moves")

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	Match    *game.Match
	Agents   [2]Agent // Indexed by player: First, then Second
	MaxMoves int
}

// NewLocalEngine pits two agents against each other on m.
func NewLocalEngine(m *game.Match, first, second Agent) *LocalEngine {
	if first == nil || second == nil {
		panic("need an agent for each player")
	}
	return &LocalEngine{
		Match:    m,
		Agents:   [2]Agent{first, second},
		MaxMoves: meta.MAX_MOVES,
	}
}

// Run executes the game loop until the match ends or MaxMoves actions were played.
func (e *LocalEngine) Run() (Result, error) {
	updates := make([][]Update, len(e.Agents))

	gameMetric := metrics.GameMetric{
		Radius:    e.Match.Radius(),
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s player is starting on radius %d", e.Match.CurrentPlayer(), e.Match.Radius())

	step := 1
	for !e.Match.Outcome().Terminal() && step <= e.MaxMoves {
		player := e.Match.CurrentPlayer()
		agentIndex := int(player) - 1

		start := time.Now()
		candidate := e.Agents[agentIndex].FindMove(e.Match.Clone(), updates[agentIndex])
		elapsed := time.Since(start)
		updates[agentIndex] = nil

		move, fallback, err := e.validate(candidate)
		if err != nil {
			return Result{}, err
		}
		if fallback {
			log.Warn().Msgf("%s player returned illegal move %s, playing %s instead", player, candidate, move)
			gameMetric.Fallbacks++
		}

		if _, err := e.Match.Play(move); err != nil {
			return Result{}, fmt.Errorf("step %d: %w", step, err)
		}
		if move.Action == game.NeutralizeAction {
			gameMetric.Neutralized = true
		}

		u := Update{Move: move, Player: player}
		for i := range updates {
			updates[i] = append(updates[i], u)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:     step,
			Player:   player,
			Move:     move,
			Duration: elapsed,
			Fallback: fallback,
		})
		step++
	}

	outcome := e.Match.Outcome()
	if outcome.Terminal() {
		log.Debug().Msgf("game ended with %s after %d moves", outcome, e.Match.MoveCount())
	} else {
		log.Info().Msgf("stopped after %d moves (no outcome yet)", e.MaxMoves)
	}

	gameMetric.Outcome = outcome
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	return Result{Outcome: outcome, Game: gameMetric, Moves: moveMetrics}, nil
}

// validate checks candidate against the legal moves, falling back to the first
// legal move when the agent returned something else. A neutralization has no
// target of its own, so any coordinate it carries is ignored.
func (e *LocalEngine) validate(candidate game.Move) (game.Move, bool, error) {
	if candidate.Action == game.NeutralizeAction {
		candidate = game.NeutralizeMove()
	}
	legal := e.Match.LegalMoves()
	if len(legal) == 0 {
		return game.Move{}, false, ErrNoLegalMoves
	}
	if slices.Index(legal, candidate) >= 0 {
		return candidate, false, nil
	}
	return legal[0], true, nil
}
