package metrics

import (
	"hex3taboo/game"
	"sync/atomic"
	"time"
)

// AgentConfig describes one side of a matchup.
type AgentConfig struct {
	ID   int
	Kind string // "random" or "safe"
}

type MoveMetric struct {
	Step     int
	Player   game.Player
	Move     game.Move
	Duration time.Duration // Time the agent took to choose
	Fallback bool          // The agent's move was rejected and replaced
}

type GameMetric struct {
	Radius      int
	Outcome     game.Outcome
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalMoves  int
	Neutralized bool
	Fallbacks   int
}

// Summary aggregates the outcomes of many games.
type Summary struct {
	Games           int
	FirstWins       int // Includes wins by the opponent's loss
	SecondWins      int
	Draws           int
	Losses          int // Games ended by a line of exactly three
	Neutralizations int
	Moves           int
	Duration        time.Duration
}

// Collector tallies finished games. Implementations are safe for concurrent use.
type Collector interface {
	Start()
	AddGame(g GameMetric)
	Complete() Summary
}

type collector struct {
	startTime       time.Time
	games           atomic.Int32
	firstWins       atomic.Int32
	secondWins      atomic.Int32
	draws           atomic.Int32
	losses          atomic.Int32
	neutralizations atomic.Int32
	moves           atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddGame(g GameMetric) {
	m.games.Add(1)
	m.moves.Add(int64(g.TotalMoves))
	if g.Neutralized {
		m.neutralizations.Add(1)
	}
	switch g.Outcome.Kind {
	case game.Draw:
		m.draws.Add(1)
		return
	case game.Loss:
		m.losses.Add(1)
	}
	switch g.Outcome.Winner() {
	case game.First:
		m.firstWins.Add(1)
	case game.Second:
		m.secondWins.Add(1)
	}
}

func (m *collector) Complete() Summary {
	return Summary{
		Games:           int(m.games.Load()),
		FirstWins:       int(m.firstWins.Load()),
		SecondWins:      int(m.secondWins.Load()),
		Draws:           int(m.draws.Load()),
		Losses:          int(m.losses.Load()),
		Neutralizations: int(m.neutralizations.Load()),
		Moves:           int(m.moves.Load()),
		Duration:        time.Since(m.startTime),
	}
}
