package engine

import (
	"hex3taboo/experiments/metrics"
	"hex3taboo/game"
)

// Agent chooses a move for the player to move. The match it is handed is a
// copy; updates lists the actions played since the agent was last asked.
type Agent interface {
	FindMove(m *game.Match, updates []Update) game.Move
}

type Update struct {
	Move   game.Move
	Player game.Player
}

type Result struct {
	Outcome game.Outcome
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}

type Engine interface {
	// Run plays the match until it ends or a max number of moves is reached
	Run() (Result, error)
}
