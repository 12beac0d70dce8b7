package engine

import (
	"hex3taboo/game"

	"golang.org/x/exp/rand"
)

// RandomAgent picks uniformly among the legal moves.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(m *game.Match, _ []Update) game.Move {
	moves := m.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}
	}
	return moves[a.rng.Intn(len(moves))]
}

// SafeAgent looks one move ahead: it takes a winning move when there is one
// and otherwise picks randomly among the moves that do not lose on the spot.
type SafeAgent struct {
	rng *rand.Rand
}

func NewSafeAgent(seed uint64) *SafeAgent {
	return &SafeAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *SafeAgent) FindMove(m *game.Match, _ []Update) game.Move {
	moves := m.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}
	}

	acting := m.CurrentPlayer()
	safe := make([]game.Move, 0, len(moves))
	for _, move := range moves {
		next := m.Clone()
		state, err := next.Play(move)
		if err != nil {
			continue
		}
		switch state.Outcome.Winner() {
		case acting:
			return move
		case acting.Opponent():
			continue
		}
		safe = append(safe, move)
	}

	if len(safe) == 0 {
		return moves[a.rng.Intn(len(moves))]
	}
	return safe[a.rng.Intn(len(safe))]
}

// NewAgent builds an agent by kind name. Unknown kinds get a RandomAgent.
func NewAgent(kind string, seed uint64) Agent {
	switch kind {
	case "safe":
		return NewSafeAgent(seed)
	}
	return NewRandomAgent(seed)
}
