package game

// Verdict is the evaluator's classification of the most recent action.
type Verdict int

const (
	Continue Verdict = iota
	WinVerdict
	LossVerdict
	DrawVerdict
)

func (v Verdict) String() string {
	switch v {
	case Continue:
		return "continue"
	case WinVerdict:
		return "win"
	case LossVerdict:
		return "loss"
	case DrawVerdict:
		return "draw"
	}
	return "unknown"
}

// outcome converts a verdict for the acting player into a match outcome.
func (v Verdict) outcome(acting Player) Outcome {
	switch v {
	case WinVerdict:
		return Outcome{Kind: Win, Player: acting}
	case LossVerdict:
		return Outcome{Kind: Loss, Player: acting}
	case DrawVerdict:
		return Outcome{Kind: Draw}
	}
	return Outcome{Kind: InProgress}
}

// EvaluatePlacement judges a stone just placed at `at` by the acting player.
// A line of WinLength or more on any axis wins, even when another axis holds
// a line of exactly LoseLength. Otherwise a line of exactly LoseLength loses.
// A board with no empty cells left is then a draw.
func EvaluatePlacement(b *Board, at HexCoord, acting Player) Verdict {
	if b.at(at).Owner() == acting {
		lose := false
		for _, axis := range Axes {
			n := ScanLine(b, at, axis).Length
			if n >= WinLength {
				return WinVerdict
			}
			if n == LoseLength {
				lose = true
			}
		}
		if lose {
			return LossVerdict
		}
	}
	if b.Full() {
		return DrawVerdict
	}
	return Continue
}

// EvaluateNeutralization judges a neutralization. Removing ownership cannot
// create a line, so neither player is judged; only a full board ends the match.
func EvaluateNeutralization(b *Board) Verdict {
	if b.Full() {
		return DrawVerdict
	}
	return Continue
}

// ClassifyBoard rescans the whole board for player p's lines and reports the
// verdict that player's lines would earn. Each run is measured once, from the
// cell where it starts.
func ClassifyBoard(b *Board, p Player) Verdict {
	stone := StoneOf(p)
	lose := false
	for _, c := range b.Coords() {
		if b.at(c) != stone {
			continue
		}
		for _, axis := range Axes {
			if b.at(c.Add(axis.Step().Neg())) == stone {
				continue
			}
			n := ScanLine(b, c, axis).Length
			if n >= WinLength {
				return WinVerdict
			}
			if n == LoseLength {
				lose = true
			}
		}
	}
	if lose {
		return LossVerdict
	}
	return Continue
}
