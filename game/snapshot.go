package game

import (
	"encoding/json"
	"fmt"
	"io"
)

// Snapshot is a flat, serializable record of a match, sufficient to resume
// play exactly. Undo/redo history is not included.
type Snapshot struct {
	Radius         int        `json:"radius"`
	Cells          []Cell     `json:"cells"`
	CurrentPlayer  Player     `json:"current_player"`
	NeutralizeUsed bool       `json:"neutralize_used"`
	Outcome        Outcome    `json:"outcome"`
	LastPlaced     *Placement `json:"last_placed,omitempty"`
	MoveCount      int        `json:"move_count"`
}

// Snapshot captures the current match.
func (m *Match) Snapshot() Snapshot {
	s := m.State()
	return Snapshot{
		Radius:         s.Radius,
		Cells:          s.Cells,
		CurrentPlayer:  s.CurrentPlayer,
		NeutralizeUsed: s.NeutralizeUsed,
		Outcome:        s.Outcome,
		LastPlaced:     s.LastPlaced,
		MoveCount:      s.MoveCount,
	}
}

// Restore rebuilds a match from a snapshot. The snapshot must list every cell
// of its radius exactly once and describe a position play can reach: one
// neutral cell at most and only once neutralization is spent, the last
// placement on its player's stone, and lines that agree with the outcome.
func Restore(s Snapshot, options ...Option) (*Match, error) {
	m, err := NewMatch(s.Radius, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if len(s.Cells) != CellCount(s.Radius) {
		return nil, fmt.Errorf("%w: %d cells for radius %d, want %d", ErrInvalidSnapshot, len(s.Cells), s.Radius, CellCount(s.Radius))
	}
	seen := make(map[HexCoord]bool, len(s.Cells))
	neutral := 0
	for _, cell := range s.Cells {
		if !m.board.InBounds(cell.Coord) {
			return nil, fmt.Errorf("%w: cell %s outside radius %d", ErrInvalidSnapshot, cell.Coord, s.Radius)
		}
		if seen[cell.Coord] {
			return nil, fmt.Errorf("%w: cell %s listed twice", ErrInvalidSnapshot, cell.Coord)
		}
		if cell.State < Empty || cell.State > SecondStone {
			return nil, fmt.Errorf("%w: cell %s has state %d", ErrInvalidSnapshot, cell.Coord, int(cell.State))
		}
		if cell.State == Neutral {
			neutral++
		}
		seen[cell.Coord] = true
		m.board.restore(cell.Coord, cell.State)
	}
	// Only the single neutralization creates a neutral cell.
	if neutral > 1 || (neutral == 1 && !s.NeutralizeUsed) {
		return nil, fmt.Errorf("%w: %d neutral cells with neutralize used %t", ErrInvalidSnapshot, neutral, s.NeutralizeUsed)
	}

	if !s.CurrentPlayer.Valid() {
		return nil, fmt.Errorf("%w: current player %s", ErrInvalidSnapshot, s.CurrentPlayer)
	}
	if !s.Outcome.valid() {
		return nil, fmt.Errorf("%w: outcome %s", ErrInvalidSnapshot, s.Outcome)
	}
	if s.MoveCount < 0 {
		return nil, fmt.Errorf("%w: move count %d", ErrInvalidSnapshot, s.MoveCount)
	}
	if s.LastPlaced != nil {
		if !m.board.InBounds(s.LastPlaced.Coord) || !s.LastPlaced.Player.Valid() {
			return nil, fmt.Errorf("%w: last placement %s by %s", ErrInvalidSnapshot, s.LastPlaced.Coord, s.LastPlaced.Player)
		}
		if owner := m.board.at(s.LastPlaced.Coord).Owner(); owner != s.LastPlaced.Player {
			return nil, fmt.Errorf("%w: last placement %s by %s but the cell belongs to %s", ErrInvalidSnapshot, s.LastPlaced.Coord, s.LastPlaced.Player, owner)
		}
	}
	if err := checkOutcome(m.board, s.Outcome); err != nil {
		return nil, err
	}

	var last *Placement
	if s.LastPlaced != nil {
		p := *s.LastPlaced
		last = &p
	}
	m.turnState = turnState{
		current:        s.CurrentPlayer,
		neutralizeUsed: s.NeutralizeUsed,
		lastPlaced:     last,
		outcome:        s.Outcome,
		moveCount:      s.MoveCount,
	}
	return m, nil
}

// checkOutcome verifies that the board supports the recorded outcome. Before
// the final action no player ever holds a line of three or more, so only a
// decisive outcome's player may have one, and of the matching kind.
func checkOutcome(b *Board, o Outcome) error {
	want := map[Player]Verdict{First: Continue, Second: Continue}
	switch o.Kind {
	case Win:
		want[o.Player] = WinVerdict
	case Loss:
		want[o.Player] = LossVerdict
	}
	for _, p := range []Player{First, Second} {
		if v := ClassifyBoard(b, p); v != want[p] {
			return fmt.Errorf("%w: outcome %s but %s's lines give %s", ErrInvalidSnapshot, o, p, v)
		}
	}

	switch o.Kind {
	case InProgress:
		if b.Full() {
			return fmt.Errorf("%w: unfinished match on a full board", ErrInvalidSnapshot)
		}
	case Draw:
		if !b.Full() {
			return fmt.Errorf("%w: draw with %d empty cells", ErrInvalidSnapshot, b.EmptyCount())
		}
	}
	return nil
}

// EncodeSnapshot writes s as JSON.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a JSON snapshot. The result still has to pass Restore.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return s, nil
}
