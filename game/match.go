package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

type Option func(m *Match)

// WithHistoryLimit keeps at most n undoable actions. Zero means unbounded.
func WithHistoryLimit(n int) Option {
	return func(m *Match) {
		if n > 0 {
			m.history.limit = n
		}
	}
}

// Match is the authoritative state of one game: the board, whose turn it is,
// the second player's neutralization flag, the outcome and the move history.
// A Match is not safe for concurrent use.
type Match struct {
	board   *Board
	history *History
	turnState
}

// NewMatch starts a match on an empty board of the given radius with First
// to move.
func NewMatch(radius int, options ...Option) (*Match, error) {
	b, err := NewBoard(radius)
	if err != nil {
		return nil, err
	}
	m := &Match{
		board:     b,
		history:   newHistory(0),
		turnState: turnState{current: First},
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// SubmitPlace places a stone for the player to move and evaluates it.
func (m *Match) SubmitPlace(c HexCoord) (PublicState, error) {
	e, err := m.place(c)
	if err != nil {
		return PublicState{}, err
	}
	m.history.Record(e)
	return m.State(), nil
}

// SubmitNeutralize spends the second player's once-per-game neutralization on
// the first player's last placed stone. The turn passes back to First.
func (m *Match) SubmitNeutralize() (PublicState, error) {
	e, err := m.neutralize()
	if err != nil {
		return PublicState{}, err
	}
	m.history.Record(e)
	return m.State(), nil
}

// Play submits a move of either kind.
func (m *Match) Play(move Move) (PublicState, error) {
	switch move.Action {
	case PlaceAction:
		return m.SubmitPlace(move.Coord)
	case NeutralizeAction:
		return m.SubmitNeutralize()
	}
	return PublicState{}, fmt.Errorf("%w: unknown action %s", ErrInvalidMove, move.Action)
}

func (m *Match) place(c HexCoord) (historyEntry, error) {
	if m.outcome.Terminal() {
		return historyEntry{}, fmt.Errorf("%w: %s", ErrGameOver, m.outcome)
	}
	prevCell, _ := m.board.Get(c)
	acting := m.current
	if err := m.board.Place(c, acting); err != nil {
		return historyEntry{}, err
	}
	e := historyEntry{
		move:     PlaceMove(c),
		player:   acting,
		coord:    c,
		prevCell: prevCell,
		prev:     m.turnState,
	}

	m.outcome = EvaluatePlacement(m.board, c, acting).outcome(acting)
	m.lastPlaced = &Placement{Coord: c, Player: acting}
	m.moveCount++
	if !m.outcome.Terminal() {
		m.current = acting.Opponent()
	}
	return e, nil
}

func (m *Match) neutralize() (historyEntry, error) {
	if m.outcome.Terminal() {
		return historyEntry{}, fmt.Errorf("%w: %s", ErrGameOver, m.outcome)
	}
	if err := m.checkNeutralize(); err != nil {
		return historyEntry{}, err
	}
	target := m.lastPlaced.Coord
	if err := m.board.Neutralize(target); err != nil {
		return historyEntry{}, err
	}
	e := historyEntry{
		move:     NeutralizeMove(),
		player:   m.current,
		coord:    target,
		prevCell: FirstStone,
		prev:     m.turnState,
	}

	m.neutralizeUsed = true
	m.outcome = EvaluateNeutralization(m.board).outcome(m.current)
	m.lastPlaced = nil
	m.moveCount++
	m.current = First
	return e, nil
}

// checkNeutralize reports why neutralization is unavailable, ignoring the
// match outcome.
func (m *Match) checkNeutralize() error {
	switch {
	case m.current != Second:
		return fmt.Errorf("%w: only the second player may neutralize", ErrNotAllowed)
	case m.neutralizeUsed:
		return fmt.Errorf("%w: neutralization already used", ErrNotAllowed)
	case m.lastPlaced == nil:
		return fmt.Errorf("%w: no opposing stone to neutralize", ErrNotAllowed)
	case m.board.at(m.lastPlaced.Coord) != FirstStone:
		return fmt.Errorf("%w: last placed stone at %s is no longer the first player's", ErrNotAllowed, m.lastPlaced.Coord)
	}
	return nil
}

// CanNeutralize reports whether SubmitNeutralize would be accepted now.
func (m *Match) CanNeutralize() bool {
	return !m.outcome.Terminal() && m.checkNeutralize() == nil
}

// LegalMoves lists every empty cell as a placement, followed by the
// neutralization when it is permitted. A finished match has no legal moves.
func (m *Match) LegalMoves() []Move {
	if m.outcome.Terminal() {
		return nil
	}
	empty := m.board.EmptyCoords()
	moves := make([]Move, 0, len(empty)+1)
	for _, c := range empty {
		moves = append(moves, PlaceMove(c))
	}
	if m.checkNeutralize() == nil {
		moves = append(moves, NeutralizeMove())
	}
	return moves
}

// Undo reverses the most recent accepted action, including one that ended
// the match.
func (m *Match) Undo() (PublicState, error) {
	e, ok := m.history.popDone()
	if !ok {
		return PublicState{}, ErrNothingToUndo
	}
	m.board.restore(e.coord, e.prevCell)
	m.turnState = e.prev
	m.history.pushUndone(e)
	return m.State(), nil
}

// Redo re-applies the most recently undone action.
func (m *Match) Redo() (PublicState, error) {
	e, ok := m.history.popUndone()
	if !ok {
		return PublicState{}, ErrNothingToRedo
	}
	var (
		redone historyEntry
		err    error
	)
	switch e.move.Action {
	case NeutralizeAction:
		redone, err = m.neutralize()
	default:
		redone, err = m.place(e.move.Coord)
	}
	if err != nil {
		m.history.pushUndone(e)
		return PublicState{}, fmt.Errorf("redo %s: %w", e.move, err)
	}
	m.history.push(redone)
	return m.State(), nil
}

// State returns a copy of the observable match state.
func (m *Match) State() PublicState {
	cells := make([]Cell, 0, CellCount(m.board.radius))
	m.board.each(func(c HexCoord, s CellState) {
		cells = append(cells, Cell{Coord: c, State: s})
	})
	var last *Placement
	if m.lastPlaced != nil {
		p := *m.lastPlaced
		last = &p
	}
	return PublicState{
		Radius:              m.board.radius,
		Cells:               cells,
		CurrentPlayer:       m.current,
		Outcome:             m.outcome,
		NeutralizeAvailable: m.CanNeutralize(),
		NeutralizeUsed:      m.neutralizeUsed,
		LastPlaced:          last,
		MoveCount:           m.moveCount,
		CanUndo:             m.history.CanUndo(),
		CanRedo:             m.history.CanRedo(),
	}
}

func (m *Match) Radius() int {
	return m.board.radius
}

func (m *Match) CurrentPlayer() Player {
	return m.current
}

func (m *Match) Outcome() Outcome {
	return m.outcome
}

func (m *Match) MoveCount() int {
	return m.moveCount
}

// Cell returns the state of the cell at c.
func (m *Match) Cell(c HexCoord) (CellState, error) {
	return m.board.Get(c)
}

// History returns the moves that can currently be undone, oldest first.
func (m *Match) History() []Move {
	return m.history.Moves()
}

// String renders the board.
func (m *Match) String() string {
	return m.board.String()
}

// Clone returns an independent copy of the match, history included.
func (m *Match) Clone() *Match {
	return &Match{
		board:     m.board.Clone(),
		history:   m.history.clone(),
		turnState: m.turnState,
	}
}

// Hash fingerprints the position: board, turn, flags, outcome and the last
// placement. History is not part of the position.
func (m *Match) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(m.board.radius))
	binary.Write(hasher, binary.LittleEndian, int64(m.current))
	binary.Write(hasher, binary.LittleEndian, m.neutralizeUsed)
	binary.Write(hasher, binary.LittleEndian, int64(m.outcome.Kind))
	binary.Write(hasher, binary.LittleEndian, int64(m.outcome.Player))

	if m.lastPlaced != nil {
		binary.Write(hasher, binary.LittleEndian, int64(m.lastPlaced.Coord.Q))
		binary.Write(hasher, binary.LittleEndian, int64(m.lastPlaced.Coord.R))
	} else {
		binary.Write(hasher, binary.LittleEndian, int64(-1<<62))
	}

	m.board.each(func(_ HexCoord, s CellState) {
		hasher.Write([]byte{byte(s)})
	})

	return StateHash(hasher.Sum64())
}
