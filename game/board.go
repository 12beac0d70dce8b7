package game

import (
	"fmt"
	"strings"
)

// CellState is the content of a single board cell.
type CellState int

const (
	Empty CellState = iota
	Neutral
	FirstStone
	SecondStone
)

// StoneOf returns the cell state owned by player p.
func StoneOf(p Player) CellState {
	switch p {
	case First:
		return FirstStone
	case Second:
		return SecondStone
	}
	return Empty
}

// Owner returns the owning player, or NoPlayer for empty and neutral cells.
func (s CellState) Owner() Player {
	switch s {
	case FirstStone:
		return First
	case SecondStone:
		return Second
	}
	return NoPlayer
}

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Neutral:
		return "neutral"
	case FirstStone:
		return "first"
	case SecondStone:
		return "second"
	}
	return fmt.Sprintf("cell(%d)", int(s))
}

func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CellState) UnmarshalText(text []byte) error {
	for _, candidate := range []CellState{Empty, Neutral, FirstStone, SecondStone} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", text)
}

func (s CellState) symbol() byte {
	switch s {
	case FirstStone:
		return 'X'
	case SecondStone:
		return 'O'
	case Neutral:
		return '#'
	}
	return '.'
}

// Board is a hexagonal board of a fixed radius. Coordinates with hex distance
// at most radius from the origin are valid. Cells are stored densely in a
// (2*radius+1)^2 slice; slots outside the hexagon are never read.
type Board struct {
	radius int
	width  int
	cells  []CellState
	empty  int
}

// NewBoard creates an empty board of the given radius.
func NewBoard(radius int) (*Board, error) {
	if radius <= 0 || radius > MaxRadius {
		return nil, fmt.Errorf("%w: radius %d outside [1, %d]", ErrInvalidConfiguration, radius, MaxRadius)
	}
	width := 2*radius + 1
	return &Board{
		radius: radius,
		width:  width,
		cells:  make([]CellState, width*width),
		empty:  CellCount(radius),
	}, nil
}

// CellCount returns the number of cells on a board of the given radius.
func CellCount(radius int) int {
	return 1 + 3*radius*(radius+1)
}

func (b *Board) Radius() int {
	return b.radius
}

// InBounds reports whether c lies on the board. Q and R are range checked
// before S is derived so extreme coordinates cannot overflow.
func (b *Board) InBounds(c HexCoord) bool {
	if c.Q < -b.radius || c.Q > b.radius || c.R < -b.radius || c.R > b.radius {
		return false
	}
	s := c.S()
	return s >= -b.radius && s <= b.radius
}

// Get returns the state of the cell at c.
func (b *Board) Get(c HexCoord) (CellState, error) {
	if !b.InBounds(c) {
		return Empty, fmt.Errorf("%w: %s outside radius %d", ErrOutOfBounds, c, b.radius)
	}
	return b.cells[b.index(c)], nil
}

// Place puts a stone of player p on the empty cell c.
func (b *Board) Place(c HexCoord, p Player) error {
	if !p.Valid() {
		return fmt.Errorf("%w: no player to place for", ErrInvalidMove)
	}
	if !b.InBounds(c) {
		return fmt.Errorf("%w: %w: %s outside radius %d", ErrInvalidMove, ErrOutOfBounds, c, b.radius)
	}
	i := b.index(c)
	if b.cells[i] != Empty {
		return fmt.Errorf("%w: %s is %s", ErrInvalidMove, c, b.cells[i])
	}
	b.cells[i] = StoneOf(p)
	b.empty--
	return nil
}

// Neutralize strips the owner from the stone at c. The cell becomes Neutral
// and counts toward neither player's lines.
func (b *Board) Neutralize(c HexCoord) error {
	if !b.InBounds(c) {
		return fmt.Errorf("%w: %w: %s outside radius %d", ErrInvalidMove, ErrOutOfBounds, c, b.radius)
	}
	i := b.index(c)
	if b.cells[i].Owner() == NoPlayer {
		return fmt.Errorf("%w: %s is %s, not a stone", ErrInvalidMove, c, b.cells[i])
	}
	b.cells[i] = Neutral
	return nil
}

// restore writes a cell directly. Only history reversal and snapshot loading
// use it; c must be in bounds.
func (b *Board) restore(c HexCoord, s CellState) {
	i := b.index(c)
	if b.cells[i] == Empty {
		b.empty--
	}
	if s == Empty {
		b.empty++
	}
	b.cells[i] = s
}

// at returns the cell at c, treating off-board coordinates as Empty.
func (b *Board) at(c HexCoord) CellState {
	if !b.InBounds(c) {
		return Empty
	}
	return b.cells[b.index(c)]
}

func (b *Board) EmptyCount() int {
	return b.empty
}

func (b *Board) Full() bool {
	return b.empty == 0
}

// Coords returns every valid coordinate ordered by r, then q.
func (b *Board) Coords() []HexCoord {
	coords := make([]HexCoord, 0, CellCount(b.radius))
	b.each(func(c HexCoord, _ CellState) {
		coords = append(coords, c)
	})
	return coords
}

// EmptyCoords returns the empty coordinates in the same order as Coords.
func (b *Board) EmptyCoords() []HexCoord {
	coords := make([]HexCoord, 0, b.empty)
	b.each(func(c HexCoord, s CellState) {
		if s == Empty {
			coords = append(coords, c)
		}
	})
	return coords
}

func (b *Board) each(fn func(HexCoord, CellState)) {
	for r := -b.radius; r <= b.radius; r++ {
		qMin := max(-b.radius, -r-b.radius)
		qMax := min(b.radius, -r+b.radius)
		for q := qMin; q <= qMax; q++ {
			c := HexCoord{Q: q, R: r}
			fn(c, b.cells[b.index(c)])
		}
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]CellState, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		radius: b.radius,
		width:  b.width,
		cells:  cells,
		empty:  b.empty,
	}
}

// String renders the board as rows of r, each indented so the hexagon lines up.
func (b *Board) String() string {
	var sb strings.Builder
	for r := -b.radius; r <= b.radius; r++ {
		sb.WriteString(strings.Repeat(" ", abs(r)))
		qMin := max(-b.radius, -r-b.radius)
		qMax := min(b.radius, -r+b.radius)
		for q := qMin; q <= qMax; q++ {
			if q > qMin {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.cells[b.index(HexCoord{Q: q, R: r})].symbol())
		}
		if r < b.radius {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (b *Board) index(c HexCoord) int {
	return (c.R+b.radius)*b.width + (c.Q + b.radius)
}
