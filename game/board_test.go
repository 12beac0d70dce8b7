package game

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("cell count follows 1 + 3r(r+1)", func(t *testing.T) {
		for radius := 1; radius <= 6; radius++ {
			b, err := NewBoard(radius)
			require.NoError(t, err)
			require.Len(t, b.Coords(), 1+3*radius*(radius+1))
			require.Equal(t, CellCount(radius), b.EmptyCount())
			require.False(t, b.Full())
		}
	})

	t.Run("rejects non-positive and oversized radius", func(t *testing.T) {
		for _, radius := range []int{0, -1, MaxRadius + 1} {
			_, err := NewBoard(radius)
			require.ErrorIs(t, err, ErrInvalidConfiguration, "radius %d", radius)
		}
	})

	t.Run("coords are ordered by r then q and all in bounds", func(t *testing.T) {
		b, err := NewBoard(1)
		require.NoError(t, err)
		require.Equal(t, []HexCoord{
			{0, -1}, {1, -1},
			{-1, 0}, {0, 0}, {1, 0},
			{-1, 1}, {0, 1},
		}, b.Coords())
		for _, c := range b.Coords() {
			require.True(t, b.InBounds(c))
			require.LessOrEqual(t, c.Distance(), 1)
		}
	})
}

func TestBoardGet(t *testing.T) {
	b, err := NewBoard(2)
	require.NoError(t, err)

	state, err := b.Get(HexCoord{0, 0})
	require.NoError(t, err)
	require.Equal(t, Empty, state)

	for _, c := range []HexCoord{{3, 0}, {2, 1}, {-2, -1}, {5, 5}} {
		_, err := b.Get(c)
		require.ErrorIs(t, err, ErrOutOfBounds, "coord %s", c)
	}
}

func TestBoardPlace(t *testing.T) {
	t.Run("places on empty cell", func(t *testing.T) {
		b, _ := NewBoard(2)
		require.NoError(t, b.Place(HexCoord{1, -1}, Second))

		state, err := b.Get(HexCoord{1, -1})
		require.NoError(t, err)
		require.Equal(t, SecondStone, state)
		require.Equal(t, Second, state.Owner())
		require.Equal(t, CellCount(2)-1, b.EmptyCount())
	})

	t.Run("rejects occupied and neutral cells", func(t *testing.T) {
		b, _ := NewBoard(2)
		require.NoError(t, b.Place(HexCoord{0, 0}, First))
		require.ErrorIs(t, b.Place(HexCoord{0, 0}, Second), ErrInvalidMove)

		require.NoError(t, b.Neutralize(HexCoord{0, 0}))
		require.ErrorIs(t, b.Place(HexCoord{0, 0}, First), ErrInvalidMove)
		require.Equal(t, CellCount(2)-1, b.EmptyCount(), "neutral cells are not empty")
	})

	t.Run("out of radius is an invalid move and out of bounds", func(t *testing.T) {
		b, _ := NewBoard(2)
		err := b.Place(HexCoord{2, 1}, First)
		require.ErrorIs(t, err, ErrInvalidMove)
		require.ErrorIs(t, err, ErrOutOfBounds)
		require.Equal(t, CellCount(2), b.EmptyCount())
	})

	t.Run("rejects missing player", func(t *testing.T) {
		b, _ := NewBoard(2)
		require.ErrorIs(t, b.Place(HexCoord{0, 0}, NoPlayer), ErrInvalidMove)
	})
}

func TestBoardNeutralize(t *testing.T) {
	b, _ := NewBoard(2)

	require.ErrorIs(t, b.Neutralize(HexCoord{0, 0}), ErrInvalidMove, "empty cells cannot be neutralized")

	err := b.Neutralize(HexCoord{0, 3})
	require.True(t, errors.Is(err, ErrInvalidMove) && errors.Is(err, ErrOutOfBounds))

	require.NoError(t, b.Place(HexCoord{0, 0}, First))
	require.NoError(t, b.Neutralize(HexCoord{0, 0}))
	state, _ := b.Get(HexCoord{0, 0})
	require.Equal(t, Neutral, state)
	require.Equal(t, NoPlayer, state.Owner())

	require.ErrorIs(t, b.Neutralize(HexCoord{0, 0}), ErrInvalidMove, "neutral cells cannot be neutralized again")
}

func TestBoardClone(t *testing.T) {
	b, _ := NewBoard(2)
	require.NoError(t, b.Place(HexCoord{0, 0}, First))

	clone := b.Clone()
	require.NoError(t, clone.Place(HexCoord{1, 0}, Second))

	state, _ := b.Get(HexCoord{1, 0})
	require.Equal(t, Empty, state, "original should not see the clone's stone")
	require.Equal(t, b.EmptyCount()-1, clone.EmptyCount())
}

func TestBoardRestoreTracksEmptyCount(t *testing.T) {
	b, _ := NewBoard(1)
	b.restore(HexCoord{0, 0}, FirstStone)
	require.Equal(t, 6, b.EmptyCount())
	b.restore(HexCoord{0, 0}, Neutral)
	require.Equal(t, 6, b.EmptyCount())
	b.restore(HexCoord{0, 0}, Empty)
	require.Equal(t, 7, b.EmptyCount())
}

func TestBoardString(t *testing.T) {
	b, _ := NewBoard(1)
	require.NoError(t, b.Place(HexCoord{0, 0}, First))
	require.NoError(t, b.Place(HexCoord{1, 0}, Second))
	require.NoError(t, b.Place(HexCoord{0, -1}, First))
	require.NoError(t, b.Neutralize(HexCoord{0, -1}))

	require.Equal(t, " # .\n. X O\n . .", b.String())
}

func TestCellStateText(t *testing.T) {
	for _, s := range []CellState{Empty, Neutral, FirstStone, SecondStone} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var got CellState
		require.NoError(t, got.UnmarshalText(text))
		require.Equal(t, s, got)
	}

	var s CellState
	require.Error(t, s.UnmarshalText([]byte("purple")))
}

func TestBoardRejectsExtremeCoordinates(t *testing.T) {
	b, _ := NewBoard(DefaultRadius)
	for _, c := range []HexCoord{
		{math.MinInt, 0}, {0, math.MinInt}, {math.MinInt, math.MinInt},
		{math.MaxInt, 0}, {math.MaxInt, math.MaxInt}, {math.MaxInt, math.MinInt},
	} {
		require.False(t, b.InBounds(c), "coord %s", c)
		_, err := b.Get(c)
		require.ErrorIs(t, err, ErrOutOfBounds)
		require.ErrorIs(t, b.Place(c, First), ErrOutOfBounds)
		require.ErrorIs(t, b.Neutralize(c), ErrOutOfBounds)
		require.Equal(t, Empty, b.at(c))
	}
	require.Equal(t, CellCount(DefaultRadius), b.EmptyCount())
}
