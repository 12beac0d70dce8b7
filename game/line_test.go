package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boardWith builds a radius-4 board with the given stones placed directly.
func boardWith(t *testing.T, stones map[HexCoord]CellState) *Board {
	t.Helper()
	b, err := NewBoard(DefaultRadius)
	require.NoError(t, err)
	for c, s := range stones {
		require.True(t, b.InBounds(c), "stone %s off board", c)
		b.restore(c, s)
	}
	return b
}

func TestAxes(t *testing.T) {
	seen := map[HexCoord]bool{}
	for _, axis := range Axes {
		step := axis.Step()
		require.Equal(t, 1, step.Distance(), "axis %s should step to a neighbor", axis)
		require.False(t, seen[step] || seen[step.Neg()], "axis %s duplicates another axis", axis)
		seen[step] = true
	}
}

func TestScanLine(t *testing.T) {
	t.Run("empty origin has no line", func(t *testing.T) {
		b := boardWith(t, nil)
		line := ScanLine(b, HexCoord{0, 0}, AxisA)
		require.Equal(t, 0, line.Length)
		require.Equal(t, NoPlayer, line.Owner)
	})

	t.Run("neutral origin has no line", func(t *testing.T) {
		b := boardWith(t, map[HexCoord]CellState{{0, 0}: Neutral, {1, 0}: FirstStone})
		require.Equal(t, 0, ScanLine(b, HexCoord{0, 0}, AxisA).Length)
	})

	t.Run("counts both directions from the origin", func(t *testing.T) {
		b := boardWith(t, map[HexCoord]CellState{
			{-1, 0}: FirstStone, {0, 0}: FirstStone, {1, 0}: FirstStone,
		})
		line := ScanLine(b, HexCoord{0, 0}, AxisA)
		require.Equal(t, 3, line.Length)
		require.Equal(t, First, line.Owner)
		require.Equal(t, HexCoord{-1, 0}, line.From)
		require.Equal(t, HexCoord{1, 0}, line.To)

		line = ScanLine(b, HexCoord{-1, 0}, AxisA)
		require.Equal(t, 3, line.Length, "any cell of the run reports the same length")
	})

	t.Run("opponent, neutral and board edge stop the walk", func(t *testing.T) {
		b := boardWith(t, map[HexCoord]CellState{
			{0, -1}: SecondStone,
			{0, 0}:  FirstStone, {0, 1}: FirstStone,
			{0, 2}: Neutral, {0, 3}: FirstStone, {0, 4}: FirstStone,
		})
		require.Equal(t, 2, ScanLine(b, HexCoord{0, 0}, AxisB).Length)
		require.Equal(t, 2, ScanLine(b, HexCoord{0, 4}, AxisB).Length)
		require.Equal(t, HexCoord{0, 4}, ScanLine(b, HexCoord{0, 3}, AxisB).To)
	})

	t.Run("axis C runs along q = -r", func(t *testing.T) {
		b := boardWith(t, map[HexCoord]CellState{
			{2, -2}: SecondStone, {1, -1}: SecondStone, {0, 0}: SecondStone, {-1, 1}: SecondStone,
		})
		line := ScanLine(b, HexCoord{0, 0}, AxisC)
		require.Equal(t, 4, line.Length)
		require.Equal(t, Second, line.Owner)
		require.Equal(t, HexCoord{-1, 1}, line.To)
		require.Equal(t, HexCoord{2, -2}, line.From)
	})
}

func TestLinesThroughScoresAxesIndependently(t *testing.T) {
	// An L made of two runs sharing the corner (1,0): never one line of four.
	b := boardWith(t, map[HexCoord]CellState{
		{-1, 0}: FirstStone, {0, 0}: FirstStone, {1, 0}: FirstStone,
		{1, 1}: FirstStone, {1, 2}: FirstStone,
	})
	lines := LinesThrough(b, HexCoord{1, 0})
	require.Equal(t, 3, lines[AxisA].Length)
	require.Equal(t, 3, lines[AxisB].Length)
	require.Equal(t, 1, lines[AxisC].Length)
}
