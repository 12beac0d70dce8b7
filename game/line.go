package game

// Line is the maximal run of same-owner stones through a coordinate along one
// axis. From and To are the run's endpoints in the axis' backward and forward
// directions. A Line with Length 0 means the origin was not a stone.
type Line struct {
	Owner  Player
	Axis   Axis
	Length int
	From   HexCoord
	To     HexCoord
}

// ScanLine walks outward from origin in both directions of axis while cells
// keep the origin's owner. Neutral, empty, opposing and off-board cells stop
// the walk.
func ScanLine(b *Board, origin HexCoord, axis Axis) Line {
	owner := b.at(origin).Owner()
	if owner == NoPlayer {
		return Line{Axis: axis, From: origin, To: origin}
	}
	stone := StoneOf(owner)
	step := axis.Step()

	to, forward := walk(b, origin, step, stone)
	from, backward := walk(b, origin, step.Neg(), stone)

	return Line{
		Owner:  owner,
		Axis:   axis,
		Length: 1 + forward + backward,
		From:   from,
		To:     to,
	}
}

func walk(b *Board, origin, step HexCoord, stone CellState) (last HexCoord, steps int) {
	last = origin
	for next := origin.Add(step); b.at(next) == stone; next = next.Add(step) {
		last = next
		steps++
	}
	return last, steps
}

// LinesThrough scans every axis through origin independently.
func LinesThrough(b *Board, origin HexCoord) [3]Line {
	var lines [3]Line
	for i, axis := range Axes {
		lines[i] = ScanLine(b, origin, axis)
	}
	return lines
}
