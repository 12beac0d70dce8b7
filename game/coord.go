package game

import "fmt"

// HexCoord is an axial hex coordinate. The third cube coordinate is s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func (c HexCoord) S() int {
	return -c.Q - c.R
}

func (c HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: c.Q + o.Q, R: c.R + o.R}
}

func (c HexCoord) Neg() HexCoord {
	return HexCoord{Q: -c.Q, R: -c.R}
}

// Distance returns the hex distance from the origin.
func (c HexCoord) Distance() int {
	return (abs(c.Q) + abs(c.R) + abs(c.S())) / 2
}

func (c HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Axis is one of the three line directions, 60 degrees apart.
type Axis int

const (
	AxisA Axis = iota // along q
	AxisB             // along r
	AxisC             // along q = -r
)

// Axes lists every axis lines are measured along.
var Axes = [3]Axis{AxisA, AxisB, AxisC}

var axisSteps = [3]HexCoord{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
}

// Step returns the unit offset in the axis' forward direction. The backward
// direction is its negation.
func (a Axis) Step() HexCoord {
	return axisSteps[a]
}

func (a Axis) String() string {
	switch a {
	case AxisA:
		return "A"
	case AxisB:
		return "B"
	case AxisC:
		return "C"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
