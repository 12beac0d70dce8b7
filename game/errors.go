package game

import "errors"

// Rejected input. The match is left unchanged and the caller may retry.
var (
	ErrInvalidMove = errors.New("invalid move")
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrGameOver    = errors.New("game is over")
	ErrNotAllowed  = errors.New("action not allowed")
)

// History misuse.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidSnapshot      = errors.New("invalid snapshot")
)
