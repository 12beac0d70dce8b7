package game

// turnState is the part of a match an action can change besides one cell.
type turnState struct {
	current        Player
	neutralizeUsed bool
	lastPlaced     *Placement
	outcome        Outcome
	moveCount      int
}

// historyEntry holds what is needed to reverse one accepted action exactly.
type historyEntry struct {
	move     Move
	player   Player
	coord    HexCoord  // cell the action changed
	prevCell CellState // its content before the action
	prev     turnState
}

// History keeps accepted actions (done) and undone actions available for redo.
// Recording a new action discards the redo tail.
type History struct {
	done   []historyEntry
	undone []historyEntry
	limit  int
}

func newHistory(limit int) *History {
	return &History{limit: limit}
}

// Record appends an accepted action and clears the redo tail.
func (h *History) Record(e historyEntry) {
	h.push(e)
	h.undone = h.undone[:0]
}

// push appends to done without touching the redo tail. When a limit is set the
// oldest entries fall off.
func (h *History) push(e historyEntry) {
	h.done = append(h.done, e)
	if h.limit > 0 && len(h.done) > h.limit {
		dropped := len(h.done) - h.limit
		h.done = append(h.done[:0], h.done[dropped:]...)
	}
}

func (h *History) popDone() (historyEntry, bool) {
	if len(h.done) == 0 {
		return historyEntry{}, false
	}
	e := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	return e, true
}

func (h *History) popUndone() (historyEntry, bool) {
	if len(h.undone) == 0 {
		return historyEntry{}, false
	}
	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	return e, true
}

func (h *History) pushUndone(e historyEntry) {
	h.undone = append(h.undone, e)
}

func (h *History) CanUndo() bool {
	return len(h.done) > 0
}

func (h *History) CanRedo() bool {
	return len(h.undone) > 0
}

// Moves returns the accepted actions still available to undo, oldest first.
func (h *History) Moves() []Move {
	moves := make([]Move, len(h.done))
	for i, e := range h.done {
		moves[i] = e.move
	}
	return moves
}

func (h *History) clone() *History {
	return &History{
		done:   append([]historyEntry(nil), h.done...),
		undone: append([]historyEntry(nil), h.undone...),
		limit:  h.limit,
	}
}
