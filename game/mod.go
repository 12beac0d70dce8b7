package game

import "fmt"

const (
	WinLength     = 4 // Lines of at least this length win
	LoseLength    = 3 // Lines of exactly this length lose
	DefaultRadius = 4
	MaxRadius     = 256 // Keeps the cell count well inside int range on every platform
)

// Player identifies one of the two sides. The zero value is no player.
type Player int

const (
	NoPlayer Player = iota
	First
	Second
)

func (p Player) Opponent() Player {
	switch p {
	case First:
		return Second
	case Second:
		return First
	}
	return NoPlayer
}

func (p Player) Valid() bool {
	return p == First || p == Second
}

func (p Player) String() string {
	switch p {
	case First:
		return "first"
	case Second:
		return "second"
	}
	return "none"
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "first":
		*p = First
	case "second":
		*p = Second
	case "none", "":
		*p = NoPlayer
	default:
		return fmt.Errorf("unknown player %q", text)
	}
	return nil
}

// OutcomeKind classifies the state of a match.
type OutcomeKind int

const (
	InProgress OutcomeKind = iota
	Win
	Loss
	Draw
)

func (k OutcomeKind) String() string {
	switch k {
	case InProgress:
		return "in_progress"
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("outcome(%d)", int(k))
}

func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for _, candidate := range []OutcomeKind{InProgress, Win, Loss, Draw} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Outcome is the result of a match. Player is set for Win and Loss only.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Player Player      `json:"player,omitempty"`
}

func (o Outcome) Terminal() bool {
	return o.Kind != InProgress
}

// Winner returns the player who won the match, counting a loss as a win for
// the opponent. NoPlayer for draws and unfinished matches.
func (o Outcome) Winner() Player {
	switch o.Kind {
	case Win:
		return o.Player
	case Loss:
		return o.Player.Opponent()
	}
	return NoPlayer
}

func (o Outcome) String() string {
	if o.Kind == Win || o.Kind == Loss {
		return fmt.Sprintf("%s(%s)", o.Kind, o.Player)
	}
	return o.Kind.String()
}

func (o Outcome) valid() bool {
	switch o.Kind {
	case InProgress, Draw:
		return o.Player == NoPlayer
	case Win, Loss:
		return o.Player.Valid()
	}
	return false
}

// ActionType is the kind of action a player submits.
type ActionType int

const (
	PlaceAction ActionType = iota
	NeutralizeAction
)

func (a ActionType) String() string {
	switch a {
	case PlaceAction:
		return "place"
	case NeutralizeAction:
		return "neutralize"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "place":
		*a = PlaceAction
	case "neutralize":
		*a = NeutralizeAction
	default:
		return fmt.Errorf("unknown action %q", text)
	}
	return nil
}

// Move is a legal-move entry or a submitted action. Coord is ignored for
// neutralization, which always targets the opponent's last placement.
type Move struct {
	Action ActionType `json:"action"`
	Coord  HexCoord   `json:"coord"`
}

func PlaceMove(c HexCoord) Move {
	return Move{Action: PlaceAction, Coord: c}
}

func NeutralizeMove() Move {
	return Move{Action: NeutralizeAction}
}

func (m Move) String() string {
	if m.Action == NeutralizeAction {
		return m.Action.String()
	}
	return fmt.Sprintf("%s %s", m.Action, m.Coord)
}

// Placement records a stone placed by a player.
type Placement struct {
	Coord  HexCoord `json:"coord"`
	Player Player   `json:"player"`
}

// Cell pairs a coordinate with its state.
type Cell struct {
	Coord HexCoord  `json:"coord"`
	State CellState `json:"state"`
}

// PublicState is a read-only copy of everything a collaborator may observe.
type PublicState struct {
	Radius              int        `json:"radius"`
	Cells               []Cell     `json:"cells"`
	CurrentPlayer       Player     `json:"current_player"`
	Outcome             Outcome    `json:"outcome"`
	NeutralizeAvailable bool       `json:"neutralize_available"`
	NeutralizeUsed      bool       `json:"neutralize_used"`
	LastPlaced          *Placement `json:"last_placed,omitempty"`
	MoveCount           int        `json:"move_count"`
	CanUndo             bool       `json:"can_undo"`
	CanRedo             bool       `json:"can_redo"`
}

type StateHash uint64
