package gamemaster

import (
	"hex3taboo/game"
	"sync"

	"github.com/rs/zerolog/log"
)

type UpdateKind int

const (
	Played UpdateKind = iota
	Undone
	Redone
)

func (k UpdateKind) String() string {
	switch k {
	case Played:
		return "played"
	case Undone:
		return "undone"
	case Redone:
		return "redone"
	}
	return "unknown"
}

// Update reports an accepted action. Move is only set for Played.
type Update struct {
	MatchID string
	Kind    UpdateKind
	Move    game.Move
	State   game.PublicState
	Hash    game.StateHash
}

// session owns one match. Every access goes through its mutex.
type session struct {
	id       string
	mu       sync.Mutex
	match    *game.Match
	updateCh chan Update
	closed   bool
}

func newSession(id string, m *game.Match, bufferSize int) *session {
	return &session{
		id:       id,
		match:    m,
		updateCh: make(chan Update, bufferSize),
	}
}

func (s *session) play(move game.Move) (game.PublicState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.match.Play(move)
	if err != nil {
		return game.PublicState{}, err
	}
	s.publish(Played, move, state)
	return state, nil
}

func (s *session) undo() (game.PublicState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.match.Undo()
	if err != nil {
		return game.PublicState{}, err
	}
	s.publish(Undone, game.Move{}, state)
	return state, nil
}

func (s *session) redo() (game.PublicState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.match.Redo()
	if err != nil {
		return game.PublicState{}, err
	}
	s.publish(Redone, game.Move{}, state)
	return state, nil
}

func (s *session) state() game.PublicState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.State()
}

func (s *session) legalMoves() []game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.LegalMoves()
}

func (s *session) snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Snapshot()
}

// publish must be called with s.mu held. It never blocks.
func (s *session) publish(kind UpdateKind, move game.Move, state game.PublicState) {
	if s.closed {
		return
	}
	u := Update{MatchID: s.id, Kind: kind, Move: move, State: state, Hash: s.match.Hash()}
	select {
	case s.updateCh <- u:
	default:
		log.Warn().Msgf("dropped %s update for match %s at move %d: buffer full", kind, s.id, state.MoveCount)
	}
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.updateCh)
	}
}
