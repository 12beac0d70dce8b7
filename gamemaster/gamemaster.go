package gamemaster

import (
	"errors"
	"fmt"
	"hex3taboo/game"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrUnknownMatch = errors.New("unknown match")

const DefaultUpdateBuffer = 16

type HostOption func(h *Host)

// WithUpdateBuffer sets the capacity of each match's update channel.
func WithUpdateBuffer(n int) HostOption {
	return func(h *Host) {
		if n > 0 {
			h.bufferSize = n
		}
	}
}

// WithMatchOptions applies options to every match the host creates or loads.
func WithMatchOptions(options ...game.Option) HostOption {
	return func(h *Host) {
		h.matchOptions = append(h.matchOptions, options...)
	}
}

// Host serves many matches at once. Calls on one match are serialized; calls
// on different matches never wait on each other beyond the registry lookup.
type Host struct {
	mu           sync.RWMutex
	matches      map[string]*session
	bufferSize   int
	matchOptions []game.Option
}

func NewHost(options ...HostOption) *Host {
	h := &Host{
		matches:    map[string]*session{},
		bufferSize: DefaultUpdateBuffer,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// Create starts a new match of the given radius.
func (h *Host) Create(radius int) (string, game.PublicState, error) {
	m, err := game.NewMatch(radius, h.matchOptions...)
	if err != nil {
		return "", game.PublicState{}, err
	}
	id := h.register(m)
	log.Info().Msgf("created match %s with radius %d", id, radius)
	return id, m.State(), nil
}

// Load resumes a match from a snapshot under a fresh id.
func (h *Host) Load(s game.Snapshot) (string, game.PublicState, error) {
	m, err := game.Restore(s, h.matchOptions...)
	if err != nil {
		return "", game.PublicState{}, err
	}
	id := h.register(m)
	log.Info().Msgf("loaded match %s at move %d", id, s.MoveCount)
	return id, m.State(), nil
}

func (h *Host) register(m *game.Match) string {
	id := uuid.New().String()
	s := newSession(id, m, h.bufferSize)

	h.mu.Lock()
	h.matches[id] = s
	h.mu.Unlock()
	return id
}

func (h *Host) session(id string) (*session, error) {
	h.mu.RLock()
	s, ok := h.matches[id]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}
	return s, nil
}

func (h *Host) Place(id string, c game.HexCoord) (game.PublicState, error) {
	return h.Play(id, game.PlaceMove(c))
}

func (h *Host) Neutralize(id string) (game.PublicState, error) {
	return h.Play(id, game.NeutralizeMove())
}

// Play submits a move of either kind to the match.
func (h *Host) Play(id string, move game.Move) (game.PublicState, error) {
	s, err := h.session(id)
	if err != nil {
		return game.PublicState{}, err
	}
	return s.play(move)
}

func (h *Host) Undo(id string) (game.PublicState, error) {
	s, err := h.session(id)
	if err != nil {
		return game.PublicState{}, err
	}
	return s.undo()
}

func (h *Host) Redo(id string) (game.PublicState, error) {
	s, err := h.session(id)
	if err != nil {
		return game.PublicState{}, err
	}
	return s.redo()
}

func (h *Host) State(id string) (game.PublicState, error) {
	s, err := h.session(id)
	if err != nil {
		return game.PublicState{}, err
	}
	return s.state(), nil
}

func (h *Host) LegalMoves(id string) ([]game.Move, error) {
	s, err := h.session(id)
	if err != nil {
		return nil, err
	}
	return s.legalMoves(), nil
}

func (h *Host) Snapshot(id string) (game.Snapshot, error) {
	s, err := h.session(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	return s.snapshot(), nil
}

// Updates returns the channel on which the match publishes every accepted
// action. Updates are dropped when the channel is full. The channel is closed
// by Close.
func (h *Host) Updates(id string) (<-chan Update, error) {
	s, err := h.session(id)
	if err != nil {
		return nil, err
	}
	return s.updateCh, nil
}

// Close removes the match and closes its update channel.
func (h *Host) Close(id string) error {
	h.mu.Lock()
	s, ok := h.matches[id]
	delete(h.matches, id)
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}
	s.close()
	log.Info().Msgf("closed match %s", id)
	return nil
}

// IDs lists the hosted matches in sorted order.
func (h *Host) IDs() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.matches))
	for id := range h.matches {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
