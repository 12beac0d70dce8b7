package gamemaster

import (
	"fmt"
	"sync"
	"testing"

	"hex3taboo/game"

	"github.com/stretchr/testify/require"
)

func TestHostCreate(t *testing.T) {
	h := NewHost()
	id, state, err := h.Create(3)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, 3, state.Radius)
	require.Equal(t, game.First, state.CurrentPlayer)
	require.Equal(t, []string{id}, h.IDs())

	_, _, err = h.Create(0)
	require.ErrorIs(t, err, game.ErrInvalidConfiguration)
	require.Len(t, h.IDs(), 1)
}

func TestHostPlay(t *testing.T) {
	h := NewHost()
	id, _, err := h.Create(4)
	require.NoError(t, err)

	state, err := h.Place(id, game.HexCoord{Q: 0, R: 0})
	require.NoError(t, err)
	require.Equal(t, game.Second, state.CurrentPlayer)

	moves, err := h.LegalMoves(id)
	require.NoError(t, err)
	require.Contains(t, moves, game.NeutralizeMove())

	state, err = h.Neutralize(id)
	require.NoError(t, err)
	require.True(t, state.NeutralizeUsed)

	_, err = h.Place(id, game.HexCoord{Q: 0, R: 0})
	require.ErrorIs(t, err, game.ErrInvalidMove)

	state, err = h.Undo(id)
	require.NoError(t, err)
	require.False(t, state.NeutralizeUsed)
	state, err = h.Redo(id)
	require.NoError(t, err)
	require.True(t, state.NeutralizeUsed)

	got, err := h.State(id)
	require.NoError(t, err)
	require.Equal(t, state, got)
}

func TestHostUnknownMatch(t *testing.T) {
	h := NewHost()

	_, err := h.Place("missing", game.HexCoord{})
	require.ErrorIs(t, err, ErrUnknownMatch)
	_, err = h.Neutralize("missing")
	require.ErrorIs(t, err, ErrUnknownMatch)
	_, err = h.Undo("missing")
	require.ErrorIs(t, err, ErrUnknownMatch)
	_, err = h.Redo("missing")
	require.ErrorIs(t, err, ErrUnknownMatch)
	_, err = h.State("missing")
	require.ErrorIs(t, err, ErrUnknownMatch)
	_, err = h.LegalMoves("missing")
	require.ErrorIs(t, err, ErrUnknownMatch)
	_, err = h.Snapshot("missing")
	require.ErrorIs(t, err, ErrUnknownMatch)
	_, err = h.Updates("missing")
	require.ErrorIs(t, err, ErrUnknownMatch)
	require.ErrorIs(t, h.Close("missing"), ErrUnknownMatch)
}

func TestHostUpdates(t *testing.T) {
	h := NewHost()
	id, _, err := h.Create(2)
	require.NoError(t, err)
	updates, err := h.Updates(id)
	require.NoError(t, err)

	_, err = h.Place(id, game.HexCoord{Q: 1, R: 0})
	require.NoError(t, err)
	_, err = h.Place(id, game.HexCoord{Q: 0, R: 0})
	require.NoError(t, err)
	_, err = h.Undo(id)
	require.NoError(t, err)

	u := <-updates
	require.Equal(t, id, u.MatchID)
	require.Equal(t, Played, u.Kind)
	require.Equal(t, game.PlaceMove(game.HexCoord{Q: 1, R: 0}), u.Move)
	require.Equal(t, 1, u.State.MoveCount)

	u = <-updates
	require.Equal(t, Played, u.Kind)
	require.Equal(t, 2, u.State.MoveCount)

	u = <-updates
	require.Equal(t, Undone, u.Kind)
	require.Equal(t, 1, u.State.MoveCount)

	// Rejected actions publish nothing.
	_, err = h.Place(id, game.HexCoord{Q: 1, R: 0})
	require.Error(t, err)
	require.Empty(t, updates)

	require.NoError(t, h.Close(id))
	_, ok := <-updates
	require.False(t, ok, "closing the match closes its updates")
	require.Empty(t, h.IDs())
}

func TestHostDropsUpdatesWhenBufferIsFull(t *testing.T) {
	h := NewHost(WithUpdateBuffer(1))
	id, _, err := h.Create(3)
	require.NoError(t, err)

	for _, c := range []game.HexCoord{{Q: 0, R: 0}, {Q: 2, R: 0}, {Q: 0, R: 2}} {
		_, err := h.Place(id, c)
		require.NoError(t, err, "a full buffer must not block play")
	}

	updates, err := h.Updates(id)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	u := <-updates
	require.Equal(t, 1, u.State.MoveCount, "the oldest update is kept")
}

func TestHostSnapshotAndLoad(t *testing.T) {
	h := NewHost()
	id, _, err := h.Create(3)
	require.NoError(t, err)
	_, err = h.Place(id, game.HexCoord{Q: -1, R: 1})
	require.NoError(t, err)

	s, err := h.Snapshot(id)
	require.NoError(t, err)

	loaded, state, err := h.Load(s)
	require.NoError(t, err)
	require.NotEqual(t, id, loaded)
	require.Equal(t, 1, state.MoveCount)
	require.Equal(t, game.Second, state.CurrentPlayer)
	require.Len(t, h.IDs(), 2)

	// The two matches are independent.
	_, err = h.Neutralize(loaded)
	require.NoError(t, err)
	original, err := h.State(id)
	require.NoError(t, err)
	require.False(t, original.NeutralizeUsed)

	s.Radius = 0
	_, _, err = h.Load(s)
	require.ErrorIs(t, err, game.ErrInvalidSnapshot)
}

func TestHostMatchOptions(t *testing.T) {
	h := NewHost(WithMatchOptions(game.WithHistoryLimit(1)))
	id, _, err := h.Create(3)
	require.NoError(t, err)

	_, err = h.Place(id, game.HexCoord{Q: 0, R: 0})
	require.NoError(t, err)
	_, err = h.Place(id, game.HexCoord{Q: 2, R: 0})
	require.NoError(t, err)

	_, err = h.Undo(id)
	require.NoError(t, err)
	_, err = h.Undo(id)
	require.ErrorIs(t, err, game.ErrNothingToUndo)
}

func TestHostConcurrentAccess(t *testing.T) {
	h := NewHost(WithUpdateBuffer(1))
	id, _, err := h.Create(4)
	require.NoError(t, err)

	// Every goroutine races for the same cell; exactly one wins it.
	var wg sync.WaitGroup
	accepted := make(chan struct{}, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Place(id, game.HexCoord{Q: 1, R: 1}); err == nil {
				accepted <- struct{}{}
			}
			_, _ = h.State(id)
		}()
	}

	// Matches hosted side by side progress independently.
	others := make([]string, 8)
	for i := range others {
		others[i], _, err = h.Create(2)
		require.NoError(t, err)
	}
	for i, other := range others {
		wg.Add(1)
		go func(i int, other string) {
			defer wg.Done()
			for {
				moves, err := h.LegalMoves(other)
				if err != nil || len(moves) == 0 {
					return
				}
				if _, err := h.Play(other, moves[i%len(moves)]); err != nil {
					panic(fmt.Sprintf("match %s: %v", other, err))
				}
			}
		}(i, other)
	}
	wg.Wait()
	close(accepted)

	require.Len(t, accepted, 1)
	state, err := h.State(id)
	require.NoError(t, err)
	require.Equal(t, 1, state.MoveCount)

	for _, other := range others {
		state, err := h.State(other)
		require.NoError(t, err)
		require.True(t, state.Outcome.Terminal())
	}
}
