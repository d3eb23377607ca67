package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartGameRequiresFullRoom(t *testing.T) {
	g, host, _, code := setupRoom(t, 3, 2)

	out := g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})

	require.Len(t, out, 1)
	assert.Equal(t, errorMessage{Type: "error", Message: "Need 3 players to start the game"}, out[0].msg)

	r, _ := g.rooms.get(code)
	assert.Equal(t, phaseLobby, r.phase)
}

func TestStartGameRequiresHost(t *testing.T) {
	g, _, players, code := setupRoom(t, 2, 2)

	out := g.startGame(players[0], clientMessage{Type: "start-game", Word: "Banana"})

	require.Len(t, out, 1)
	assert.Equal(t, errorMessage{Type: "error", Message: "Only the host can do that"}, out[0].msg)

	r, _ := g.rooms.get(code)
	assert.Equal(t, phaseLobby, r.phase)
}

func TestStartGameViews(t *testing.T) {
	g, host, players, code := setupRoom(t, 3, 3)
	g.draw = func(int) int { return 1 }

	out := g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})

	r, _ := g.rooms.get(code)
	assert.Equal(t, phaseInRound, r.phase)
	assert.Equal(t, "Banana", r.currentWord)
	assert.Equal(t, 1, r.imposterIdx)

	hostView := payloadsFor(out, host)[0].(hostRoundMessage)
	assert.Equal(t, "game-started", hostView.Type)
	assert.Equal(t, "Banana", hostView.Word)
	assert.Equal(t, 1, hostView.ImposterIndex)
	assert.Equal(t, []string{"Bob", "Cara", "Dee"}, hostView.Players)

	for seat, p := range players {
		view := payloadsFor(out, p)[0].(playerRoundMessage)
		assert.Equal(t, "game-started", view.Type)
		assert.Equal(t, []string{"Bob", "Cara", "Dee"}, view.Players)
		if seat == 1 {
			assert.True(t, view.IsImposter)
			assert.Nil(t, view.Word)
		} else {
			assert.False(t, view.IsImposter)
			require.NotNil(t, view.Word)
			assert.Equal(t, "Banana", *view.Word)
		}
	}
}

func TestExactlyOneImposterPerRound(t *testing.T) {
	g, host, players, _ := setupRoom(t, 3, 3)

	out := g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})

	imposters := 0
	for _, p := range players {
		view := payloadsFor(out, p)[0].(playerRoundMessage)
		if view.IsImposter {
			imposters++
			assert.Nil(t, view.Word)
		} else {
			require.NotNil(t, view.Word)
			assert.Equal(t, "Banana", *view.Word)
		}
	}
	assert.Equal(t, 1, imposters)
}

// The impostor's serialized payload must not contain the word through
// any field.
func TestWordNeverLeaksToImposter(t *testing.T) {
	for seat := range 3 {
		g, host, players, _ := setupRoom(t, 3, 3)
		g.draw = func(int) int { return seat }

		out := g.startGame(host, clientMessage{Type: "start-game", Word: "Xylophone"})

		raw, err := json.Marshal(payloadsFor(out, players[seat])[0])
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "Xylophone")
		assert.Contains(t, string(raw), `"word":null`)
	}
}

func TestNextRound(t *testing.T) {
	g, host, players, code := setupRoom(t, 3, 3)

	t.Run("before any round", func(t *testing.T) {
		out := g.nextRound(host, clientMessage{Type: "next-round", Word: "Pear"})
		require.Len(t, out, 1)
		assert.Equal(t, errorMessage{Type: "error", Message: "No round in progress"}, out[0].msg)
	})

	g.draw = func(int) int { return 0 }
	g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})

	t.Run("redraws independently", func(t *testing.T) {
		g.draw = func(int) int { return 2 }
		out := g.nextRound(host, clientMessage{Type: "next-round", Word: "Pear"})

		r, _ := g.rooms.get(code)
		assert.Equal(t, "Pear", r.currentWord)
		assert.Equal(t, 2, r.imposterIdx)

		hostView := payloadsFor(out, host)[0].(hostRoundMessage)
		assert.Equal(t, "new-round", hostView.Type)
		assert.Equal(t, "Pear", hostView.Word)

		view := payloadsFor(out, players[0])[0].(playerRoundMessage)
		assert.Equal(t, "new-round", view.Type)
		assert.False(t, view.IsImposter)
	})
}

func TestEndGameReveal(t *testing.T) {
	g, host, players, code := setupRoom(t, 3, 3)
	g.draw = func(int) int { return 2 }
	g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})

	out := g.endGame(host, clientMessage{Type: "end-game"})

	r, _ := g.rooms.get(code)
	assert.Equal(t, phaseRevealed, r.phase)
	assert.False(t, r.gameStarted())

	for _, p := range players {
		ended := payloadsFor(out, p)[0].(gameEndedMessage)
		assert.Equal(t, "game-ended", ended.Type)
		assert.Equal(t, "Banana", ended.RevealedWord)
		assert.Equal(t, "Dee", ended.ImposterName)
	}

	// Host acknowledgment carries neither field on the wire.
	raw, err := json.Marshal(payloadsFor(out, host)[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"game-ended"}`, string(raw))
}

func TestEndGameRequiresActiveRound(t *testing.T) {
	g, host, _, _ := setupRoom(t, 2, 2)

	out := g.endGame(host, clientMessage{Type: "end-game"})

	require.Len(t, out, 1)
	assert.Equal(t, errorMessage{Type: "error", Message: "No round in progress"}, out[0].msg)
}

func TestRevealedRoomCanStartAgain(t *testing.T) {
	g, host, _, _ := setupRoom(t, 2, 2)
	g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})
	g.endGame(host, clientMessage{Type: "end-game"})

	out := g.startGame(host, clientMessage{Type: "start-game", Word: "Pear"})

	hostView := payloadsFor(out, host)[0].(hostRoundMessage)
	assert.Equal(t, "game-started", hostView.Type)
	assert.Equal(t, "Pear", hostView.Word)
}

// A leave between start and reveal can strand the impostor index past
// the end of the player list; the reveal must not resolve it to the
// wrong player or panic.
func TestRevealWithStaleImposterIndex(t *testing.T) {
	g, host, players, _ := setupRoom(t, 3, 3)
	g.draw = func(int) int { return 2 }
	g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})

	g.disconnect(players[2])

	out := g.endGame(host, clientMessage{Type: "end-game"})

	for _, p := range players[:2] {
		ended := payloadsFor(out, p)[0].(gameEndedMessage)
		assert.Equal(t, "Banana", ended.RevealedWord)
		assert.Empty(t, ended.ImposterName)
	}
}

// Over many rounds, every seat should be drawn as impostor at a rate
// converging to 1/k.
func TestImposterDrawIsUniform(t *testing.T) {
	g, host, _, _ := setupRoom(t, 4, 4)

	const rounds = 4000
	counts := make([]int, 4)

	for range rounds {
		out := g.startGame(host, clientMessage{Type: "start-game", Word: "Banana"})
		hostView := payloadsFor(out, host)[0].(hostRoundMessage)
		require.GreaterOrEqual(t, hostView.ImposterIndex, 0)
		require.Less(t, hostView.ImposterIndex, 4)
		counts[hostView.ImposterIndex]++
	}

	// Expected 1000 per seat; bounds are ~7 standard deviations out.
	for seat, n := range counts {
		assert.InDelta(t, rounds/4, n, 200, "seat %d drawn %d times", seat, n)
	}
}
