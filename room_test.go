package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCodeFormat(t *testing.T) {
	s := newRoomStore()

	for range 100 {
		assert.Regexp(t, `^[A-Z0-9]{6}$`, s.newCode())
	}
}

// Creating many rooms in one store exercises the collision re-draw
// loop; every stored code must stay unique.
func TestRoomCodesUnique(t *testing.T) {
	s := newRoomStore()
	host := newTestClient("host")

	const n = 1000
	for range n {
		s.create(host, "Alice", 4)
	}

	assert.Len(t, s.rooms, n)
}

func TestRoomStoreLifecycle(t *testing.T) {
	s := newRoomStore()
	host := newTestClient("host")

	r := s.create(host, "Alice", 4)

	got, ok := s.get(r.code)
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, phaseLobby, got.phase)
	assert.False(t, got.lastActive.IsZero())

	s.delete(r.code)
	_, ok = s.get(r.code)
	assert.False(t, ok)
}

func TestRoomEveryone(t *testing.T) {
	g, host, players, code := setupRoom(t, 3, 3)

	r, ok := g.rooms.get(code)
	require.True(t, ok)

	members := r.everyone()
	require.Len(t, members, 4)
	assert.Same(t, host, members[0])
	for i, p := range players {
		assert.Same(t, p, members[i+1])
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	g, _, _, code := setupRoom(t, 2, 2)

	r, _ := g.rooms.get(code)

	for range 5 {
		p := newTestClient("extra")
		g.joinRoom(p, clientMessage{Type: "join-room", RoomCode: code, Name: "Eve"})
		assert.LessOrEqual(t, len(r.players), r.maxPlayers)
	}
}
