package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"
)

// Error text doubles as the wire "error" payload shown to the sender,
// so it keeps client-facing casing.
var (
	errRoomNotFound   = errors.New("Room not found")
	errRoomFull       = errors.New("Room is full")
	errGameInProgress = errors.New("Game already in progress")
	errInvalidSeat    = errors.New("Invalid player selected")
	errNotHost        = errors.New("Only the host can do that")
	errNoRound        = errors.New("No round in progress")
)

func errCapacity(needed int) error {
	return fmt.Errorf("Need %d players to start the game", needed)
}

// roomPhase tracks where a room is in its lifecycle. Closing is not a
// phase: a closed room is simply gone from the store.
type roomPhase int

const (
	phaseLobby roomPhase = iota
	phaseInRound
	phaseRevealed
)

// room is one game session. The host is never part of players; seat
// index equals position in players and is renumbered on every
// membership change.
type room struct {
	code        string
	host        *client
	hostName    string
	players     []*client
	maxPlayers  int
	phase       roomPhase
	currentWord string
	imposterIdx int // -1 until the first round has run
	lastActive  time.Time
}

func (r *room) gameStarted() bool {
	return r.phase == phaseInRound
}

func (r *room) touch() {
	r.lastActive = time.Now()
}

// everyone returns the host plus all seated players, host first.
func (r *room) everyone() []*client {
	members := make([]*client, 0, len(r.players)+1)
	members = append(members, r.host)
	members = append(members, r.players...)
	return members
}

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength   = 6
)

// roomStore maps room codes to rooms. It has no lock of its own;
// callers serialize access through the coordinator.
type roomStore struct {
	rooms map[string]*room
}

func newRoomStore() *roomStore {
	return &roomStore{
		rooms: make(map[string]*room),
	}
}

// newCode draws a random 6-character code and re-draws until it does
// not collide with an existing room.
func (s *roomStore) newCode() string {
	for {
		buf := make([]byte, roomCodeLength)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, roomCodeLength)
		for i := range out {
			out[i] = roomCodeAlphabet[int(buf[i])%len(roomCodeAlphabet)]
		}
		code := string(out)

		if _, exists := s.rooms[code]; !exists {
			return code
		}
	}
}

func (s *roomStore) create(host *client, hostName string, maxPlayers int) *room {
	r := &room{
		code:        s.newCode(),
		host:        host,
		hostName:    hostName,
		maxPlayers:  maxPlayers,
		phase:       phaseLobby,
		imposterIdx: -1,
		lastActive:  time.Now(),
	}
	s.rooms[r.code] = r
	return r
}

func (s *roomStore) get(code string) (*room, bool) {
	r, ok := s.rooms[code]
	return r, ok
}

func (s *roomStore) delete(code string) {
	delete(s.rooms, code)
}
