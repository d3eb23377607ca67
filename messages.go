package main

import (
	"encoding/json"
)

// Messages coming from clients. One struct covers every inbound type;
// fields are populated per the "type" discriminator.
type clientMessage struct {
	Type         string          `json:"type"`                   // "create-room", "join-room", "start-game", "next-round", "end-game", "transfer-host", "chat", "signal"
	Name         string          `json:"name,omitempty"`         // create-room / join-room
	MaxPlayers   int             `json:"maxPlayers,omitempty"`   // create-room
	RoomCode     string          `json:"roomCode,omitempty"`     // join-room
	Word         string          `json:"word,omitempty"`         // start-game / next-round
	NewHostIndex *int            `json:"newHostIndex,omitempty"` // transfer-host
	Message      string          `json:"message,omitempty"`      // chat
	Signal       json.RawMessage `json:"signal,omitempty"`       // signal
	TargetID     int             `json:"targetId,omitempty"`     // signal
	TargetIsHost bool            `json:"targetIsHost,omitempty"` // signal
}

// Messages sent to clients

type roomCreatedMessage struct {
	Type       string `json:"type"` // "room-created"
	RoomCode   string `json:"roomCode"`
	MaxPlayers int    `json:"maxPlayers"`
}

type joinedRoomMessage struct {
	Type       string   `json:"type"` // "joined-room"
	RoomCode   string   `json:"roomCode"`
	PlayerID   int      `json:"playerId"`
	Players    []string `json:"players"`
	HostName   string   `json:"hostName"`
	MaxPlayers int      `json:"maxPlayers"`
}

// The host variant carries MaxPlayers; the copy sent to seated players
// leaves it zero so the field is omitted, matching the original client.
type playerJoinedMessage struct {
	Type        string   `json:"type"` // "player-joined"
	PlayerName  string   `json:"playerName"`
	Players     []string `json:"players"`
	PlayerCount int      `json:"playerCount"`
	MaxPlayers  int      `json:"maxPlayers,omitempty"`
}

type playerLeftMessage struct {
	Type        string   `json:"type"` // "player-left"
	PlayerName  string   `json:"playerName"`
	Players     []string `json:"players"`
	PlayerCount int      `json:"playerCount"`
}

// hostRoundMessage is the host's view of a round: the word, who the
// impostor is, and the roster. Type is "game-started" or "new-round".
type hostRoundMessage struct {
	Type          string   `json:"type"`
	Word          string   `json:"word"`
	ImposterIndex int      `json:"imposterIndex"`
	Players       []string `json:"players"`
}

// playerRoundMessage is a single seat's view of a round. Word is null
// for the impostor; it must never leak through any other field.
type playerRoundMessage struct {
	Type       string   `json:"type"`
	IsImposter bool     `json:"isImposter"`
	Word       *string  `json:"word"`
	Players    []string `json:"players"`
}

// gameEndedMessage doubles as the host acknowledgment, which carries
// neither field.
type gameEndedMessage struct {
	Type         string `json:"type"` // "game-ended"
	RevealedWord string `json:"revealedWord,omitempty"`
	ImposterName string `json:"imposterName,omitempty"`
}

type becameHostMessage struct {
	Type       string   `json:"type"` // "became-host"
	Players    []string `json:"players"`
	MaxPlayers int      `json:"maxPlayers"`
}

type becamePlayerMessage struct {
	Type       string   `json:"type"` // "became-player"
	Players    []string `json:"players"`
	HostName   string   `json:"hostName"`
	MaxPlayers int      `json:"maxPlayers"`
}

type hostChangedMessage struct {
	Type        string   `json:"type"` // "host-changed"
	NewHostName string   `json:"newHostName"`
	OldHostName string   `json:"oldHostName"`
	Players     []string `json:"players"`
}

type chatRelayMessage struct {
	Type    string `json:"type"` // "chat"
	From    string `json:"from"`
	Message string `json:"message"`
	IsHost  bool   `json:"isHost"`
}

type signalRelayMessage struct {
	Type       string          `json:"type"` // "signal"
	Signal     json.RawMessage `json:"signal"`
	FromID     *int            `json:"fromId,omitempty"` // nil when the sender is the host
	FromName   string          `json:"fromName"`
	IsFromHost bool            `json:"isFromHost"`
}

type roomClosedMessage struct {
	Type    string `json:"type"` // "room-closed"
	Message string `json:"message"`
}

type errorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}
