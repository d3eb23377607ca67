package main

import (
	"strings"
)

// Membership operations. Each applies one atomic change to a room and
// returns the notifications it produced, in delivery order. Callers
// hold g.mu.

func (g *imposterGame) createRoom(c *client, msg clientMessage) []delivery {
	maxPlayers := msg.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = g.cfg.maxPlayers
	}

	r := g.rooms.create(c, msg.Name, maxPlayers)
	g.registry.bind(c, &membership{
		roomCode: r.code,
		name:     msg.Name,
		isHost:   true,
		seat:     -1,
	})

	logf(g.cfg, "ROOMS: %q created room %s (%d seats)", msg.Name, r.code, maxPlayers)

	return []delivery{{c, roomCreatedMessage{
		Type:       "room-created",
		RoomCode:   r.code,
		MaxPlayers: r.maxPlayers,
	}}}
}

func (g *imposterGame) joinRoom(c *client, msg clientMessage) []delivery {
	// Codes are case-insensitive on the wire.
	r, ok := g.rooms.get(strings.ToUpper(msg.RoomCode))
	if !ok {
		return errorTo(c, errRoomNotFound)
	}
	if len(r.players) >= r.maxPlayers {
		return errorTo(c, errRoomFull)
	}
	if r.gameStarted() {
		return errorTo(c, errGameInProgress)
	}

	seat := len(r.players)
	r.players = append(r.players, c)
	g.registry.bind(c, &membership{
		roomCode: r.code,
		name:     msg.Name,
		seat:     seat,
	})
	r.touch()

	roster := g.registry.roster(r)

	out := []delivery{{c, joinedRoomMessage{
		Type:       "joined-room",
		RoomCode:   r.code,
		PlayerID:   seat,
		Players:    roster,
		HostName:   r.hostName,
		MaxPlayers: r.maxPlayers,
	}}}

	out = append(out, delivery{r.host, playerJoinedMessage{
		Type:        "player-joined",
		PlayerName:  msg.Name,
		Players:     roster,
		PlayerCount: len(r.players),
		MaxPlayers:  r.maxPlayers,
	}})

	for _, p := range r.players {
		if p == c {
			continue
		}
		out = append(out, delivery{p, playerJoinedMessage{
			Type:        "player-joined",
			PlayerName:  msg.Name,
			Players:     roster,
			PlayerCount: len(r.players),
		}})
	}

	logf(g.cfg, "ROOMS: %q joined room %s at seat %d", msg.Name, r.code, seat)

	return out
}

// playerLeave removes a seated player, renumbers the remaining seats,
// and tells everyone left in the room.
func (g *imposterGame) playerLeave(r *room, c *client, name string) []delivery {
	idx := -1
	for i, p := range r.players {
		if p == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	g.registry.renumber(r)
	r.touch()

	roster := g.registry.roster(r)
	left := playerLeftMessage{
		Type:        "player-left",
		PlayerName:  name,
		Players:     roster,
		PlayerCount: len(r.players),
	}

	out := []delivery{{r.host, left}}
	for _, p := range r.players {
		out = append(out, delivery{p, left})
	}

	logf(g.cfg, "ROOMS: %q left room %s", name, r.code)

	return out
}

// closeRoom tears a room down, notifying every remaining player and
// detaching all members. Used for host disconnect and the idle reaper;
// the host disconnect variant has no host left to notify.
func (g *imposterGame) closeRoom(r *room, reason string, includeHost bool) []delivery {
	closed := roomClosedMessage{
		Type:    "room-closed",
		Message: reason,
	}

	var out []delivery
	if includeHost {
		out = append(out, delivery{r.host, closed})
	}
	for _, p := range r.players {
		out = append(out, delivery{p, closed})
	}

	for _, m := range r.everyone() {
		g.registry.drop(m)
	}
	g.rooms.delete(r.code)

	logf(g.cfg, "ROOMS: Room %s closed (%s)", r.code, reason)

	return out
}

func (g *imposterGame) transferHost(c *client, msg clientMessage) []delivery {
	m, ok := g.registry.lookup(c)
	if !ok {
		return nil
	}
	r, ok := g.rooms.get(m.roomCode)
	if !ok {
		return nil
	}
	if !m.isHost {
		return errorTo(c, errNotHost)
	}
	if msg.NewHostIndex == nil || *msg.NewHostIndex < 0 || *msg.NewHostIndex >= len(r.players) {
		return errorTo(c, errInvalidSeat)
	}

	promoted := r.players[*msg.NewHostIndex]
	oldHostName := r.hostName

	// Swap roles: the chosen seat becomes host, the old host takes the
	// last seat, and everything is renumbered.
	r.players = append(r.players[:*msg.NewHostIndex], r.players[*msg.NewHostIndex+1:]...)
	r.players = append(r.players, c)

	promotedMember, _ := g.registry.lookup(promoted)
	promotedMember.isHost = true
	promotedMember.seat = -1

	m.isHost = false
	g.registry.renumber(r)

	r.host = promoted
	r.hostName = promotedMember.name
	r.touch()

	roster := g.registry.roster(r)

	out := []delivery{
		{promoted, becameHostMessage{
			Type:       "became-host",
			Players:    roster,
			MaxPlayers: r.maxPlayers,
		}},
		{c, becamePlayerMessage{
			Type:       "became-player",
			Players:    roster,
			HostName:   r.hostName,
			MaxPlayers: r.maxPlayers,
		}},
	}

	for _, p := range r.players {
		if p == c {
			continue
		}
		out = append(out, delivery{p, hostChangedMessage{
			Type:        "host-changed",
			NewHostName: r.hostName,
			OldHostName: oldHostName,
			Players:     roster,
		}})
	}

	logf(g.cfg, "ROOMS: Host transferred from %q to %q in room %s", oldHostName, r.hostName, r.code)

	return out
}

// disconnect is the implicit leave/close path. A host disconnect
// destroys the room unconditionally; a player disconnect is an
// ordinary leave.
func (g *imposterGame) disconnect(c *client) []delivery {
	m, ok := g.registry.lookup(c)
	if !ok {
		return nil
	}
	g.registry.drop(c)

	r, ok := g.rooms.get(m.roomCode)
	if !ok {
		return nil
	}

	if m.isHost {
		return g.closeRoom(r, "Host has disconnected", false)
	}
	return g.playerLeave(r, c, m.name)
}
