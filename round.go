package main

// Round engine. A round assigns the secret word and draws one impostor
// seat; the host sees everything, each player sees only their own role,
// and the word is withheld from the impostor.

// startRound draws a fresh impostor and builds the per-recipient round
// views. msgType is "game-started" or "new-round"; the payloads are
// otherwise identical. The draw covers [0, maxPlayers), independent of
// any previous draw.
func (g *imposterGame) startRound(r *room, msgType, word string) []delivery {
	r.currentWord = word
	r.imposterIdx = g.draw(r.maxPlayers)
	r.phase = phaseInRound
	r.touch()

	roster := g.registry.roster(r)

	out := []delivery{{r.host, hostRoundMessage{
		Type:          msgType,
		Word:          word,
		ImposterIndex: r.imposterIdx,
		Players:       roster,
	}}}

	for seat, p := range r.players {
		view := playerRoundMessage{
			Type:       msgType,
			IsImposter: seat == r.imposterIdx,
			Players:    roster,
		}
		if !view.IsImposter {
			w := word
			view.Word = &w
		}
		out = append(out, delivery{p, view})
	}

	return out
}

// revealRound reads back the round's word and the display name at the
// impostor's seat. Membership may have changed since the draw, so the
// index can be stale; an unresolvable seat reveals an empty name, as
// the original behavior did.
func (g *imposterGame) revealRound(r *room) (string, string) {
	imposterName := ""
	if r.imposterIdx >= 0 && r.imposterIdx < len(r.players) {
		imposterName = g.registry.name(r.players[r.imposterIdx])
	}
	return r.currentWord, imposterName
}

// hostRoomOp resolves the sender's room for a host-only operation,
// replying with an explicit error when a seated player tries it.
func (g *imposterGame) hostRoomOp(c *client) (*room, []delivery) {
	m, ok := g.registry.lookup(c)
	if !ok {
		return nil, nil
	}
	r, ok := g.rooms.get(m.roomCode)
	if !ok {
		return nil, nil
	}
	if !m.isHost {
		return nil, errorTo(c, errNotHost)
	}
	return r, nil
}

func (g *imposterGame) startGame(c *client, msg clientMessage) []delivery {
	r, errOut := g.hostRoomOp(c)
	if r == nil {
		return errOut
	}
	if len(r.players) != r.maxPlayers {
		return errorTo(c, errCapacity(r.maxPlayers))
	}

	logf(g.cfg, "ROOMS: Game started in room %s", r.code)

	return g.startRound(r, "game-started", msg.Word)
}

func (g *imposterGame) nextRound(c *client, msg clientMessage) []delivery {
	r, errOut := g.hostRoomOp(c)
	if r == nil {
		return errOut
	}
	if !r.gameStarted() {
		return errorTo(c, errNoRound)
	}

	logf(g.cfg, "ROOMS: New round in room %s", r.code)

	return g.startRound(r, "new-round", msg.Word)
}

func (g *imposterGame) endGame(c *client, msg clientMessage) []delivery {
	r, errOut := g.hostRoomOp(c)
	if r == nil {
		return errOut
	}
	if !r.gameStarted() {
		return errorTo(c, errNoRound)
	}

	r.phase = phaseRevealed
	r.touch()

	word, imposterName := g.revealRound(r)

	var out []delivery
	for _, p := range r.players {
		out = append(out, delivery{p, gameEndedMessage{
			Type:         "game-ended",
			RevealedWord: word,
			ImposterName: imposterName,
		}})
	}

	// The host gets a bare acknowledgment.
	out = append(out, delivery{c, gameEndedMessage{
		Type: "game-ended",
	}})

	logf(g.cfg, "ROOMS: Game ended in room %s, word was %q", r.code, word)

	return out
}
