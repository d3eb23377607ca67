package main

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// client is one live websocket connection. Domain state lives in the
// registry, not here.
type client struct {
	id   string
	conn *websocket.Conn
	send chan any
}

// delivery pairs an outbound payload with its recipient. Operations
// return deliveries instead of writing to sockets, so the core can be
// tested without a transport.
type delivery struct {
	to  *client
	msg any
}

func errorTo(c *client, err error) []delivery {
	return []delivery{{c, errorMessage{
		Type:    "error",
		Message: err.Error(),
	}}}
}

// imposterGame coordinates every room. One lock covers the store and
// the registry; each inbound message is a single uninterrupted unit of
// work against them, which is what keeps seat numbering consistent
// under concurrent senders.
type imposterGame struct {
	mu       sync.Mutex
	cfg      *Config
	rooms    *roomStore
	registry *connRegistry
	draw     func(n int) int // impostor draw, swappable in tests
}

func newImposterGame(cfg *Config) *imposterGame {
	return &imposterGame{
		cfg:      cfg,
		rooms:    newRoomStore(),
		registry: newConnRegistry(),
		draw:     rand.IntN,
	}
}

// dispatch routes one inbound frame. Unknown types and frames that
// fail to parse are dropped without a reply; nothing here may take the
// sender's connection down.
func (g *imposterGame) dispatch(c *client, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logf(g.cfg, "ROOMS: Dropping malformed message from %s: %v", c.id, err)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var out []delivery

	switch msg.Type {
	case "create-room":
		out = g.createRoom(c, msg)
	case "join-room":
		out = g.joinRoom(c, msg)
	case "start-game":
		out = g.startGame(c, msg)
	case "next-round":
		out = g.nextRound(c, msg)
	case "end-game":
		out = g.endGame(c, msg)
	case "transfer-host":
		out = g.transferHost(c, msg)
	case "chat":
		out = g.chat(c, msg)
	case "signal":
		out = g.signal(c, msg)
	default:
		logf(g.cfg, "ROOMS: Dropping unknown message type %q from %s", msg.Type, c.id)
		return
	}

	// Sends are non-blocking channel pushes, so delivering inside the
	// critical section is cheap and preserves per-recipient ordering
	// across operations on the same room.
	g.deliver(out)
}

// deliver hands each payload to its recipient's write pump. A slow
// consumer with a full buffer loses the message rather than stalling
// the room.
func (g *imposterGame) deliver(out []delivery) {
	for _, d := range out {
		select {
		case d.to.send <- d.msg:
		default:
			logf(g.cfg, "ROOMS: Dropping message to slow consumer %s", d.to.id)
		}
	}
}

// chat relays to everyone in the sender's room, sender included.
func (g *imposterGame) chat(c *client, msg clientMessage) []delivery {
	m, ok := g.registry.lookup(c)
	if !ok {
		return nil
	}
	r, ok := g.rooms.get(m.roomCode)
	if !ok {
		return nil
	}
	r.touch()

	relay := chatRelayMessage{
		Type:    "chat",
		From:    m.name,
		Message: msg.Message,
		IsHost:  m.isHost,
	}

	var out []delivery
	for _, member := range r.everyone() {
		out = append(out, delivery{member, relay})
	}
	return out
}

// signal forwards WebRTC signaling to a single addressed member. An
// unresolvable target drops the message.
func (g *imposterGame) signal(c *client, msg clientMessage) []delivery {
	m, ok := g.registry.lookup(c)
	if !ok {
		return nil
	}
	r, ok := g.rooms.get(m.roomCode)
	if !ok {
		return nil
	}

	var target *client
	if msg.TargetIsHost {
		target = r.host
	} else if msg.TargetID >= 0 && msg.TargetID < len(r.players) {
		target = r.players[msg.TargetID]
	}
	if target == nil {
		return nil
	}

	relay := signalRelayMessage{
		Type:       "signal",
		Signal:     msg.Signal,
		FromName:   m.name,
		IsFromHost: m.isHost,
	}
	if !m.isHost {
		seat := m.seat
		relay.FromID = &seat
	}

	return []delivery{{target, relay}}
}

// hangup runs the implicit leave/close path for a dropped connection
// and closes its send channel so the write pump exits. Closing under
// the lock means no later operation can race a send into a closed
// channel.
func (g *imposterGame) hangup(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.deliver(g.disconnect(c))
	close(c.send)
}

// reaperLoop closes rooms that have been idle longer than the
// configured session timeout. The original implementation leaked
// abandoned rooms forever.
func (g *imposterGame) reaperLoop(idleTimeout time.Duration) {
	ticker := time.NewTicker(idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-idleTimeout)

		g.mu.Lock()
		for _, r := range g.rooms.rooms {
			if r.lastActive.Before(cutoff) {
				g.deliver(g.closeRoom(r, "Room closed due to inactivity", true))
			}
		}
		g.mu.Unlock()
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(cfg *Config, g *imposterGame) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ROOMS: Upgrade error from %s: %v", realIP(r), err)
			return
		}

		c := &client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan any, 8),
		}

		logf(cfg, "ROOMS: Connection %s opened from %s", c.id, realIP(r))

		go c.writePump()
		c.readPump(g)
	}
}

func (c *client) readPump(g *imposterGame) {
	defer func() {
		g.hangup(c)
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		g.dispatch(c, data)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
