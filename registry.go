package main

// membership is everything the coordinator knows about a connection:
// which room it belongs to, its display name, and its role. Seat is -1
// for the host.
type membership struct {
	roomCode string
	name     string
	isHost   bool
	seat     int
}

// connRegistry is a side table keyed by connection, so transport
// handles never carry domain state. It has no lock of its own; callers
// serialize access through the coordinator.
type connRegistry struct {
	members map[*client]*membership
}

func newConnRegistry() *connRegistry {
	return &connRegistry{
		members: make(map[*client]*membership),
	}
}

func (reg *connRegistry) bind(c *client, m *membership) {
	reg.members[c] = m
}

func (reg *connRegistry) lookup(c *client) (*membership, bool) {
	m, ok := reg.members[c]
	return m, ok
}

func (reg *connRegistry) drop(c *client) {
	delete(reg.members, c)
}

func (reg *connRegistry) name(c *client) string {
	if m, ok := reg.members[c]; ok {
		return m.name
	}
	return ""
}

// roster lists the display names of a room's seated players, in seat
// order.
func (reg *connRegistry) roster(r *room) []string {
	names := make([]string, 0, len(r.players))
	for _, p := range r.players {
		names = append(names, reg.name(p))
	}
	return names
}

// renumber rewrites seat indices to match positions in the player
// list, closing any gap left by a removal or insertion.
func (reg *connRegistry) renumber(r *room) {
	for i, p := range r.players {
		if m, ok := reg.members[p]; ok {
			m.seat = i
		}
	}
}
