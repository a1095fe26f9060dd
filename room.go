package main

// Player is one connection's state within a room: the display name given at
// join time and the last reported position.
type Player struct {
	client *Client
	name   string
	x, y   float64
}

// Room groups the players that share broadcast visibility. Rooms carry no
// locking of their own; every mutation and read happens under the owning
// hub's lock, which also makes create/delete-when-empty atomic with respect
// to concurrent joins on the same name.
type Room struct {
	name    string
	players map[string]*Player // keyed by client connection ID
}

func newRoom(name string) *Room {
	return &Room{
		name:    name,
		players: make(map[string]*Player),
	}
}

// setPlayer inserts or overwrites c's player state at the origin. Re-joining
// the same room resets the position.
func (r *Room) setPlayer(c *Client, name string) {
	r.players[c.id] = &Player{client: c, name: name}
}

// movePlayer overwrites c's coordinates in place. Returns false if c has no
// player state here (a stale move racing a removal — ignored by the caller).
func (r *Room) movePlayer(c *Client, x, y float64) bool {
	p, ok := r.players[c.id]
	if !ok {
		return false
	}
	p.x = x
	p.y = y
	return true
}

func (r *Room) removePlayer(c *Client) {
	delete(r.players, c.id)
}

func (r *Room) playerCount() int {
	return len(r.players)
}

// snapshot builds the full-state dictionary for this room: display name to
// "x,y". Names are not deduplicated at join time, so duplicate names collapse
// to a single entry here.
func (r *Room) snapshot() map[string]string {
	data := make(map[string]string, len(r.players))
	for _, p := range r.players {
		data[p.name] = formatCoords(p.x, p.y)
	}
	return data
}

// broadcast enqueues msg to every member whose transport is still open. Sends
// never block: a member with a full buffer has the message dropped rather
// than stalling the mutation that triggered the broadcast.
func (r *Room) broadcast(msg []byte) {
	for _, p := range r.players {
		p.client.enqueue(msg)
	}
}
