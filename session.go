package main

import (
	"encoding/json"
	"fmt"
	"log"
)

// handleMessage dispatches one inbound envelope for c. Unparseable input is
// logged and dropped without touching session state; unknown types and
// incomplete payloads are ignored silently. No failure is ever reported back
// to the sender.
func (h *Hub) handleMessage(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("invalid message from conn=%s: %v", c.id[:8], err)
		return
	}

	switch env.Type {
	case msgJoin:
		var p joinPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("invalid join payload from conn=%s: %v", c.id[:8], err)
			return
		}
		h.Join(c, p.RoomName, p.Name)

	case msgMove:
		var p movePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("invalid move payload from conn=%s: %v", c.id[:8], err)
			return
		}
		h.Move(c, p.X, p.Y)

	case msgLeave:
		h.Leave(c)

	case msgGetRooms:
		h.SendRoomList(c)

	default:
		// unrecognized type, ignore
	}
}

// Join puts c into roomName as name, creating the room if needed. A client
// already in a room leaves it first, so a connection is a member of at most
// one room at any instant. Ignored when either field is empty.
func (h *Hub) Join(c *Client, roomName, name string) {
	if roomName == "" || name == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(c)

	room, ok := h.rooms[roomName]
	if !ok {
		room = newRoom(roomName)
		h.rooms[roomName] = room
		log.Printf("room %q created", roomName)
	}

	c.roomName = roomName
	c.playerName = name
	room.setPlayer(c, name)
	log.Printf("player %q joined %q", name, roomName)

	room.broadcast(encodeDictionary(room.snapshot()))
}

// Move overwrites c's position and broadcasts the room. A move from a client
// that is not (or no longer) in a room is a stale message, not an error, and
// is dropped.
func (h *Hub) Move(c *Client, x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.roomName == "" {
		return
	}
	room, ok := h.rooms[c.roomName]
	if !ok {
		return
	}
	if !room.movePlayer(c, x, y) {
		return
	}

	room.broadcast(encodeDictionary(room.snapshot()))
}

// Leave removes c from its current room, if any.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	h.leaveLocked(c)
	h.mu.Unlock()
}

// leaveLocked is the shared leave effect: drop c's player state, delete the
// room the moment it empties, otherwise show the remaining members the new
// state. No-op for an unjoined client. Callers hold h.mu.
func (h *Hub) leaveLocked(c *Client) {
	if c.roomName == "" {
		return
	}

	roomName := c.roomName
	c.roomName = ""

	room, ok := h.rooms[roomName]
	if !ok {
		return
	}

	room.removePlayer(c)
	log.Printf("player %q left %q", c.playerName, roomName)

	if room.playerCount() == 0 {
		delete(h.rooms, roomName)
		log.Printf("room %q deleted", roomName)
		return
	}
	room.broadcast(encodeDictionary(room.snapshot()))
}

// SendRoomList answers a get_rooms request with the registry snapshot as a
// dictionary of room name to occupant count. Sent to the requester only.
func (h *Hub) SendRoomList(c *Client) {
	h.mu.Lock()
	data := make(map[string]string, len(h.rooms))
	for name, room := range h.rooms {
		data[name] = fmt.Sprintf("%d plays", room.playerCount())
	}
	h.mu.Unlock()

	c.enqueue(encodeDictionary(data))
}
