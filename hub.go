package main

import (
	"context"
	"log"
	"sync"
	"time"
)

// Hub owns the room registry and the set of open connections, and runs the
// liveness sweep. A single mutex serializes every registry and room mutation,
// so concurrent joins, moves and leaves on one room never interleave and a
// room is never observable empty-but-present or deleted-while-occupied.
type Hub struct {
	cfg *Config

	mu      sync.Mutex
	rooms   map[string]*Room
	clients map[*Client]struct{}
}

// RoomInfo is one row of the registry snapshot.
type RoomInfo struct {
	Name    string
	Players int
}

func NewHub(cfg *Config) *Hub {
	return &Hub{
		cfg:     cfg,
		rooms:   make(map[string]*Room),
		clients: make(map[*Client]struct{}),
	}
}

// Register adds a freshly upgraded connection to the sweep domain and starts
// its pumps. The connection joins no room until it sends a join message.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.ReadPump()
	go c.WritePump()
}

// Disconnect removes c from the hub entirely: leave-effect cleanup first,
// then the handle is discarded. Safe to call more than once; callers race
// (read pump teardown vs. liveness termination vs. shutdown) and the loser
// finds the client already gone.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	h.leaveLocked(c)
	h.mu.Unlock()

	c.Close()
}

func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case <-ticker.C:
			h.sweepLiveness()
		}
	}
}

// sweepLiveness reclaims dead connections on a two-strike scheme: a client
// that has not answered a probe since the previous sweep is terminated, and
// every survivor has its flag cleared and a fresh probe sent. A connection
// stays up only by answering at least once per sweep period.
func (h *Hub) sweepLiveness() {
	h.mu.Lock()
	var dead []*Client
	for c := range h.clients {
		if !c.checkAlive() {
			dead = append(dead, c)
			continue
		}
		c.probe()
	}
	h.mu.Unlock()

	for _, c := range dead {
		log.Printf("conn=%s failed liveness check, terminating", c.id[:8])
		h.Disconnect(c)
		c.terminate()
	}
}

func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ListRooms snapshots the registry as (name, occupant count) pairs, in no
// particular order.
func (h *Hub) ListRooms() []RoomInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	infos := make([]RoomInfo, 0, len(h.rooms))
	for name, room := range h.rooms {
		infos = append(infos, RoomInfo{Name: name, Players: room.playerCount()})
	}
	return infos
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.rooms = make(map[string]*Room)
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
		c.terminate()
	}
}
