package main

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// Client wraps one WebSocket connection and its session state. The session
// fields (roomName, playerName) are guarded by the hub lock, since every
// transition that touches them runs under it; the liveness and close flags
// have their own mutex because the pong handler and the sweep run outside it.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string // stable identity, used as the room map key
	ip   string

	roomName   string // empty while not in any room
	playerName string

	send chan []byte
	ping chan struct{}

	mu     sync.Mutex
	alive  bool
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, ip string) *Client {
	return &Client{
		hub:   hub,
		conn:  conn,
		id:    uuid.NewString(),
		ip:    ip,
		send:  make(chan []byte, sendBufferSize),
		ping:  make(chan struct{}, 1),
		alive: true,
	}
}

func (c *Client) markAlive() {
	c.mu.Lock()
	c.alive = true
	c.mu.Unlock()
}

// checkAlive clears the liveness flag and reports whether the connection had
// answered a probe since the previous sweep.
func (c *Client) checkAlive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.alive
	c.alive = false
	return was
}

func (c *Client) open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// enqueue hands msg to the write pump without blocking. Messages to a closed
// client or past a full buffer are dropped.
func (c *Client) enqueue(msg []byte) {
	if !c.open() {
		return
	}
	select {
	case c.send <- msg:
	default:
		// Client's send buffer full — drop message
	}
}

// probe asks the write pump to send a ping control frame. A probe already
// pending is enough; pings are not queued.
func (c *Client) probe() {
	select {
	case c.ping <- struct{}{}:
	default:
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.markAlive()
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error conn=%s: %v", c.id[:8], err)
			}
			return
		}
		c.hub.handleMessage(c, raw)
	}
}

func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One JSON document per text frame; clients parse frame-per-message.
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-c.ping:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close shuts the outbound side down. Idempotent: the hub may close a client
// during shutdown while its read pump is tearing the same client down.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	close(c.send)
}

// terminate drops the transport out from under the pumps. Used by the
// liveness sweep after cleanup has already run.
func (c *Client) terminate() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
