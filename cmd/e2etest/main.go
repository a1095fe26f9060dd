// E2E test: walks the two-player join/move/leave scenario against a live relay.
// Usage: go run ./cmd/e2etest -relay ws://localhost:8080/ws
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"
	"time"

	"github.com/gorilla/websocket"
)

var relayURL = flag.String("relay", "ws://localhost:8080/ws", "relay WebSocket URL")

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type dictionary struct {
	C2Dictionary bool              `json:"c2dictionary"`
	Data         map[string]string `json:"data"`
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	alice := dial("alice")
	defer alice.Close()
	bob := dial("bob")
	defer bob.Close()

	send(alice, envelope{Type: "join", Payload: map[string]any{"roomName": "e2e-lobby", "name": "alice"}})
	expect(alice, map[string]string{"alice": "0,0"})

	send(bob, envelope{Type: "join", Payload: map[string]any{"roomName": "e2e-lobby", "name": "bob"}})
	both := map[string]string{"alice": "0,0", "bob": "0,0"}
	expect(alice, both)
	expect(bob, both)

	send(alice, envelope{Type: "move", Payload: map[string]any{"x": 5, "y": 7}})
	moved := map[string]string{"alice": "5,7", "bob": "0,0"}
	expect(alice, moved)
	expect(bob, moved)

	send(alice, envelope{Type: "get_rooms"})
	expect(alice, map[string]string{"e2e-lobby": "2 plays"})

	bob.Close()
	expect(alice, map[string]string{"alice": "5,7"})

	send(alice, envelope{Type: "leave"})
	send(alice, envelope{Type: "get_rooms"})
	expect(alice, map[string]string{})

	log.Println("PASS: scenario complete")
}

func dial(who string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(*relayURL, nil)
	if err != nil {
		log.Fatalf("%s dial %s: %v", who, *relayURL, err)
	}
	log.Printf("%s connected", who)
	return conn
}

func send(conn *websocket.Conn, env envelope) {
	b, _ := json.Marshal(env)
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Fatalf("send: %v", err)
	}
}

func expect(conn *websocket.Conn, want map[string]string) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("read: %v", err)
	}

	var d dictionary
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Fatalf("decode %s: %v", raw, err)
	}
	if !d.C2Dictionary {
		fail("missing c2dictionary marker in %s", raw)
	}
	if !reflect.DeepEqual(d.Data, want) {
		fail("got %v, want %v", d.Data, want)
	}
	log.Printf("ok: %v", d.Data)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FAIL: "+format+"\n", args...)
	os.Exit(1)
}
