package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()

	cfg := testConfig()
	hub := NewHub(cfg)
	srv := NewServer(cfg, hub)

	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(srv.srv.Handler)

	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return ts, hub
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readDict(t *testing.T, conn *websocket.Conn) map[string]string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var d dictionary
	require.NoError(t, json.Unmarshal(raw, &d))
	require.True(t, d.C2Dictionary)
	return d.Data
}

func sendJSON(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
}

func TestServer_JoinMoveFlow(t *testing.T) {
	ts, _ := startTestServer(t)

	alice := dialWS(t, wsURL(ts, "/ws"))
	sendJSON(t, alice, `{"type":"join","payload":{"roomName":"lobby","name":"alice"}}`)
	require.Equal(t, map[string]string{"alice": "0,0"}, readDict(t, alice))

	bob := dialWS(t, wsURL(ts, "/ws"))
	sendJSON(t, bob, `{"type":"join","payload":{"roomName":"lobby","name":"bob"}}`)

	want := map[string]string{"alice": "0,0", "bob": "0,0"}
	require.Equal(t, want, readDict(t, alice))
	require.Equal(t, want, readDict(t, bob))

	sendJSON(t, alice, `{"type":"move","payload":{"x":5,"y":7}}`)
	want = map[string]string{"alice": "5,7", "bob": "0,0"}
	require.Equal(t, want, readDict(t, alice))
	require.Equal(t, want, readDict(t, bob))

	// bob drops; alice sees the shrunken room.
	require.NoError(t, bob.Close())
	require.Equal(t, map[string]string{"alice": "5,7"}, readDict(t, alice))

	sendJSON(t, alice, `{"type":"get_rooms"}`)
	require.Equal(t, map[string]string{"lobby": "1 plays"}, readDict(t, alice))
}

func TestServer_DisconnectCleansRegistry(t *testing.T) {
	ts, hub := startTestServer(t)

	conn := dialWS(t, wsURL(ts, "/ws"))
	sendJSON(t, conn, `{"type":"join","payload":{"roomName":"lobby","name":"alice"}}`)
	readDict(t, conn)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return hub.RoomCount() == 0 && hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond, "disconnect should clean up room and client")
}

func TestServer_UpgradeAtRoot(t *testing.T) {
	ts, _ := startTestServer(t)

	// Clients pointed at the bare host URL connect through "/".
	conn := dialWS(t, wsURL(ts, "/"))
	sendJSON(t, conn, `{"type":"join","payload":{"roomName":"lobby","name":"alice"}}`)
	require.Equal(t, map[string]string{"alice": "0,0"}, readDict(t, conn))
}

func TestServer_Health(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_IndexPage(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
