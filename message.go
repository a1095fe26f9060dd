package main

import (
	"encoding/json"
	"strconv"
)

// Inbound message types understood by the relay.
const (
	msgJoin     = "join"
	msgMove     = "move"
	msgLeave    = "leave"
	msgGetRooms = "get_rooms"
)

// Envelope is the inbound wire format: a type tag plus a tag-dependent payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type joinPayload struct {
	RoomName string `json:"roomName"`
	Name     string `json:"name"`
}

type movePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// dictionary is the outbound wire format. The c2dictionary marker lets a
// Construct 2 Dictionary object load the data map directly.
type dictionary struct {
	C2Dictionary bool              `json:"c2dictionary"`
	Data         map[string]string `json:"data"`
}

func encodeDictionary(data map[string]string) []byte {
	if data == nil {
		data = map[string]string{}
	}
	b, _ := json.Marshal(dictionary{C2Dictionary: true, Data: data})
	return b
}

// formatCoords renders a coordinate pair in shortest decimal form, matching
// what clients already parse ("5,7", "2.5,-3").
func formatCoords(x, y float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64) + "," + strconv.FormatFloat(y, 'g', -1, 64)
}
