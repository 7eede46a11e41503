package websocket

import "encoding/json"

// Message - envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type response struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}
