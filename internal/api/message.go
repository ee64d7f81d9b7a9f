// Package api is the JSON/websocket transport boundary (§6.1's "FFI at the
// edge, typed Go in the core"): wire DTOs translate to and from the engine's
// battle.Action/battle.View, and a Hub/Client pair fans inbound websocket
// frames out to the session they target. Grounded on the teacher's
// cmd/web-demo/main.go Hub/Client/WSMessage pattern, generalized from one
// demo game to many concurrent sessions.
package api

import "encoding/json"

// Message is the envelope every websocket frame carries in both
// directions, mirroring the teacher's WSMessage.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Player    string          `json:"player,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Inbound message types a client may send.
const (
	MsgCreateSession = "create_session"
	MsgJoinSession   = "join_session"
	MsgSubmitAction  = "submit_action"
	MsgRequestView   = "request_view"
	MsgSaveSession   = "save_session"
	MsgLoadSession   = "load_session"
)

// Outbound message types the hub may send.
const (
	MsgView  = "view"
	MsgError = "error"
	MsgSaved = "saved"
)

// errorPayload is the Data payload of an MsgError frame.
type errorPayload struct {
	Message string `json:"message"`
}

func encode(msgType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Data: data})
}

func encodeError(err error) []byte {
	out, marshalErr := encode(MsgError, errorPayload{Message: err.Error()})
	if marshalErr != nil {
		return []byte(`{"type":"error","data":{"message":"internal error"}}`)
	}
	return out
}
