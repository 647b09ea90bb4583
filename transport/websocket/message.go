package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
)

const (
	ActionState = "game:state"
	ActionPlay  = "game:play"
	ActionJump  = "game:jump"
	ActionSort  = "game:sort"
	ActionNew   = "game:new"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
	Move *int `json:"move,omitempty"`
}

type ResponsePayload struct {
	SessionID string            `json:"session_id,omitempty"`
	Screen    *presenter.Screen `json:"screen,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}
