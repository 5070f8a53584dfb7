package proto

import "ctchen222/tic-tac-toe-solo/internal/api/models"

// Message types exchanged over /ws.
const (
	TypeStart   = "start"
	TypeMove    = "move"
	TypeRestart = "restart"
	TypeUpdate  = "update"
	TypeError   = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type       string `json:"type" validate:"required,oneof=start move restart"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,level"`
	Cell       *int   `json:"cell,omitempty"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type   string               `json:"type" validate:"required"`
	Reason string               `json:"reason,omitempty"`
	State  *models.GameResponse `json:"state,omitempty"`
}

func Update(state models.GameResponse) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeUpdate, State: &state}
}

func Error(reason string) *ServerToClientMessage {
	return &ServerToClientMessage{Type: TypeError, Reason: reason}
}
