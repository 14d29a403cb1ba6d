package proto

import "ctchen222/Tic-Tac-Toe-Minimax/internal/game"

// Message types
const (
	TypeMove       = "move"
	TypeReset      = "reset"
	TypeUpdate     = "update"
	TypeAssignment = "assignment"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move reset"`
	Position *int   `json:"position,omitempty" validate:"omitempty,min=0,max=8"`
	First    string `json:"first,omitempty" validate:"omitempty,oneof=player computer random"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type     string        `json:"type" validate:"required"`
	Reason   string        `json:"reason,omitempty"`
	Board    []game.Mark   `json:"board,omitempty"`
	Next     game.Mark     `json:"next,omitempty"`
	Outcome  *game.Outcome `json:"outcome,omitempty"`
	LastMove *int          `json:"lastMove,omitempty"`
}

// PlayerAssignmentMessage informs a player of their assigned mark.
type PlayerAssignmentMessage struct {
	Type         string    `json:"type"`
	PlayerID     string    `json:"playerId,omitempty"`
	GameID       string    `json:"gameId,omitempty"`
	Mark         game.Mark `json:"mark"`
	ComputerMark game.Mark `json:"computerMark"`
}

// NewUpdateMessage builds the "update" message for a game state.
func NewUpdateMessage(state *game.GameStateDTO) *ServerToClientMessage {
	outcome := state.Outcome
	msg := &ServerToClientMessage{
		Type:    TypeUpdate,
		Board:   state.Board.Slice(),
		Outcome: &outcome,
	}
	if !outcome.Over() {
		msg.Next = state.CurrentTurn
	}
	if state.LastMove >= 0 {
		lastMove := state.LastMove
		msg.LastMove = &lastMove
	}
	return msg
}
