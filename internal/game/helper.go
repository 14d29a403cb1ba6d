package game

import "math/rand/v2"

// Redis hash fields of a stored game.
const (
	FieldBoard      = "board"
	FieldPlayerID   = "player_id"
	FieldNextTurn   = "next_turn"
	FieldStatus     = "status"
	FieldWinner     = "winner"
	FieldFirstMover = "first_mover"
	FieldLastMove   = "last_move"
)

// GameStateDTO is a stored game session.
type GameStateDTO struct {
	ID          string
	PlayerID    string
	Board       Board
	CurrentTurn Mark
	Outcome     Outcome
	FirstMover  Mark
	LastMove    int
}

// Game rebuilds the in-memory game from a stored state.
func (s *GameStateDTO) Game() *Game {
	return &Game{
		Board:       s.Board,
		CurrentTurn: s.CurrentTurn,
		Outcome:     s.Outcome,
		FirstMover:  s.FirstMover,
		LastMove:    s.LastMove,
	}
}

// ParseFirstMover maps the client's "first" option to a mark.
// "computer" lets the computer open, "random" picks either side, anything
// else keeps the human first.
func ParseFirstMover(s string) Mark {
	switch s {
	case "computer":
		return Computer
	case "random":
		return randomlyChooseFirstPlayer()
	}
	return Player
}

func randomlyChooseFirstPlayer() Mark {
	if rand.IntN(2) == 0 {
		return Player
	}
	return Computer
}
