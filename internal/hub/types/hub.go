package types

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
)

// RegistrationRequest represents a request to register a player.
type RegistrationRequest struct {
	Player *player.Player
	First  game.Mark // who opens a new game; ignored when an unfinished game is resumed
	Ctx    context.Context
}
