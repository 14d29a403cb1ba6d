package models

import "ctchen222/Tic-Tac-Toe-Minimax/internal/game"

// BoardRequest carries a board in row-major order. Empty cells are "".
type BoardRequest struct {
	Board []game.Mark `json:"board" binding:"required" validate:"len=9,dive,mark"`
}

// EvaluateResponse is the result of classifying a board.
type EvaluateResponse struct {
	Outcome game.Outcome `json:"outcome"`
}

// MoveResponse is the computer's move and the board after it.
type MoveResponse struct {
	Position int          `json:"position"`
	Board    []game.Mark  `json:"board"`
	Outcome  game.Outcome `json:"outcome"`
}
