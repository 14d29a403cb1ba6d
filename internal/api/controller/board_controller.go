package controller

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/models"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/response"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/validator"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MoveSelector picks the computer's move for a board.
type MoveSelector interface {
	SelectMove(ctx context.Context, board game.Board) (int, error)
}

// BoardController exposes the evaluator and the move selector over HTTP.
// It holds no game state: every request carries the whole board.
type BoardController struct {
	selector MoveSelector
}

// NewBoardController creates a new BoardController.
func NewBoardController(selector MoveSelector) *BoardController {
	return &BoardController{selector: selector}
}

// Evaluate classifies the posted board.
func (bc *BoardController) Evaluate(c *gin.Context) {
	board, ok := bindBoard(c)
	if !ok {
		return
	}

	response.SuccessResponse(c, models.EvaluateResponse{Outcome: game.Evaluate(board)})
}

// Move returns the computer's move for the posted board.
func (bc *BoardController) Move(c *gin.Context) {
	board, ok := bindBoard(c)
	if !ok {
		return
	}

	index, err := bc.selector.SelectMove(c.Request.Context(), board)
	if err != nil {
		switch {
		case errors.Is(err, bot.ErrInvalidMoveRequest):
			response.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, game.ErrMalformedBoard):
			response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	board[index] = game.Computer
	response.SuccessResponse(c, models.MoveResponse{
		Position: index,
		Board:    board.Slice(),
		Outcome:  game.Evaluate(board),
	})
}

func bindBoard(c *gin.Context) (game.Board, bool) {
	var req models.BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return game.Board{}, false
	}
	if err := validator.GetValidator().Struct(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return game.Board{}, false
	}

	board, err := game.ParseBoard(req.Board)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return game.Board{}, false
	}
	return board, true
}
