package main

import (
	"ctchen222/Tic-Tac-Toe-Minimax/internal/bot"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
)

// session drives one local game: the human's moves come from the board UI,
// the computer's from bot.SelectMove.
type session struct {
	game  *game.Game
	first string // -first option; "random" is drawn again for every game
}

func newSession(first string) *session {
	return &session{game: game.NewGame(game.ParseFirstMover(first)), first: first}
}

// play applies the human's move. It reports whether the computer should
// answer.
func (s *session) play(index int) (bool, error) {
	if err := s.game.Move(game.Player, index); err != nil {
		return false, err
	}
	return s.computerToMove(), nil
}

// reply makes the computer's move and returns the chosen cell.
func (s *session) reply() (int, error) {
	index, err := bot.SelectMove(s.game.Board)
	if err != nil {
		return -1, err
	}
	if err := s.game.Move(game.Computer, index); err != nil {
		return -1, err
	}
	return index, nil
}

func (s *session) computerToMove() bool {
	return !s.game.Outcome.Over() && s.game.CurrentTurn == game.Computer
}

func (s *session) reset() {
	s.game.Reset(game.ParseFirstMover(s.first))
}

// status is the line shown under the board.
func (s *session) status() string {
	switch s.game.Outcome.Status {
	case game.StatusWin:
		return string(s.game.Outcome.Winner) + " Wins!"
	case game.StatusTie:
		return "It's a tie!"
	}
	if s.game.CurrentTurn == game.Computer {
		return "Computer is thinking..."
	}
	return "Your turn (X)"
}
