package bot

import (
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidMoveRequest is returned when there is no move to make: the board is
// full or already decided.
var ErrInvalidMoveRequest = errors.New("invalid move request")

// Position values from the computer's point of view.
const (
	scoreLoss = -1
	scoreTie  = 0
	scoreWin  = 1
)

// SelectMove returns the cell the computer should take. Every empty cell is
// searched to the end of the game; the first cell (in ascending index order)
// with the best value wins ties. The board passed in is never modified.
func SelectMove(board game.Board) (int, error) {
	index, _, err := search(board)
	return index, err
}

// search is SelectMove plus the number of positions visited.
func search(board game.Board) (index, nodes int, err error) {
	if err := board.Validate(); err != nil {
		return -1, 0, err
	}
	if board.IsFull() {
		return -1, 0, fmt.Errorf("%w: board is full", ErrInvalidMoveRequest)
	}
	if w := game.Winner(board); w != game.None {
		return -1, 0, fmt.Errorf("%w: %s already won", ErrInvalidMoveRequest, w)
	}

	s := &searcher{board: board}
	best := math.MinInt
	index = -1
	for i := range s.board {
		if s.board[i] != game.None {
			continue
		}
		s.board[i] = game.Computer
		score := s.value(false)
		s.board[i] = game.None

		if score > best {
			best = score
			index = i
		}
	}
	return index, s.nodes, nil
}

// searcher owns a private copy of the board and walks it with place/undo.
type searcher struct {
	board game.Board
	nodes int
}

// value scores the current position assuming both sides play perfectly.
// Depth is ignored: a win is worth the same however far away it is.
func (s *searcher) value(maximizing bool) int {
	s.nodes++

	outcome := game.Evaluate(s.board)
	switch outcome.Status {
	case game.StatusWin:
		if outcome.Winner == game.Computer {
			return scoreWin
		}
		return scoreLoss
	case game.StatusTie:
		return scoreTie
	}

	if maximizing {
		best := math.MinInt
		for i := range s.board {
			if s.board[i] != game.None {
				continue
			}
			s.board[i] = game.Computer
			best = max(best, s.value(false))
			s.board[i] = game.None
		}
		return best
	}

	best := math.MaxInt
	for i := range s.board {
		if s.board[i] != game.None {
			continue
		}
		s.board[i] = game.Player
		best = min(best, s.value(true))
		s.board[i] = game.None
	}
	return best
}
