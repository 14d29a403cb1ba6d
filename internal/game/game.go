package game

import (
	"errors"
	"fmt"
)

// Mark is the content of a single board cell.
type Mark string

const (
	// Player marks
	None     Mark = ""
	Player   Mark = "X"
	Computer Mark = "O"
)

// Board boundaries
const (
	BoardSize = 9
	BorderMin = 0
	BorderMax = BoardSize - 1
)

var (
	ErrMalformedBoard = errors.New("malformed board")
	ErrGameOver       = errors.New("game already finished")
	ErrNotYourTurn    = errors.New("not player's turn")
	ErrOutOfBounds    = errors.New("position out of bounds")
	ErrCellOccupied   = errors.New("cell already occupied")
)

// Valid reports whether m is one of None, Player or Computer.
func (m Mark) Valid() bool {
	return m == None || m == Player || m == Computer
}

// Opponent returns the other side. None has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case Player:
		return Computer
	case Computer:
		return Player
	}
	return None
}

// Game is the authoritative state of one match. It is owned by whoever drives
// the turn order; the search only ever sees copies of Board.
type Game struct {
	Board       Board
	CurrentTurn Mark
	Outcome     Outcome
	FirstMover  Mark
	LastMove    int
}

// NewGame returns an empty game where first moves next. Anything other than
// Computer starts with the human player.
func NewGame(first Mark) *Game {
	g := &Game{}
	g.Reset(first)
	return g
}

// Reset clears the board for a replay.
func (g *Game) Reset(first Mark) {
	if first != Computer {
		first = Player
	}
	g.Board = Board{}
	g.CurrentTurn = first
	g.FirstMover = first
	g.Outcome = Outcome{Status: StatusInProgress}
	g.LastMove = -1
}

// Move places mark at index and re-evaluates the board.
func (g *Game) Move(mark Mark, index int) error {
	if g.Outcome.Over() {
		return ErrGameOver
	}
	if mark != g.CurrentTurn {
		return ErrNotYourTurn
	}
	if index < BorderMin || index > BorderMax {
		return fmt.Errorf("%w: %d", ErrOutOfBounds, index)
	}
	if g.Board[index] != None {
		return fmt.Errorf("%w: %d", ErrCellOccupied, index)
	}

	g.Board[index] = mark
	g.LastMove = index
	g.CurrentTurn = mark.Opponent()
	g.Outcome = Evaluate(g.Board)
	return nil
}
