package game

import (
	"fmt"
	"strings"
)

// Board holds 9 cells in row-major order (index = row*3 + col).
// It is a value type: assigning or passing a Board copies it.
type Board [BoardSize]Mark

// ParseBoard converts a slice of marks into a Board, rejecting anything that
// is not exactly 9 valid marks.
func ParseBoard(cells []Mark) (Board, error) {
	var b Board
	if len(cells) != BoardSize {
		return b, fmt.Errorf("%w: got %d cells, want %d", ErrMalformedBoard, len(cells), BoardSize)
	}
	copy(b[:], cells)
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// ParseBoardString reads a compact board such as "XX.OO....".
// Empty cells may be written as '.', '-', '_' or ' '.
func ParseBoardString(s string) (Board, error) {
	var b Board
	if len(s) != BoardSize {
		return b, fmt.Errorf("%w: got %d cells, want %d", ErrMalformedBoard, len(s), BoardSize)
	}
	for i, r := range strings.ToUpper(s) {
		switch r {
		case 'X':
			b[i] = Player
		case 'O':
			b[i] = Computer
		case '.', '-', '_', ' ':
			b[i] = None
		default:
			return Board{}, fmt.Errorf("%w: invalid mark %q at %d", ErrMalformedBoard, r, i)
		}
	}
	return b, nil
}

// Validate rejects cells holding anything other than None, Player or Computer.
func (b Board) Validate() error {
	for i, m := range b {
		if !m.Valid() {
			return fmt.Errorf("%w: invalid mark %q at %d", ErrMalformedBoard, m, i)
		}
	}
	return nil
}

// EmptyCells returns the indices of empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, m := range b {
		if m == None {
			cells = append(cells, i)
		}
	}
	return cells
}

// IsFull checks if no empty cell is left.
func (b Board) IsFull() bool {
	for _, m := range b {
		if m == None {
			return false
		}
	}
	return true
}

// Slice returns the board as a slice, the shape used on the wire.
func (b Board) Slice() []Mark {
	cells := make([]Mark, BoardSize)
	copy(cells, b[:])
	return cells
}

// String renders the board in the compact form accepted by ParseBoardString.
func (b Board) String() string {
	var sb strings.Builder
	for _, m := range b {
		if m == None {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(m))
	}
	return sb.String()
}
