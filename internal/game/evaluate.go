package game

// Status is the terminal classification of a board.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWin        Status = "win"
	StatusTie        Status = "tie"
)

// Outcome is the result of evaluating a board. Winner is only set for StatusWin.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

// Over reports whether the game has ended.
func (o Outcome) Over() bool {
	return o.Status == StatusWin || o.Status == StatusTie
}

// WinPatterns lists the 3 rows, 3 columns and 2 diagonals, in that order.
var WinPatterns = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Evaluate reports whether a side has won, the board is tied, or play continues.
func Evaluate(b Board) Outcome {
	if winner := Winner(b); winner != None {
		return Outcome{Status: StatusWin, Winner: winner}
	}
	if b.IsFull() {
		return Outcome{Status: StatusTie}
	}
	return Outcome{Status: StatusInProgress}
}

// Winner returns the mark holding the first completed pattern, or None.
func Winner(b Board) Mark {
	for _, p := range WinPatterns {
		if b[p[0]] != None && b[p[0]] == b[p[1]] && b[p[1]] == b[p[2]] {
			return b[p[0]]
		}
	}
	return None
}
