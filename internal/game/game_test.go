package game

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoardString(s)
	if err != nil {
		t.Fatalf("ParseBoardString(%q) failed: %v", s, err)
	}
	return b
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  Outcome
	}{
		{
			name:  "No winner - empty board",
			board: ".........",
			want:  Outcome{Status: StatusInProgress},
		},
		{
			name:  "No winner - partial board",
			board: "X...O....",
			want:  Outcome{Status: StatusInProgress},
		},
		{
			name:  "X wins - first row",
			board: "XXX.O...O",
			want:  Outcome{Status: StatusWin, Winner: Player},
		},
		{
			name:  "O wins - second column",
			board: "XO.XO..O.",
			want:  Outcome{Status: StatusWin, Winner: Computer},
		},
		{
			name:  "X wins - main diagonal",
			board: "X...X...X",
			want:  Outcome{Status: StatusWin, Winner: Player},
		},
		{
			name:  "O wins - anti-diagonal",
			board: "..O.O.O..",
			want:  Outcome{Status: StatusWin, Winner: Computer},
		},
		{
			name:  "Win on a full board is still a win",
			board: "XXXOOXOXO",
			want:  Outcome{Status: StatusWin, Winner: Player},
		},
		{
			name:  "Full board without a line is a tie",
			board: "XOXXOOOXX",
			want:  Outcome{Status: StatusTie},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(mustParse(t, tt.board)); got != tt.want {
				t.Errorf("Evaluate() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvaluateEveryPattern(t *testing.T) {
	for _, mark := range []Mark{Player, Computer} {
		for _, p := range WinPatterns {
			var b Board
			for _, i := range p {
				b[i] = mark
			}
			got := Evaluate(b)
			if got.Status != StatusWin || got.Winner != mark {
				t.Errorf("Evaluate(%s) got = %+v, want win for %s", b, got, mark)
			}
		}
	}
}

func TestEvaluateFullBoardsWithoutLineAreTies(t *testing.T) {
	// Enumerate every full board and compare with a direct line scan.
	var b Board
	var walk func(i int)
	walk = func(i int) {
		if i == BoardSize {
			got := Evaluate(b)
			if Winner(b) == None && got.Status != StatusTie {
				t.Fatalf("Evaluate(%s) got = %+v, want tie", b, got)
			}
			return
		}
		for _, m := range []Mark{Player, Computer} {
			b[i] = m
			walk(i + 1)
		}
	}
	walk(0)
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  bool
	}{
		{name: "Empty board is not full", board: ".........", want: false},
		{name: "Partial board is not full", board: "X...O....", want: false},
		{name: "Full board is full", board: "XOXXOOOXX", want: true},
		{name: "Full board with winner is full", board: "XXXOOXOXO", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.board).IsFull(); got != tt.want {
				t.Errorf("IsFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBoardRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		cells []Mark
	}{
		{name: "too short", cells: []Mark{None, Player}},
		{name: "too long", cells: make([]Mark, 10)},
		{name: "unknown mark", cells: []Mark{None, None, None, None, "Z", None, None, None, None}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBoard(tt.cells); !errors.Is(err, ErrMalformedBoard) {
				t.Errorf("ParseBoard() error = %v, want ErrMalformedBoard", err)
			}
		})
	}

	if _, err := ParseBoardString("XX.OO...Q"); !errors.Is(err, ErrMalformedBoard) {
		t.Errorf("ParseBoardString() error = %v, want ErrMalformedBoard", err)
	}
}

func TestBoardStringRoundTrip(t *testing.T) {
	b := mustParse(t, "XX.OO....")
	if got := b.String(); got != "XX.OO...." {
		t.Errorf("String() got = %q", got)
	}
	if got := b.EmptyCells(); len(got) != 5 || got[0] != 2 || got[4] != 8 {
		t.Errorf("EmptyCells() got = %v", got)
	}
}

func TestGameMove(t *testing.T) {
	g := NewGame(Player)
	if g.CurrentTurn != Player || g.LastMove != -1 {
		t.Fatalf("NewGame() got turn %q last move %d", g.CurrentTurn, g.LastMove)
	}

	if err := g.Move(Computer, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Move() out of turn error = %v, want ErrNotYourTurn", err)
	}
	if err := g.Move(Player, 9); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Move() out of bounds error = %v, want ErrOutOfBounds", err)
	}
	if err := g.Move(Player, 4); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if g.CurrentTurn != Computer || g.LastMove != 4 {
		t.Errorf("after Move() got turn %q last move %d", g.CurrentTurn, g.LastMove)
	}
	if err := g.Move(Computer, 4); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Move() on occupied cell error = %v, want ErrCellOccupied", err)
	}
}

func TestGameMoveAfterWin(t *testing.T) {
	g := NewGame(Player)
	moves := []struct {
		mark  Mark
		index int
	}{
		{Player, 0}, {Computer, 3}, {Player, 1}, {Computer, 4}, {Player, 2},
	}
	for _, m := range moves {
		if err := g.Move(m.mark, m.index); err != nil {
			t.Fatalf("Move(%s, %d) failed: %v", m.mark, m.index, err)
		}
	}
	if g.Outcome.Status != StatusWin || g.Outcome.Winner != Player {
		t.Fatalf("Outcome got = %+v, want X win", g.Outcome)
	}
	if err := g.Move(Computer, 5); !errors.Is(err, ErrGameOver) {
		t.Errorf("Move() after win error = %v, want ErrGameOver", err)
	}
}

func TestReset(t *testing.T) {
	g := NewGame(Player)
	_ = g.Move(Player, 0)
	g.Reset(Computer)
	if g.Board != (Board{}) || g.CurrentTurn != Computer || g.FirstMover != Computer {
		t.Errorf("Reset() got %+v", g)
	}
}

func TestParseFirstMover(t *testing.T) {
	if got := ParseFirstMover("computer"); got != Computer {
		t.Errorf("ParseFirstMover(computer) got = %q", got)
	}
	if got := ParseFirstMover(""); got != Player {
		t.Errorf("ParseFirstMover(\"\") got = %q", got)
	}
	seenX, seenO := false, false
	for range 100 {
		switch ParseFirstMover("random") {
		case Player:
			seenX = true
		case Computer:
			seenO = true
		default:
			t.Fatal("ParseFirstMover(random) returned an invalid mark")
		}
	}
	if !seenX || !seenO {
		t.Errorf("ParseFirstMover(random) did not return both marks over 100 runs. Seen X: %v, Seen O: %v", seenX, seenO)
	}
}
