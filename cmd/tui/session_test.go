package main

import (
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHumanFirst(t *testing.T) {
	s := newSession("player")
	assert.False(t, s.computerToMove())
	assert.Equal(t, "Your turn (X)", s.status())

	answer, err := s.play(4)
	require.NoError(t, err)
	assert.True(t, answer)
	assert.Equal(t, "Computer is thinking...", s.status())

	index, err := s.reply()
	require.NoError(t, err)
	assert.Equal(t, game.Computer, s.game.Board[index])
	assert.False(t, s.computerToMove())

	_, err = s.play(4)
	assert.ErrorIs(t, err, game.ErrCellOccupied)
}

func TestSessionComputerFirstOpensInCorner(t *testing.T) {
	s := newSession("computer")
	require.True(t, s.computerToMove())

	index, err := s.reply()
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestSessionPlaysToTheEnd(t *testing.T) {
	s := newSession("player")
	for !s.game.Outcome.Over() {
		cells := s.game.Board.EmptyCells()
		answer, err := s.play(cells[len(cells)-1])
		require.NoError(t, err)
		if answer {
			_, err := s.reply()
			require.NoError(t, err)
		}
	}
	assert.NotEqual(t, game.Player, s.game.Outcome.Winner)
	assert.Contains(t, []string{"O Wins!", "It's a tie!"}, s.status())

	s.reset()
	assert.Equal(t, game.Board{}, s.game.Board)
	assert.Equal(t, "Your turn (X)", s.status())
}

func TestSessionRandomFirstIsDrawnPerGame(t *testing.T) {
	s := newSession("random")
	openers := map[game.Mark]bool{s.game.CurrentTurn: true}
	for i := 0; i < 200 && len(openers) < 2; i++ {
		s.reset()
		openers[s.game.CurrentTurn] = true
	}
	assert.True(t, openers[game.Player], "player never opened")
	assert.True(t, openers[game.Computer], "computer never opened")
}
