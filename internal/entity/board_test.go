package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectWinner(t *testing.T) {
	t.Run("Every line for both players", func(t *testing.T) {
		for _, mark := range []Mark{PlayerX, PlayerO} {
			for _, combo := range WinCombos {
				// Given: a board with only this line filled
				var board Board
				for _, cell := range combo {
					board[cell] = mark
				}

				// When: detecting the winner
				winner, line, ok := DetectWinner(board)

				// Then: the mark and the line are reported
				require.True(t, ok, "line %v", combo)
				assert.Equal(t, mark, winner)
				assert.Equal(t, combo, line)
			}
		}
	})

	t.Run("Ongoing game has no winner", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		winner, _, ok := DetectWinner(board)

		assert.False(t, ok)
		assert.Equal(t, EmptyCell, winner)
	})

	t.Run("Tie has no winner", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		_, _, ok := DetectWinner(board)

		assert.False(t, ok)
		assert.True(t, board.IsFull())
	})

	t.Run("Rows are checked before diagonals", func(t *testing.T) {
		// Given: an over-played board holding both a row and a diagonal
		board := Board{
			PlayerX, PlayerX, PlayerX,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerX,
		}

		_, line, ok := DetectWinner(board)

		require.True(t, ok)
		assert.Equal(t, Line{0, 1, 2}, line)
	})

	t.Run("All boards", func(t *testing.T) {
		marks := []Mark{EmptyCell, PlayerX, PlayerO}

		for code := 0; code < 19683; code++ {
			var board Board
			for i, n := 0, code; i < BoardSize; i, n = i+1, n/3 {
				board[i] = marks[n%3]
			}

			hasLine := false
			for _, combo := range WinCombos {
				if board[combo[0]] != EmptyCell && board[combo[0]] == board[combo[1]] && board[combo[1]] == board[combo[2]] {
					hasLine = true
					break
				}
			}

			winner, line, ok := DetectWinner(board)

			require.Equal(t, hasLine, ok, "board %v", board)
			if ok {
				for _, cell := range line {
					require.Equal(t, winner, board[cell], "board %v", board)
				}
			}
		}
	})
}

func TestBoard_With(t *testing.T) {
	var board Board

	next := board.With(3, PlayerO)

	assert.Equal(t, PlayerO, next[3])
	assert.Equal(t, EmptyCell, board[3])
}

func TestRowCol(t *testing.T) {
	tests := []struct {
		cell     int
		row, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{5, 2, 3},
		{6, 3, 1},
		{7, 3, 2},
		{8, 3, 3},
	}

	for _, tt := range tests {
		row, col := RowCol(tt.cell)

		assert.Equal(t, tt.row, row, "cell %d", tt.cell)
		assert.Equal(t, tt.col, col, "cell %d", tt.cell)
	}
}
