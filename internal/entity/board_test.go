package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_ApplyMark(t *testing.T) {
	t.Run("Returns a new board with the mark applied", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: X is applied to the center
		next := board.ApplyMark(4, MarkX)

		// Then: only the new board carries the mark
		assert.Equal(t, MarkX, next[4])
		assert.Equal(t, EmptyCell, board[4])
	})

	t.Run("Panics on an occupied cell", func(t *testing.T) {
		// Given: a board with cell 0 taken
		board := Board{MarkX}

		// When / Then: applying a mark on cell 0 is a caller bug
		assert.Panics(t, func() { board.ApplyMark(0, MarkO) })
	})

	t.Run("Panics on an out of range index", func(t *testing.T) {
		var board Board

		assert.Panics(t, func() { board.ApplyMark(9, MarkX) })
		assert.Panics(t, func() { board.ApplyMark(-1, MarkX) })
	})
}

func TestBoard_WinningLine(t *testing.T) {
	t.Run("Returns the row for Player X", func(t *testing.T) {
		// Given: X holds the top row
		board := Board{
			MarkX, MarkX, MarkX,
			MarkO, MarkO, EmptyCell,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// When: looking for a winning line
		line, ok := board.WinningLine()

		// Then: the top row is returned
		require.True(t, ok)
		assert.Equal(t, [3]int{0, 1, 2}, line)
	})

	t.Run("Returns the anti-diagonal for Player O", func(t *testing.T) {
		board := Board{
			MarkX, MarkX, MarkO,
			EmptyCell, MarkO, EmptyCell,
			MarkO, EmptyCell, MarkX,
		}

		line, ok := board.WinningLine()

		require.True(t, ok)
		assert.Equal(t, [3]int{2, 4, 6}, line)
	})

	t.Run("Returns none for an ongoing board", func(t *testing.T) {
		board := Board{
			MarkX, MarkO, EmptyCell,
			EmptyCell, MarkX, EmptyCell,
			EmptyCell, EmptyCell, MarkO,
		}

		_, ok := board.WinningLine()

		assert.False(t, ok)
	})

	t.Run("Returns none or one of the 8 fixed triples for every board", func(t *testing.T) {
		// Given: every assignment of {empty, X, O} to the 9 cells
		marks := [3]Mark{EmptyCell, MarkX, MarkO}
		total := 1
		for range BoardSize {
			total *= len(marks)
		}

		for n := range total {
			var board Board
			rest := n
			for i := range board {
				board[i] = marks[rest%3]
				rest /= 3
			}

			// When: looking for a winning line
			line, ok := board.WinningLine()
			if !ok {
				continue
			}

			// Then: the line is a fixed triple whose cells hold the same mark
			require.Contains(t, WinCombos[:], line)
			require.NotEqual(t, EmptyCell, board[line[0]])
			require.Equal(t, board[line[0]], board[line[1]])
			require.Equal(t, board[line[1]], board[line[2]])
		}
	})
}

func TestBoard_IsDraw(t *testing.T) {
	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: X:0,4,5,6,7 and O:1,2,3,8
		board := Board{
			MarkX, MarkO, MarkO,
			MarkO, MarkX, MarkX,
			MarkX, MarkX, MarkO,
		}

		// Then: it is a draw
		assert.True(t, board.IsDraw())
	})

	t.Run("Full board with a line is not a draw", func(t *testing.T) {
		board := Board{
			MarkX, MarkX, MarkX,
			MarkO, MarkO, MarkX,
			MarkX, MarkO, MarkO,
		}

		assert.False(t, board.IsDraw())
	})

	t.Run("Board with empty cells is not a draw", func(t *testing.T) {
		board := Board{MarkX, MarkO}

		assert.False(t, board.IsDraw())
	})
}
