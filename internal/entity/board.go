package entity

import (
	"fmt"
)

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""

	BoardSize = 9
)

// WinCombos - the 8 winning triples: rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark - content of a single cell.
type Mark string

// Opponent - returns the other seat's mark.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

type Board [BoardSize]Mark

// InRange - reports whether index addresses a cell.
func InRange(index int) bool {
	return index >= 0 && index < BoardSize
}

// ApplyMark - returns a copy of the board with the cell at index set to mark.
// Callers must check that index is in range and the cell is empty.
func (that Board) ApplyMark(index int, mark Mark) Board {
	if !InRange(index) || that[index] != EmptyCell {
		panic(fmt.Sprintf("apply mark: cell %d is not playable", index))
	}

	that[index] = mark

	return that
}

// WinningLine - returns the first complete triple in WinCombos order.
func (that Board) WinningLine() ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsDraw - every cell is taken and nobody has a line.
func (that Board) IsDraw() bool {
	if !that.IsFull() {
		return false
	}

	_, won := that.WinningLine()

	return !won
}
