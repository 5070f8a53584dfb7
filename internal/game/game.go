package game

import (
	"errors"
	"fmt"
)

// Mark is the value held by a board cell.
type Mark int8

const (
	Empty   Mark = 0
	PlayerX Mark = 1  // the human player
	PlayerO Mark = -1 // the automated opponent
)

// String returns the display symbol of the mark.
func (m Mark) String() string {
	switch m {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Board boundaries
const (
	BoardSize  = 9
	CenterCell = 4
)

// Board is the 3x3 grid stored row-major.
type Board [BoardSize]Mark

// WinningCombinations lists the rows, columns and diagonals in the fixed
// order used for every scan of the board.
var WinningCombinations = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Corners are the corner cells in scan order.
var Corners = [4]int{0, 2, 6, 8}

var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrCellOccupied = errors.New("cell already taken")
	ErrGameOver     = errors.New("game is not in progress")
	ErrBoardLocked  = errors.New("board is locked")
	ErrNoEmptyCell  = errors.New("no empty cell left")
	ErrInvalidBoard = errors.New("invalid board")
)

// ParseBoard converts raw cell values into a Board.
func ParseBoard(cells []int) (Board, error) {
	var b Board
	if len(cells) != BoardSize {
		return b, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, BoardSize, len(cells))
	}
	for i, v := range cells {
		if v < -1 || v > 1 {
			return b, fmt.Errorf("%w: cell %d has value %d", ErrInvalidBoard, i, v)
		}
		b[i] = Mark(v)
	}
	return b, nil
}

// Ints returns the board as plain integers, the wire representation.
func (b Board) Ints() []int {
	out := make([]int, BoardSize)
	for i, m := range b {
		out[i] = int(m)
	}
	return out
}

// LineSum adds up the values of the three cells of a combination.
func (b Board) LineSum(line [3]int) int {
	return int(b[line[0]]) + int(b[line[1]]) + int(b[line[2]])
}

// EmptyCells returns the indices of all empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, m := range b {
		if m == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// EmptyCorners returns the empty corner cells in Corners order.
func (b Board) EmptyCorners() []int {
	corners := make([]int, 0, len(Corners))
	for _, c := range Corners {
		if b[c] == Empty {
			corners = append(corners, c)
		}
	}
	return corners
}

// IsFull reports whether no empty cell remains.
func (b Board) IsFull() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

func validCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
