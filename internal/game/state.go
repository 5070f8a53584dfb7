package game

import "fmt"

// Game is the board state of one running session: the cells, the lock taken
// while the opponent computes its reply, and whether the game is in progress.
type Game struct {
	Board  Board  `json:"board"`
	Level  Level  `json:"level"`
	InGame bool   `json:"in_game"`
	Locked bool   `json:"locked"`
	Moves  int    `json:"moves"`
	Result Result `json:"result"`
}

// New returns a game in progress on an empty board.
func New(level Level) *Game {
	g := &Game{}
	g.Reset(level)
	return g
}

// Reset clears the board and starts a new game at the given level.
func (g *Game) Reset(level Level) {
	*g = Game{
		Level:  level,
		InGame: true,
	}
}

// Lock marks the board as busy with the opponent's move.
func (g *Game) Lock() { g.Locked = true }

// Unlock releases the board for player input.
func (g *Game) Unlock() { g.Locked = false }

// PlayerMove places the human player's mark. It is rejected while the board
// is locked.
func (g *Game) PlayerMove(cell int) (Result, error) {
	if g.Locked {
		return g.Result, ErrBoardLocked
	}
	return g.place(cell, PlayerX)
}

// OpponentMove places the opponent's mark.
func (g *Game) OpponentMove(cell int) (Result, error) {
	return g.place(cell, PlayerO)
}

func (g *Game) place(cell int, mark Mark) (Result, error) {
	if !g.InGame {
		return g.Result, ErrGameOver
	}
	if !validCell(cell) {
		return g.Result, fmt.Errorf("%w: %d", ErrOutOfBounds, cell)
	}
	if g.Board[cell] != Empty {
		return g.Result, fmt.Errorf("%w: %d", ErrCellOccupied, cell)
	}

	g.Board[cell] = mark
	g.Moves++

	g.Result = CheckForWinner(g.Board)
	if g.Result.Over() {
		g.InGame = false
		g.Locked = false
	}
	return g.Result, nil
}
