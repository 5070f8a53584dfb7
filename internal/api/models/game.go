package models

import (
	"ctchen222/tic-tac-toe-solo/internal/game"
	"ctchen222/tic-tac-toe-solo/internal/session"
)

// StartGameRequest starts or restarts the caller's game.
type StartGameRequest struct {
	Difficulty string `json:"difficulty" binding:"required,level"`
}

// MoveRequest places the player's mark. Cell is a pointer so that 0 passes
// the required check.
type MoveRequest struct {
	Cell *int `json:"cell" binding:"required,gte=0,lte=8"`
}

// AnalyzeRequest asks for the opponent's move on an arbitrary board.
type AnalyzeRequest struct {
	Board      []int  `json:"board" binding:"required,len=9,dive,gte=-1,lte=1"`
	Difficulty string `json:"difficulty" binding:"required,level"`
}

type AnalyzeResponse struct {
	Move int `json:"move"`
}

// WinnerRequest asks for the result of a board.
type WinnerRequest struct {
	Board []int `json:"board" binding:"required,len=9,dive,gte=-1,lte=1"`
}

// ResultResponse is game.Result with the configured display label.
type ResultResponse struct {
	Kind   game.ResultKind `json:"kind"`
	Winner int             `json:"winner"`
	Label  string          `json:"label,omitempty"`
	Strike []int           `json:"strike,omitempty"`
}

// GameResponse is the state of a session as shown to the browser.
type GameResponse struct {
	ID           string         `json:"id"`
	Board        []int          `json:"board"`
	Difficulty   string         `json:"difficulty"`
	InGame       bool           `json:"in_game"`
	Locked       bool           `json:"locked"`
	Moves        int            `json:"moves"`
	Result       ResultResponse `json:"result"`
	PlayerCell   *int           `json:"player_cell,omitempty"`
	OpponentCell *int           `json:"opponent_cell,omitempty"`
}

// LevelInfo describes one selectable difficulty.
type LevelInfo struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

// ConfigResponse carries what the browser needs to render the game.
type ConfigResponse struct {
	Players map[string]string `json:"players"`
	Levels  []LevelInfo       `json:"levels"`
}

// Labeler names marks for display.
type Labeler interface {
	Label(m game.Mark) string
}

func NewResultResponse(r game.Result, labels Labeler) ResultResponse {
	resp := ResultResponse{
		Kind:   r.Kind,
		Winner: int(r.Winner),
		Strike: r.Strike,
	}
	if r.Over() {
		resp.Label = labels.Label(r.Winner)
	}
	return resp
}

func NewGameResponse(s *session.Session, labels Labeler) GameResponse {
	g := s.Game
	return GameResponse{
		ID:         s.ID,
		Board:      g.Board.Ints(),
		Difficulty: g.Level.String(),
		InGame:     g.InGame,
		Locked:     g.Locked,
		Moves:      g.Moves,
		Result:     NewResultResponse(g.Result, labels),
	}
}

func NewTurnResponse(t *session.Turn, labels Labeler) GameResponse {
	resp := NewGameResponse(t.Session, labels)
	player, opponent := t.PlayerCell, t.OpponentCell
	resp.PlayerCell = &player
	if opponent != session.NoCell {
		resp.OpponentCell = &opponent
	}
	return resp
}
