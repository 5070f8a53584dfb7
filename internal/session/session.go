package session

import (
	"context"
	"errors"
	"time"

	"ctchen222/tic-tac-toe-solo/internal/game"
)

//go:generate mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrCorruptSession  = errors.New("stored session has no game")
)

// Session is one browser's game against the opponent.
type Session struct {
	ID        string     `json:"id"`
	Game      *game.Game `json:"game"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *Session) clone() *Session {
	c := *s
	if s.Game != nil {
		g := *s.Game
		c.Game = &g
	}
	return &c
}

// Store persists sessions by id. Get and Delete return ErrSessionNotFound
// for an unknown or expired id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MoveAnalyzer picks the opponent's reply on a board.
type MoveAnalyzer interface {
	AnalyzeBoard(ctx context.Context, b game.Board, level game.Level) (int, error)
}
