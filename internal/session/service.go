package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ctchen222/tic-tac-toe-solo/internal/game"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// NoCell marks a turn in which the opponent did not move.
const NoCell = -1

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")
)

// Turn is the outcome of one player move and the opponent's reply.
type Turn struct {
	Session      *Session    `json:"session"`
	PlayerCell   int         `json:"player_cell"`
	OpponentCell int         `json:"opponent_cell"`
	Result       game.Result `json:"result"`
}

// Service runs sessions: it applies moves, asks the analyzer for replies and
// persists the state. Turns of one session never interleave.
type Service struct {
	store    Store
	analyzer MoveAnalyzer

	mu    sync.Mutex
	locks map[string]*sessionLock

	moves    metric.Int64Counter
	finished metric.Int64Counter
}

func NewService(store Store, analyzer MoveAnalyzer) (*Service, error) {
	moves, err := meter.Int64Counter("ttt.moves",
		metric.WithDescription("Marks placed on a board"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create moves counter: %w", err)
	}
	finished, err := meter.Int64Counter("ttt.games.finished",
		metric.WithDescription("Games that ended in a win or a draw"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create finished counter: %w", err)
	}

	return &Service{
		store:    store,
		analyzer: analyzer,
		locks:    make(map[string]*sessionLock),
		moves:    moves,
		finished: finished,
	}, nil
}

// sessionLock serializes the turns of one session. refs counts the callers
// holding or waiting for it; the entry is dropped when it reaches zero.
type sessionLock struct {
	sync.Mutex
	refs int
}

func (s *Service) acquire(id string) *sessionLock {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	return l
}

func (s *Service) release(id string, l *sessionLock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
}

// Start creates a session with an empty board at the given level.
func (s *Service) Start(ctx context.Context, level game.Level) (*Session, error) {
	ctx, span := tracer.Start(ctx, "session.Start", trace.WithAttributes(
		attribute.String("game.difficulty", level.String()),
	))
	defer span.End()

	if !level.Valid() {
		span.SetStatus(codes.Error, "Unknown difficulty")
		return nil, fmt.Errorf("%w: %d", game.ErrUnknownLevel, level)
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		Game:      game.New(level),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save session")
		return nil, err
	}
	span.SetAttributes(attribute.String("session.id", sess.ID))

	slog.InfoContext(ctx, "Session started", "session.id", sess.ID, "difficulty", level.String())
	return sess, nil
}

// Get returns the stored session.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	ctx, span := tracer.Start(ctx, "session.Get", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return sess, nil
}

// Restart resets the board of an existing session wholesale.
func (s *Service) Restart(ctx context.Context, id string, level game.Level) (*Session, error) {
	ctx, span := tracer.Start(ctx, "session.Restart", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("game.difficulty", level.String()),
	))
	defer span.End()

	if !level.Valid() {
		span.SetStatus(codes.Error, "Unknown difficulty")
		return nil, fmt.Errorf("%w: %d", game.ErrUnknownLevel, level)
	}

	l := s.acquire(id)
	defer s.release(id, l)
	l.Lock()
	defer l.Unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if sess.Game == nil {
		sess.Game = &game.Game{}
	}
	sess.Game.Reset(level)
	sess.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save session")
		return nil, err
	}

	slog.InfoContext(ctx, "Session restarted", "session.id", id, "difficulty", level.String())
	return sess, nil
}

// End removes the session.
func (s *Service) End(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "session.End", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	l := s.acquire(id)
	defer s.release(id, l)
	l.Lock()
	defer l.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	slog.InfoContext(ctx, "Session ended", "session.id", id)
	return nil
}

// PlayerMove places the player's mark on cell and, if the game goes on,
// the opponent's reply. A move arriving while the previous turn of the same
// session is still running fails with game.ErrBoardLocked.
func (s *Service) PlayerMove(ctx context.Context, id string, cell int) (*Turn, error) {
	ctx, span := tracer.Start(ctx, "session.PlayerMove", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.Int("move.cell", cell),
	))
	defer span.End()

	l := s.acquire(id)
	defer s.release(id, l)
	if !l.TryLock() {
		span.SetStatus(codes.Error, "Board is locked")
		return nil, game.ErrBoardLocked
	}
	defer l.Unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if sess.Game == nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptSession, id)
	}
	g := sess.Game
	before := *g

	res, err := g.PlayerMove(cell)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rejected player move")
		return nil, err
	}
	s.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("mark", game.PlayerX.String())))

	turn := &Turn{Session: sess, PlayerCell: cell, OpponentCell: NoCell}
	if !res.Over() {
		if err := s.opponentMove(ctx, sess, turn); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Opponent failed to move")
			s.rollback(ctx, sess, before)
			return nil, err
		}
		res = g.Result
	}
	turn.Result = res

	sess.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save session")
		s.rollback(ctx, sess, before)
		return nil, err
	}

	if res.Over() {
		s.finished.Add(ctx, 1, metric.WithAttributes(
			attribute.String("result", res.Kind.String()),
			attribute.String("winner", res.Winner.String()),
			attribute.String("game.difficulty", g.Level.String()),
		))
		slog.InfoContext(ctx, "Game finished", "session.id", id, "result", res.String(), "moves", g.Moves)
	}
	return turn, nil
}

// rollback restores the game as it was before the turn and saves it, so a
// failed turn never leaves a half-played or locked board in the store.
func (s *Service) rollback(ctx context.Context, sess *Session, before game.Game) {
	*sess.Game = before
	if err := s.store.Save(ctx, sess); err != nil {
		slog.ErrorContext(ctx, "Failed to roll back turn", "session.id", sess.ID, "error", err)
	}
}

// opponentMove locks the board, persists the lock so other readers see it,
// and applies the analyzer's reply.
func (s *Service) opponentMove(ctx context.Context, sess *Session, turn *Turn) error {
	g := sess.Game
	g.Lock()
	if err := s.store.Save(ctx, sess); err != nil {
		g.Unlock()
		return err
	}
	defer g.Unlock()

	cell, err := s.analyzer.AnalyzeBoard(ctx, g.Board, g.Level)
	if err != nil {
		return fmt.Errorf("failed to analyze board: %w", err)
	}
	if _, err := g.OpponentMove(cell); err != nil {
		return fmt.Errorf("opponent chose cell %d: %w", cell, err)
	}
	s.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("mark", game.PlayerO.String())))
	turn.OpponentCell = cell

	slog.DebugContext(ctx, "Opponent moved", "session.id", sess.ID, "cell", cell)
	return nil
}
