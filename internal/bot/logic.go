package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"ctchen222/tic-tac-toe-solo/internal/game"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=logic.go -destination=mocks/mock_random.go -package=mocks

// NoMove is returned when no cell qualifies for a move.
const NoMove = -1

var ErrInvalidConfiguration = errors.New("invalid analyzer configuration")

var tracer = otel.Tracer("bot")

// RandomSource supplies the randomness used by the analyzer. *rand.Rand
// from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// globalSource uses the goroutine-safe top-level math/rand/v2 functions.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// CornerPolicy selects how a free corner is drawn.
type CornerPolicy uint8

const (
	// CornerUniform picks any free corner with equal chance.
	CornerUniform CornerPolicy = iota
	// CornerLegacy draws the index as floor(r * (n-1)): a lone free corner is
	// always taken, otherwise the last free corner is never picked.
	CornerLegacy
)

// ParseCornerPolicy maps the configuration value to a CornerPolicy.
func ParseCornerPolicy(name string) (CornerPolicy, error) {
	switch name {
	case "", "uniform":
		return CornerUniform, nil
	case "legacy":
		return CornerLegacy, nil
	}
	return 0, fmt.Errorf("%w: unknown corner policy %q", ErrInvalidConfiguration, name)
}

// Probabilities maps each difficulty to the chance of playing the heuristic
// move instead of a random empty cell.
type Probabilities map[game.Level]float64

// Validate checks that every level has a probability in [0,1].
func (p Probabilities) Validate() error {
	for _, level := range game.Levels {
		v, ok := p[level]
		if !ok {
			return fmt.Errorf("%w: missing probability for %s", ErrInvalidConfiguration, level)
		}
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: probability %v for %s is outside [0,1]", ErrInvalidConfiguration, v, level)
		}
	}
	return nil
}

// Analyzer picks the opponent's moves. It keeps no state between calls.
type Analyzer struct {
	rng     RandomSource
	odds    Probabilities
	corners CornerPolicy
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithRandomSource replaces the default math/rand/v2 source.
func WithRandomSource(rng RandomSource) Option {
	return func(a *Analyzer) { a.rng = rng }
}

// WithCornerPolicy sets how free corners are chosen.
func WithCornerPolicy(policy CornerPolicy) Option {
	return func(a *Analyzer) { a.corners = policy }
}

// NewAnalyzer validates the difficulty table and returns an analyzer.
func NewAnalyzer(odds Probabilities, opts ...Option) (*Analyzer, error) {
	if err := odds.Validate(); err != nil {
		return nil, err
	}
	a := &Analyzer{
		rng:  globalSource{},
		odds: make(Probabilities, len(odds)),
	}
	for level, p := range odds {
		a.odds[level] = p
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// RandomEmptyCell returns a uniformly chosen empty cell, or NoMove.
func (a *Analyzer) RandomEmptyCell(b game.Board) int {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return NoMove
	}
	return cells[a.rng.IntN(len(cells))]
}

// RandomEmptyCorner returns a free corner chosen by the corner policy, or
// NoMove when all corners are taken.
func (a *Analyzer) RandomEmptyCorner(b game.Board) int {
	corners := b.EmptyCorners()
	if len(corners) == 0 {
		return NoMove
	}
	if a.corners == CornerLegacy {
		idx := int(math.Floor(a.rng.Float64() * float64(len(corners)-1)))
		return corners[idx]
	}
	return corners[a.rng.IntN(len(corners))]
}

// CheckForNearWin looks for a line holding two equal marks and an empty
// cell. The opponent's own winning cell comes before blocking the player.
// Among several open lines of one side the last in scan order is used.
func (a *Analyzer) CheckForNearWin(b game.Board) int {
	win, block := NoMove, NoMove
	for _, line := range game.WinningCombinations {
		switch b.LineSum(line) {
		case -2:
			win = emptyIn(b, line)
		case 2:
			block = emptyIn(b, line)
		}
	}
	if win != NoMove {
		return win
	}
	return block
}

func emptyIn(b game.Board, line [3]int) int {
	for _, idx := range line {
		if b[idx] == game.Empty {
			return idx
		}
	}
	return NoMove
}

// AnalyzePosition returns a near-win move, else a free corner, else any
// empty cell.
func (a *Analyzer) AnalyzePosition(b game.Board) int {
	if move := a.CheckForNearWin(b); move != NoMove {
		return move
	}
	if move := a.RandomEmptyCorner(b); move != NoMove {
		return move
	}
	return a.RandomEmptyCell(b)
}

// BestMove takes the center whenever it is free.
func (a *Analyzer) BestMove(b game.Board) int {
	if b[game.CenterCell] == game.Empty {
		return game.CenterCell
	}
	return a.AnalyzePosition(b)
}

// BestMoveOrRandom keeps best when a uniform draw is at most the level's
// probability and otherwise swaps it for a random empty cell.
func (a *Analyzer) BestMoveOrRandom(b game.Board, best int, level game.Level) (int, error) {
	p, ok := a.odds[level]
	if !ok {
		return NoMove, fmt.Errorf("%w: no probability for %s", ErrInvalidConfiguration, level)
	}
	if a.rng.Float64() <= p {
		return best, nil
	}
	return a.RandomEmptyCell(b), nil
}

// FindMove runs the heuristic and then the difficulty gate.
func (a *Analyzer) FindMove(b game.Board, level game.Level) (int, error) {
	return a.BestMoveOrRandom(b, a.BestMove(b), level)
}

// AnalyzeBoard returns the opponent's move for the board. A full board is
// rejected with game.ErrNoEmptyCell.
func (a *Analyzer) AnalyzeBoard(ctx context.Context, b game.Board, level game.Level) (int, error) {
	_, span := tracer.Start(ctx, "bot.AnalyzeBoard", trace.WithAttributes(
		attribute.String("game.difficulty", level.String()),
		attribute.IntSlice("game.board", b.Ints()),
	))
	defer span.End()

	if b.IsFull() {
		span.RecordError(game.ErrNoEmptyCell)
		span.SetStatus(codes.Error, "Board is full")
		return NoMove, game.ErrNoEmptyCell
	}

	move, err := a.FindMove(b, level)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to find move")
		return NoMove, err
	}
	span.SetAttributes(attribute.Int("move.cell", move))
	return move, nil
}
