package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ctchen222/tic-tac-toe-solo/internal/api/models"
	"ctchen222/tic-tac-toe-solo/internal/api/response"
	"ctchen222/tic-tac-toe-solo/internal/api/service"
	"ctchen222/tic-tac-toe-solo/internal/config"
	"ctchen222/tic-tac-toe-solo/internal/game"
	"ctchen222/tic-tac-toe-solo/internal/session"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SessionCookie holds the signed session token.
const SessionCookie = "session_token"

var tracer = otel.Tracer("api.controller")

// GameController handles the game HTTP endpoints.
type GameController struct {
	sessions *session.Service
	analyzer session.MoveAnalyzer
	tokens   service.TokenService
	cfg      *config.Config
}

// NewGameController creates a new GameController.
func NewGameController(sessions *session.Service, analyzer session.MoveAnalyzer, tokens service.TokenService, cfg *config.Config) *GameController {
	return &GameController{
		sessions: sessions,
		analyzer: analyzer,
		tokens:   tokens,
		cfg:      cfg,
	}
}

// Config returns the player labels and the difficulty levels.
func (gc *GameController) Config(c *gin.Context) {
	odds := gc.cfg.Probabilities()
	levels := make([]models.LevelInfo, 0, len(game.Levels))
	for _, level := range game.Levels {
		levels = append(levels, models.LevelInfo{Name: level.String(), Probability: odds[level]})
	}

	response.SuccessResponse(c, models.ConfigResponse{
		Players: map[string]string{
			"x":   gc.cfg.Players.X,
			"o":   gc.cfg.Players.O,
			"cat": gc.cfg.Players.Draw,
		},
		Levels: levels,
	})
}

// StartGame resets the caller's session, or creates one and sets the cookie.
func (gc *GameController) StartGame(c *gin.Context) {
	var req models.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	level, err := game.ParseLevel(req.Difficulty)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	ctx := c.Request.Context()

	if id, err := gc.sessionID(c); err == nil {
		sess, err := gc.sessions.Restart(ctx, id, level)
		if err == nil {
			response.SuccessResponse(c, models.NewGameResponse(sess, gc.cfg.Players))
			return
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			response.ErrorFrom(c, err)
			return
		}
		slog.DebugContext(ctx, "Starting a new session", "session.id", id, "reason", err)
	}

	sess, err := gc.sessions.Start(ctx, level)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	token, err := gc.tokens.Issue(sess.ID)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(gc.cfg.Session.TTL.Seconds()), "/", "", false, true)

	response.CreatedResponse(c, models.NewGameResponse(sess, gc.cfg.Players))
}

// CurrentGame returns the caller's session.
func (gc *GameController) CurrentGame(c *gin.Context) {
	id, err := gc.sessionID(c)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	sess, err := gc.sessions.Get(c.Request.Context(), id)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	response.SuccessResponse(c, models.NewGameResponse(sess, gc.cfg.Players))
}

// Move applies the player's move and the opponent's reply.
func (gc *GameController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	id, err := gc.sessionID(c)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}

	turn, err := gc.sessions.PlayerMove(c.Request.Context(), id, *req.Cell)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	response.SuccessResponse(c, models.NewTurnResponse(turn, gc.cfg.Players))
}

// EndGame deletes the caller's session and clears the cookie.
func (gc *GameController) EndGame(c *gin.Context) {
	id, err := gc.sessionID(c)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	if err := gc.sessions.End(c.Request.Context(), id); err != nil {
		response.ErrorFrom(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	response.SuccessResponse(c, gin.H{"message": "Session ended"})
}

// Analyze returns the opponent's move on the posted board without touching
// any session.
func (gc *GameController) Analyze(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "controller.Analyze")
	defer span.End()

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	board, err := game.ParseBoard(req.Board)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	level, err := game.ParseLevel(req.Difficulty)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}
	span.SetAttributes(attribute.String("game.difficulty", level.String()))

	move, err := gc.analyzer.AnalyzeBoard(ctx, board, level)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to analyze board")
		response.ErrorFrom(c, err)
		return
	}
	span.SetAttributes(attribute.Int("move.cell", move))
	response.SuccessResponse(c, models.AnalyzeResponse{Move: move})
}

// Winner reports the result of the posted board.
func (gc *GameController) Winner(c *gin.Context) {
	var req models.WinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	board, err := game.ParseBoard(req.Board)
	if err != nil {
		response.ErrorFrom(c, err)
		return
	}

	_, span := tracer.Start(c.Request.Context(), "controller.Winner", trace.WithAttributes(
		attribute.IntSlice("game.board", req.Board),
	))
	defer span.End()

	response.SuccessResponse(c, models.NewResultResponse(game.CheckForWinner(board), gc.cfg.Players))
}

// Health reports liveness.
func (gc *GameController) Health(c *gin.Context) {
	response.SuccessResponse(c, gin.H{"status": "ok"})
}

func (gc *GameController) sessionID(c *gin.Context) (string, error) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return "", fmt.Errorf("%w: no session cookie", service.ErrInvalidToken)
	}
	return gc.tokens.Parse(token)
}
