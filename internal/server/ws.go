package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"ctchen222/tic-tac-toe-solo/internal/api/models"
	"ctchen222/tic-tac-toe-solo/internal/game"
	"ctchen222/tic-tac-toe-solo/internal/session"
	"ctchen222/tic-tac-toe-solo/internal/validator"
	"ctchen222/tic-tac-toe-solo/pkg/proto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxMessageSize = 512

// Connection abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// wsClient is one browser connected over /ws. It owns at most one session.
type wsClient struct {
	conn      Connection
	sessionID string
}

// handleWebSocket upgrades the connection and serves its messages until the
// client goes away, then ends the session.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
	))
	defer span.End()

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}
	conn.SetReadLimit(maxMessageSize)

	s.serve(context.WithoutCancel(ctx), &wsClient{conn: conn})
}

func (s *Server) serve(ctx context.Context, client *wsClient) {
	defer func() {
		client.conn.Close()
		if client.sessionID == "" {
			return
		}
		if err := s.sessions.End(ctx, client.sessionID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			slog.WarnContext(ctx, "Failed to end session on disconnect", "session.id", client.sessionID, "error", err)
		}
	}()

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "Client connection error", "session.id", client.sessionID, "error", err)
			}
			return
		}

		reply := s.handleMessage(ctx, client, raw)
		if err := s.write(client, reply); err != nil {
			slog.WarnContext(ctx, "Failed to write message", "session.id", client.sessionID, "error", err)
			return
		}
	}
}

// handleMessage dispatches one client message and returns the reply.
func (s *Server) handleMessage(ctx context.Context, client *wsClient, raw []byte) *proto.ServerToClientMessage {
	ctx, span := tracer.Start(ctx, "server.handleMessage")
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return proto.Error("malformed message")
	}
	if err := validator.Struct(message); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return proto.Error(err.Error())
	}
	span.SetAttributes(attribute.String("message.type", message.Type))

	state, err := s.dispatch(ctx, client, &message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Message rejected")
		slog.DebugContext(ctx, "Rejected client message", "type", message.Type, "session.id", client.sessionID, "error", err)
		return proto.Error(err.Error())
	}
	return proto.Update(state)
}

func (s *Server) dispatch(ctx context.Context, client *wsClient, message *proto.ClientToServerMessage) (models.GameResponse, error) {
	labels := s.cfg.Players

	switch message.Type {
	case proto.TypeStart, proto.TypeRestart:
		level, err := s.levelFor(ctx, client, message)
		if err != nil {
			return models.GameResponse{}, err
		}
		if client.sessionID != "" {
			sess, err := s.sessions.Restart(ctx, client.sessionID, level)
			if err == nil {
				return models.NewGameResponse(sess, labels), nil
			}
			if !errors.Is(err, session.ErrSessionNotFound) {
				return models.GameResponse{}, err
			}
		}
		sess, err := s.sessions.Start(ctx, level)
		if err != nil {
			return models.GameResponse{}, err
		}
		client.sessionID = sess.ID
		return models.NewGameResponse(sess, labels), nil

	case proto.TypeMove:
		if client.sessionID == "" {
			return models.GameResponse{}, game.ErrGameOver
		}
		if message.Cell == nil {
			return models.GameResponse{}, fmt.Errorf("%w: missing cell", game.ErrOutOfBounds)
		}
		turn, err := s.sessions.PlayerMove(ctx, client.sessionID, *message.Cell)
		if err != nil {
			return models.GameResponse{}, err
		}
		return models.NewTurnResponse(turn, labels), nil
	}
	return models.GameResponse{}, fmt.Errorf("unknown message type %q", message.Type)
}

// levelFor returns the requested difficulty. A restart without one keeps the
// current level.
func (s *Server) levelFor(ctx context.Context, client *wsClient, message *proto.ClientToServerMessage) (game.Level, error) {
	if message.Difficulty != "" {
		return game.ParseLevel(message.Difficulty)
	}
	if message.Type == proto.TypeRestart && client.sessionID != "" {
		sess, err := s.sessions.Get(ctx, client.sessionID)
		if err == nil {
			return sess.Game.Level, nil
		}
	}
	return 0, fmt.Errorf("%w: difficulty is required", game.ErrUnknownLevel)
}

func (s *Server) write(client *wsClient, message *proto.ServerToClientMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return client.conn.WriteMessage(websocket.TextMessage, data)
}
