package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"ctchen222/tic-tac-toe-solo/internal/api/controller"
	"ctchen222/tic-tac-toe-solo/internal/api/service"
	"ctchen222/tic-tac-toe-solo/internal/bot"
	"ctchen222/tic-tac-toe-solo/internal/config"
	"ctchen222/tic-tac-toe-solo/internal/game"
	"ctchen222/tic-tac-toe-solo/internal/session"
	"ctchen222/tic-tac-toe-solo/pkg/proto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires a server whose opponent always plays its heuristic move.
func newTestServer(t *testing.T) (*httptest.Server, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	analyzer, err := bot.NewAnalyzer(bot.Probabilities{game.Easy: 1, game.Medium: 1, game.Hard: 1})
	require.NoError(t, err)
	store := session.NewMemoryStore(0)
	sessions, err := session.NewService(store, analyzer)
	require.NoError(t, err)
	tokens := service.NewTokenService(cfg.Session.TokenSecret, cfg.Session.TTL)
	games := controller.NewGameController(sessions, analyzer, tokens, cfg)

	static := fstest.MapFS{
		"index.html": {Data: []byte("<h1>Tic-Tac-Toe</h1>")},
		"style.css":  {Data: []byte(".cell{}")},
	}
	srv, err := NewServer(cfg, sessions, games, static)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	return ts, store
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg any) proto.ServerToClientMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(msg))
	var reply proto.ServerToClientMessage
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestServer_StaticFiles(t *testing.T) {
	ts, _ := newTestServer(t)

	for path, want := range map[string]string{
		"/":                 "Tic-Tac-Toe",
		"/static/style.css": ".cell",
	} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, string(body), want, path)
	}
}

func TestServer_Health(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocket_Game(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	reply := roundTrip(t, conn, map[string]any{"type": "start", "difficulty": "hard"})
	require.Equal(t, proto.TypeUpdate, reply.Type, reply.Reason)
	require.NotNil(t, reply.State)
	assert.True(t, reply.State.InGame)
	assert.Equal(t, "hard", reply.State.Difficulty)

	reply = roundTrip(t, conn, map[string]any{"type": "move", "cell": 0})
	require.Equal(t, proto.TypeUpdate, reply.Type, reply.Reason)
	assert.Equal(t, []int{1, 0, 0, 0, -1, 0, 0, 0, 0}, reply.State.Board)
	require.NotNil(t, reply.State.OpponentCell)
	assert.Equal(t, game.CenterCell, *reply.State.OpponentCell)

	reply = roundTrip(t, conn, map[string]any{"type": "move", "cell": 4})
	assert.Equal(t, proto.TypeError, reply.Type)
	assert.Contains(t, reply.Reason, "cell already taken")

	reply = roundTrip(t, conn, map[string]any{"type": "restart"})
	require.Equal(t, proto.TypeUpdate, reply.Type, reply.Reason)
	assert.Equal(t, make([]int, game.BoardSize), reply.State.Board)
	assert.Equal(t, "hard", reply.State.Difficulty)
}

func TestWebSocket_InvalidMessages(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	tests := []struct {
		name string
		msg  any
	}{
		{name: "Unknown type", msg: map[string]any{"type": "rematch"}},
		{name: "Unknown difficulty", msg: map[string]any{"type": "start", "difficulty": "insane"}},
		{name: "Start without difficulty", msg: map[string]any{"type": "start"}},
		{name: "Move before start", msg: map[string]any{"type": "move", "cell": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := roundTrip(t, conn, tt.msg)
			assert.Equal(t, proto.TypeError, reply.Type)
			assert.NotEmpty(t, reply.Reason)
		})
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var reply proto.ServerToClientMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "malformed message", reply.Reason)
}

func TestWebSocket_DisconnectEndsSession(t *testing.T) {
	ts, store := newTestServer(t)
	conn := dial(t, ts)

	reply := roundTrip(t, conn, map[string]any{"type": "start", "difficulty": "easy"})
	require.Equal(t, proto.TypeUpdate, reply.Type)
	require.Equal(t, 1, store.Len())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
