package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewConsoleHandler(&text, "debug", "text"),
		NewConsoleHandler(&js, "warn", "json"),
	)
	log := slog.New(h).With("session.id", "abc")

	log.Info("opponent moved", "cell", 4)
	log.Warn("board locked")

	assert.Contains(t, text.String(), "opponent moved")
	assert.Contains(t, text.String(), "board locked")
	assert.Contains(t, text.String(), "session.id=abc")

	lines := bytes.Split(bytes.TrimSpace(js.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "board locked", rec["msg"])
	assert.Equal(t, "abc", rec["session.id"])
}

func TestMultiHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(NewConsoleHandler(&buf, "error", "text"))

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewMultiHandler(NewConsoleHandler(&buf, "info", "text"))).WithGroup("game")

	log.Info("finished", "winner", "X")

	assert.Contains(t, buf.String(), "game.winner=X")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
