package session

import (
	"context"
	"testing"
	"time"

	"ctchen222/tic-tac-toe-solo/internal/game"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *redis.Client) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())

	return NewRedisStore(rdb, ttl), rdb
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, rdb := newRedisStore(t, time.Hour)
	ctx := context.Background()

	g := game.New(game.Hard)
	_, err := g.PlayerMove(0)
	require.NoError(t, err)
	_, err = g.OpponentMove(4)
	require.NoError(t, err)
	sess := &Session{ID: "s1", Game: g, CreatedAt: time.Now().UTC().Truncate(time.Second)}

	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, g.Board, got.Game.Board)
	assert.Equal(t, game.Hard, got.Game.Level)
	assert.True(t, got.Game.InGame)
	assert.True(t, sess.CreatedAt.Equal(got.CreatedAt))

	ttl, err := rdb.TTL(ctx, "session:s1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "s1"), ErrSessionNotFound)
}

func TestRedisStore_FinishedGame(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()

	g := game.New(game.Easy)
	g.Board = game.Board{game.PlayerX, game.PlayerX, game.Empty}
	_, err := g.PlayerMove(2)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &Session{ID: "s2", Game: g}))

	got, err := store.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, game.Win, got.Game.Result.Kind)
	assert.Equal(t, game.PlayerX, got.Game.Result.Winner)
	assert.Equal(t, []int{0, 1, 2}, got.Game.Result.Strike)
	assert.False(t, got.Game.InGame)
}

func TestRedisStore_RejectsSessionWithoutGame(t *testing.T) {
	store, rdb := newRedisStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, "session:broken", `{"id":"broken"}`, time.Hour).Err())

	_, err := store.Get(ctx, "broken")
	assert.ErrorIs(t, err, ErrCorruptSession)
}
