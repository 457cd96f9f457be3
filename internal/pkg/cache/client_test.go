package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisClient(mr.Addr())
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

// Os dois clientes precisam se comportar igual para repositórios e middlewares.
func TestClients_GetSetDelete(t *testing.T) {
	redisClient, _ := newRedisClient(t)
	clients := map[string]Client{
		"memory": NewMemoryClient(),
		"redis":  redisClient,
	}

	for name, c := range clients {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.Ping(ctx))

			_, err := c.Get(ctx, LayoutKey)
			assert.ErrorIs(t, err, ErrCacheMiss)
			_, err = c.GetInt(ctx, "rate-limit:10.0.0.9")
			assert.ErrorIs(t, err, ErrCacheMiss)

			require.NoError(t, c.Set(ctx, LayoutKey, []byte(`[{"id":1}]`), 0))
			val, err := c.Get(ctx, LayoutKey)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":1}]`, val)

			require.NoError(t, c.Delete(ctx, LayoutKey, "outra"))
			_, err = c.Get(ctx, LayoutKey)
			assert.ErrorIs(t, err, ErrCacheMiss)
			require.NoError(t, c.Delete(ctx))
		})
	}
}

func TestClients_IncrCounts(t *testing.T) {
	redisClient, _ := newRedisClient(t)
	clients := map[string]Client{
		"memory": NewMemoryClient(),
		"redis":  redisClient,
	}

	for name, c := range clients {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			n, err := c.Incr(ctx, "contador")
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			require.NoError(t, c.Set(ctx, "rate-limit:10.0.0.1", 1, time.Minute))
			n, err = c.Incr(ctx, "rate-limit:10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			count, err := c.GetInt(ctx, "rate-limit:10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			require.NoError(t, c.Set(ctx, "texto", "5", 0))
			n, err = c.Incr(ctx, "texto")
			require.NoError(t, err)
			assert.Equal(t, int64(6), n)

			require.NoError(t, c.Set(ctx, LayoutKey, "[]", 0))
			_, err = c.Incr(ctx, LayoutKey)
			assert.Error(t, err)
		})
	}
}

func TestMemoryClient_IncrKeepsExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient()

	require.NoError(t, c.Set(ctx, "rate-limit:10.0.0.1", 1, 50*time.Millisecond))
	_, err := c.Incr(ctx, "rate-limit:10.0.0.1")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	_, err = c.GetInt(ctx, "rate-limit:10.0.0.1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisClient_IncrKeepsExpiration(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisClient(t)

	require.NoError(t, c.Set(ctx, "rate-limit:10.0.0.1", 1, time.Minute))
	_, err := c.Incr(ctx, "rate-limit:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("rate-limit:10.0.0.1"))

	mr.FastForward(time.Minute)
	_, err = c.GetInt(ctx, "rate-limit:10.0.0.1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisClient_PingFailsWhenServerIsDown(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	c := NewRedisClient(mr.Addr())
	defer c.Close()
	mr.Close()

	assert.Error(t, c.Ping(context.Background()))
}
