package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guards(t *testing.T) map[string]Guard {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return map[string]Guard{
		"redis":  NewRedis(client, time.Hour, time.Minute),
		"memory": NewMemory(time.Hour, time.Minute),
	}
}

func TestGuardReserveCommitRelease(t *testing.T) {
	for name, g := range guards(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			res, reserved, err := g.Reserve(ctx, "key-1", "ORDER-1")
			require.NoError(t, err)
			assert.True(t, reserved)
			assert.Equal(t, Reservation{OrderID: "ORDER-1"}, res)

			res, reserved, err = g.Reserve(ctx, "key-1", "ORDER-2")
			require.NoError(t, err)
			assert.False(t, reserved)
			assert.Equal(t, Reservation{OrderID: "ORDER-1", Committed: false}, res)

			require.NoError(t, g.Commit(ctx, "key-1", "ORDER-1"))

			res, reserved, err = g.Reserve(ctx, "key-1", "ORDER-3")
			require.NoError(t, err)
			assert.False(t, reserved)
			assert.Equal(t, Reservation{OrderID: "ORDER-1", Committed: true}, res)

			require.NoError(t, g.Release(ctx, "key-1"))

			res, reserved, err = g.Reserve(ctx, "key-1", "ORDER-4")
			require.NoError(t, err)
			assert.True(t, reserved)
			assert.Equal(t, "ORDER-4", res.OrderID)
		})
	}
}

func TestRedisGuardExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	g := NewRedis(client, time.Hour, time.Minute)
	ctx := context.Background()

	_, reserved, err := g.Reserve(ctx, "pending", "ORDER-1")
	require.NoError(t, err)
	require.True(t, reserved)
	_, reserved, err = g.Reserve(ctx, "committed", "ORDER-2")
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, g.Commit(ctx, "committed", "ORDER-2"))

	mr.FastForward(2 * time.Minute)

	res, reserved, err := g.Reserve(ctx, "pending", "ORDER-3")
	require.NoError(t, err)
	assert.True(t, reserved, "abandoned pending key should expire")
	assert.Equal(t, "ORDER-3", res.OrderID)

	res, reserved, err = g.Reserve(ctx, "committed", "ORDER-4")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, Reservation{OrderID: "ORDER-2", Committed: true}, res)

	mr.FastForward(2 * time.Hour)
	_, reserved, err = g.Reserve(ctx, "committed", "ORDER-5")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestMemoryGuardExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewMemory(time.Hour, time.Minute)
	g.now = func() time.Time { return now }
	ctx := context.Background()

	_, reserved, err := g.Reserve(ctx, "pending", "ORDER-1")
	require.NoError(t, err)
	require.True(t, reserved)
	_, _, err = g.Reserve(ctx, "committed", "ORDER-2")
	require.NoError(t, err)
	require.NoError(t, g.Commit(ctx, "committed", "ORDER-2"))

	now = now.Add(2 * time.Minute)
	_, reserved, err = g.Reserve(ctx, "pending", "ORDER-3")
	require.NoError(t, err)
	assert.True(t, reserved)
	res, reserved, err := g.Reserve(ctx, "committed", "ORDER-4")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.True(t, res.Committed)

	now = now.Add(2 * time.Hour)
	_, reserved, err = g.Reserve(ctx, "committed", "ORDER-5")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Len(t, g.keys, 1, "expired keys are evicted")
}
