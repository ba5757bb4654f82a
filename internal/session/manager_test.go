package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisManager(t *testing.T, ttl time.Duration) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewManagerWithStore(NewRedisStore(client), ttl), mr
}

func TestEstablishResolveRoundTrip(t *testing.T) {
	m, _ := newRedisManager(t, time.Hour)
	ctx := context.Background()

	token, err := m.Establish(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)
}

func TestTerminateInvalidatesToken(t *testing.T) {
	m, _ := newRedisManager(t, time.Hour)
	ctx := context.Background()

	token, err := m.Establish(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, m.Terminate(ctx, token))

	_, ok, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveUnknownToken(t *testing.T) {
	m, _ := newRedisManager(t, time.Hour)

	_, ok, err := m.Resolve(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = m.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	m, mr := newRedisManager(t, time.Minute)
	ctx := context.Background()

	token, err := m.Establish(ctx, 5)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, ok, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokensAreUnique(t *testing.T) {
	m, _ := newRedisManager(t, time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := m.Establish(ctx, uint(i+1))
		require.NoError(t, err)
		assert.False(t, seen[token], "token issued twice")
		seen[token] = true
	}
}

func TestMemoryStoreFallback(t *testing.T) {
	m := NewManagerWithStore(NewMemoryStore(), 50*time.Millisecond)
	ctx := context.Background()

	token, err := m.Establish(ctx, 9)
	require.NoError(t, err)

	userID, ok, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(9), userID)

	// Entries expire after the TTL.
	time.Sleep(80 * time.Millisecond)
	_, ok, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Terminate on an already-absent token is a no-op.
	require.NoError(t, m.Terminate(ctx, token))
}

func TestNewManagerPicksStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	withRedis := NewManager(client, time.Hour)
	_, isRedis := withRedis.store.(*redisStore)
	assert.True(t, isRedis)

	withoutRedis := NewManager(nil, time.Hour)
	_, isMemory := withoutRedis.store.(*memoryStore)
	assert.True(t, isMemory)
}
