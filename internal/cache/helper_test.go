package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())
	t.Cleanup(func() { client = nil })
	return mr
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	in := cachedUser{ID: 7, Username: "alice"}
	require.NoError(t, SetJSON(ctx, "user:7", in, time.Minute))

	var out cachedUser
	found, err := GetJSON(ctx, "user:7", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSONMiss(t *testing.T) {
	withMiniredis(t)

	var out cachedUser
	found, err := GetJSON(context.Background(), "user:missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSONExpiry(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "user:7", cachedUser{ID: 7}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out cachedUser
	found, err := GetJSON(ctx, "user:7", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideFetchesOnMissThenCaches(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			*dest = cachedUser{ID: 1, Username: "alice"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, "user:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, 1, fetches)

	// Second call is served from the cache.
	var second cachedUser
	require.NoError(t, Aside(ctx, "user:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, "alice", second.Username)
	assert.Equal(t, 1, fetches)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	withMiniredis(t)

	wantErr := errors.New("source down")
	var out cachedUser
	err := Aside(context.Background(), "user:1", &out, time.Minute, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestAsideDegradesWithoutClient(t *testing.T) {
	client = nil

	var out cachedUser
	err := Aside(context.Background(), "user:1", &out, time.Minute, func() error {
		out = cachedUser{ID: 2, Username: "bob"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", out.Username)
}

func TestInvalidateUser(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(9), cachedUser{ID: 9}, time.Minute))
	InvalidateUser(ctx, 9)

	var out cachedUser
	found, err := GetJSON(ctx, UserKey(9), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateFeed(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FeedKey, []cachedUser{{ID: 1}}, time.Minute))
	InvalidateFeed(ctx)

	var out []cachedUser
	found, err := GetJSON(ctx, FeedKey, &out)
	require.NoError(t, err)
	assert.False(t, found)
}
