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

func newRedisStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, time.Hour), mr
}

func TestRedisStore_CreateGetDestroy(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, store.Destroy(ctx, token))

	_, ok, err = store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_UnknownToken(t *testing.T) {
	store, _ := newRedisStore(t)

	_, ok, err := store.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_CreateGetDestroy(t *testing.T) {
	store := NewStore(nil, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, 9)
	require.NoError(t, err)

	userID, ok, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(9), userID)

	require.NoError(t, store.Destroy(ctx, token))

	_, ok, _ = store.Get(ctx, token)
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := &memoryStore{ttl: -time.Second, sessions: make(map[string]memorySession)}

	token, err := store.Create(context.Background(), 1)
	require.NoError(t, err)

	_, ok, _ := store.Get(context.Background(), token)
	assert.False(t, ok)
}

func TestStore_TokensAreUnique(t *testing.T) {
	store := NewStore(nil, time.Hour)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := store.Create(ctx, uint(i))
		require.NoError(t, err)
		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}
