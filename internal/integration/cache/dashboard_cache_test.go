package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTotals struct {
	Total string `json:"total"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*DashboardCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewDashboardCache(client, ttl), server
}

func countingLoader(calls *int, value cachedTotals) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		*calls++
		return value, nil
	}
}

func TestDashboardCache_FetchJSON(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestCache(t, time.Minute)
	dealerID := uuid.New()

	key, err := cache.BuildKey(ctx, dealerID, "dashboard:week:UTC")
	require.NoError(t, err)
	assert.Equal(t, "dealer:"+dealerID.String()+":v0:dashboard:week:UTC", key)

	calls := 0
	var first cachedTotals
	require.NoError(t, cache.FetchJSON(ctx, key, &first, countingLoader(&calls, cachedTotals{Total: "120.50", Count: 2})))
	assert.Equal(t, cachedTotals{Total: "120.50", Count: 2}, first)

	var second cachedTotals
	require.NoError(t, cache.FetchJSON(ctx, key, &second, countingLoader(&calls, cachedTotals{Total: "999", Count: 9})))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	assert.True(t, server.Exists(key))
	assert.Equal(t, time.Minute, server.TTL(key))

	server.FastForward(2 * time.Minute)

	var expired cachedTotals
	require.NoError(t, cache.FetchJSON(ctx, key, &expired, countingLoader(&calls, cachedTotals{Total: "999", Count: 9})))
	assert.Equal(t, "999", expired.Total)
	assert.Equal(t, 2, calls)
}

func TestDashboardCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)
	dealerID := uuid.New()
	otherDealerID := uuid.New()

	before, err := cache.BuildKey(ctx, dealerID, "dashboard:all:UTC")
	require.NoError(t, err)
	other, err := cache.BuildKey(ctx, otherDealerID, "dashboard:all:UTC")
	require.NoError(t, err)

	require.NoError(t, cache.Invalidate(ctx, dealerID))

	after, err := cache.BuildKey(ctx, dealerID, "dashboard:all:UTC")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
	assert.Contains(t, after, ":v1:")

	otherAfter, err := cache.BuildKey(ctx, otherDealerID, "dashboard:all:UTC")
	require.NoError(t, err)
	assert.Equal(t, other, otherAfter)
}

func TestDashboardCache_LoaderError(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestCache(t, time.Minute)
	loadErr := errors.New("snapshot unavailable")

	var dst cachedTotals
	err := cache.FetchJSON(ctx, "dealer:x:v0:dashboard", &dst, func(context.Context) (any, error) {
		return nil, loadErr
	})

	assert.ErrorIs(t, err, loadErr)
	assert.False(t, server.Exists("dealer:x:v0:dashboard"))
}

func TestDashboardCache_RedisDown(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestCache(t, time.Minute)
	server.Close()

	_, err := cache.BuildKey(ctx, uuid.New(), "dashboard:week:UTC")
	assert.Error(t, err)

	calls := 0
	var dst cachedTotals
	require.NoError(t, cache.FetchJSON(ctx, "dealer:x:v0:dashboard", &dst, countingLoader(&calls, cachedTotals{Total: "5", Count: 1})))
	assert.Equal(t, "5", dst.Total)
	assert.Equal(t, 1, calls)
}

func TestDashboardCache_UnreadableEntry(t *testing.T) {
	ctx := context.Background()
	cache, server := newTestCache(t, time.Minute)
	require.NoError(t, server.Set("dealer:x:v0:dashboard", "{not json"))

	calls := 0
	var dst cachedTotals
	require.NoError(t, cache.FetchJSON(ctx, "dealer:x:v0:dashboard", &dst, countingLoader(&calls, cachedTotals{Total: "7", Count: 3})))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, dst.Count)
}
