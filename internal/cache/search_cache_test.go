package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmtech/internal/domain"
)

func newMiniRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := Dial(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNopNeverHits(t *testing.T) {
	var c SearchCache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, "k", []domain.Listing{{ID: "eq-001"}}))
	got, _, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestEntryKeyIsNamespacedByGeneration(t *testing.T) {
	assert.Equal(t, "farmtech:search:0:category=Plow", entryKey(0, "category=Plow"))
	assert.NotEqual(t, entryKey(1, "category=Plow"), entryKey(2, "category=Plow"))
}

func TestRedisReportsUnreachableServer(t *testing.T) {
	// nothing listens on port 1
	c := NewRedis(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}))
	defer c.Close()

	_, _, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisRoundTrip(t *testing.T) {
	c, mr := newMiniRedis(t)
	ctx := context.Background()

	got, gen, ok, err := c.Get(ctx, "type=sale")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, int64(0), gen)

	page := []domain.Listing{{ID: "eq-005", Name: "Drip Irrigation Kit"}, {ID: "eq-003"}}
	require.NoError(t, c.Set(ctx, gen, "type=sale", page))

	got, _, ok, err = c.Get(ctx, "type=sale")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, page, got)
	assert.Equal(t, TTL, mr.TTL(entryKey(0, "type=sale")))

	mr.FastForward(TTL)
	_, _, ok, err = c.Get(ctx, "type=sale")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisEmptyPageIsAHit(t *testing.T) {
	c, _ := newMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, "category=Drone", []domain.Listing{}))
	got, _, ok, err := c.Get(ctx, "category=Drone")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestRedisInvalidateHidesOlderEntries(t *testing.T) {
	c, mr := newMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, "k", []domain.Listing{{ID: "eq-001"}}))
	require.NoError(t, c.Invalidate(ctx))

	_, gen, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
	// the old page is orphaned, not deleted
	assert.True(t, mr.Exists(entryKey(0, "k")))
}

// A page read before a write must not become visible after that write's
// Invalidate, even when it is stored afterwards.
func TestRedisSetAfterInvalidateStaysHidden(t *testing.T) {
	c, _ := newMiniRedis(t)
	ctx := context.Background()

	_, gen, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	stale := []domain.Listing{{ID: "eq-001"}}
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, gen, "k", stale))

	_, _, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCorruptEntryIsAnError(t *testing.T) {
	c, mr := newMiniRedis(t)
	require.NoError(t, mr.Set(entryKey(0, "k"), "not json"))

	_, _, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
