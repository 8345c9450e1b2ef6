package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dewoosin/paperly-sub000/internal/auth/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.LockoutCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return cache.NewLockoutCache(rdb), srv
}

func TestLockoutCache_SetAndGet(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	until := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	c.SetLock(ctx, "reader@example.com", until)

	got, ok := c.GetLock(ctx, "reader@example.com")
	require.True(t, ok)
	assert.WithinDuration(t, until, got, time.Second)

	// The entry evicts itself no later than the lock expires.
	srv.FastForward(31 * time.Minute)
	_, ok = c.GetLock(ctx, "reader@example.com")
	assert.False(t, ok)
}

func TestLockoutCache_MissForUnknownEmail(t *testing.T) {
	c, _ := newTestCache(t)

	_, ok := c.GetLock(context.Background(), "nobody@example.com")
	assert.False(t, ok)
}

func TestLockoutCache_ClearLock(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetLock(ctx, "reader@example.com", time.Now().Add(10*time.Minute))
	c.ClearLock(ctx, "reader@example.com")

	_, ok := c.GetLock(ctx, "reader@example.com")
	assert.False(t, ok)
}

func TestLockoutCache_ExpiredDeadlineNotStored(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetLock(ctx, "reader@example.com", time.Now().Add(-time.Minute))

	_, ok := c.GetLock(ctx, "reader@example.com")
	assert.False(t, ok)
}

// TestLockoutCache_OutageReadsAsMiss pins the authoritative-store contract:
// a cache failure must never decide anything on its own.
func TestLockoutCache_OutageReadsAsMiss(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	c.SetLock(ctx, "reader@example.com", time.Now().Add(10*time.Minute))
	srv.Close()

	_, ok := c.GetLock(ctx, "reader@example.com")
	assert.False(t, ok)

	// Writes during an outage are silently dropped, not fatal.
	c.SetLock(ctx, "other@example.com", time.Now().Add(10*time.Minute))
	c.ClearLock(ctx, "reader@example.com")
}
