package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "auth:lockout:"

// LockoutCache mirrors active lockouts into Redis so a locked identity can
// be rejected without a database round trip. Entries are keyed by the
// normalized login email, which is what a login attempt knows before any
// lookup. It is strictly a read accelerator: the durable counter decides,
// and every cache error reads as a miss.
type LockoutCache struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewLockoutCache(rdb *redis.Client) *LockoutCache {
	return &LockoutCache{rdb: rdb, log: slog.Default()}
}

// GetLock returns the cached lock deadline for the identity, if any.
func (c *LockoutCache) GetLock(ctx context.Context, email string) (time.Time, bool) {
	val, err := c.rdb.Get(ctx, lockKeyPrefix+email).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("lockout cache read failed", "email", email, "error", err)
		}
		return time.Time{}, false
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(unix, 0), true
}

// SetLock records the lock deadline with a TTL matching the window, so the
// entry evicts itself no later than the durable lock expires.
func (c *LockoutCache) SetLock(ctx context.Context, email string, until time.Time) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return
	}
	if err := c.rdb.Set(ctx, lockKeyPrefix+email, until.Unix(), ttl).Err(); err != nil {
		c.log.Warn("lockout cache write failed", "email", email, "error", err)
	}
}

func (c *LockoutCache) ClearLock(ctx context.Context, email string) {
	if err := c.rdb.Del(ctx, lockKeyPrefix+email).Err(); err != nil {
		c.log.Warn("lockout cache delete failed", "email", email, "error", err)
	}
}
