package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is nil when REDIS_URL is unset; callers must treat it as optional.
var Cache *CacheStore

// CacheStore is an explicit TTL cache over Redis. Every cached read has a
// named key, every entry a TTL, and every handler that mutates the
// underlying rows calls Invalidate with the affected keys. No implicit
// module-level maps.
type CacheStore struct {
	rdb        *redis.Client
	defaultTTL time.Duration
}

// Key scheme. Keep these in one place so invalidation sites and read sites
// cannot drift apart.
func TreatmentListKey() string        { return "treatments:active" }
func CategoryListKey() string         { return "categories:active" }
func DashboardKey(date string) string { return "dashboard:" + date }

func ConnectCache() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		return
	}
	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}
	Cache = NewCacheStore(redis.NewClient(opt), 5*time.Minute)
}

func NewCacheStore(rdb *redis.Client, defaultTTL time.Duration) *CacheStore {
	return &CacheStore{rdb: rdb, defaultTTL: defaultTTL}
}

// GetJSON loads a cached value into dest. The second return is false on a
// miss; cache failures are returned, never swallowed into a fake miss with
// stale side effects.
func (c *CacheStore) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores a value under key. A zero ttl means the store default.
func (c *CacheStore) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the given keys. Mutating handlers call this after a
// successful write.
func (c *CacheStore) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
