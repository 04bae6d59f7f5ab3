package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through cache for reference data. With a Redis client it is
// shared across instances; with nil it degrades to a per-process TTL map.
// Producer failures always propagate and are never cached.
type Cache struct {
	rdb *redis.Client

	mu    sync.Mutex
	local map[string]entry
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New builds a cache backed by rdb, or in-memory when rdb is nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{
		rdb:   rdb,
		local: make(map[string]entry),
	}
}

// GetOrSet returns the cached value for key into dest, invoking produce and
// storing its result with the given TTL on a miss.
func (c *Cache) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, produce func() (interface{}, error)) error {
	if data, ok := c.get(ctx, key); ok {
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
		// corrupt entry, fall through to the producer
	}

	v, err := produce()
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.set(ctx, key, data, ttl)

	return json.Unmarshal(data, dest)
}

// Invalidate drops entries immediately so schedule writes never serve stale
// availability.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if c.rdb != nil {
		c.rdb.Del(ctx, keys...)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.local, k)
	}
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err != nil {
			// treat any Redis failure as a miss, best effort
			return nil, false
		}
		return data, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.local[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.local, key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if c.rdb != nil {
		c.rdb.Set(ctx, key, data, ttl)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[key] = entry{data: data, expiresAt: time.Now().Add(ttl)}
}
