package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reservalo/booking-api/config"
)

var Client *redis.Client

// InitRedis connects to the shared Redis when REDIS_ADDR is configured.
// Without it the cache and rate limiter fall back to in-process state, which
// is only consistent for single-instance deployments.
func InitRedis() {
	cfg := config.Get()
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, using in-memory cache and rate limiting")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: failed to connect to Redis at %s: %v, falling back to in-memory", cfg.RedisAddr, err)
		return
	}

	Client = client
	log.Println("✅ Connected to Redis")
}
