package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/reservalo/booking-api/utils"
)

// LimitProfile names a fixed-window counter with its own threshold, so each
// sensitive endpoint can be tuned independently.
type LimitProfile struct {
	Name   string
	Max    int
	Window time.Duration
}

var (
	LoginLimit    = LimitProfile{Name: "login", Max: 5, Window: time.Minute}
	RegisterLimit = LimitProfile{Name: "register", Max: 3, Window: time.Minute}
	VerifyLimit   = LimitProfile{Name: "verify", Max: 10, Window: time.Minute}
	BookingLimit  = LimitProfile{Name: "booking", Max: 20, Window: time.Minute}
)

var limiterRedis *redis.Client

// UseRedis switches rate-limit counters to the shared Redis so multiple
// instances see the same window state. Counters are best effort either way.
func UseRedis(client *redis.Client) {
	limiterRedis = client
}

// RateLimit rejects requests past the profile threshold with 429. Counters
// are keyed by (caller IP, profile, window) and reset when the window rolls.
func RateLimit(p LimitProfile) fiber.Handler {
	return func(c *fiber.Ctx) error {
		window := time.Now().Unix() / int64(p.Window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", p.Name, c.IP(), window)

		if incr(c.Context(), key, p.Window) > int64(p.Max) {
			return utils.Error(c, fiber.StatusTooManyRequests, "too many requests")
		}
		return c.Next()
	}
}

type memCounter struct {
	count     int64
	expiresAt time.Time
}

var (
	memMu       sync.Mutex
	memCounters = make(map[string]*memCounter)
)

func incr(ctx context.Context, key string, window time.Duration) int64 {
	if limiterRedis != nil {
		pipe := limiterRedis.Pipeline()
		cnt := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err == nil {
			return cnt.Val()
		}
		// Redis unreachable, fall through to per-process counters
	}

	memMu.Lock()
	defer memMu.Unlock()

	now := time.Now()
	if len(memCounters) > 4096 {
		for k, v := range memCounters {
			if now.After(v.expiresAt) {
				delete(memCounters, k)
			}
		}
	}

	mc, ok := memCounters[key]
	if !ok || now.After(mc.expiresAt) {
		mc = &memCounter{expiresAt: now.Add(window)}
		memCounters[key] = mc
	}
	mc.count++
	return mc.count
}
