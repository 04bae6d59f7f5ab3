package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedApp(p LimitProfile) *fiber.App {
	app := fiber.New()
	app.Get("/", RateLimit(p), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimitInMemory(t *testing.T) {
	UseRedis(nil)
	app := limitedApp(LimitProfile{Name: "test-mem", Max: 2, Window: time.Minute})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		UseRedis(nil)
	})
	UseRedis(client)

	app := limitedApp(LimitProfile{Name: "test-redis", Max: 1, Window: time.Minute})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitProfilesAreIndependent(t *testing.T) {
	UseRedis(nil)

	app := fiber.New()
	app.Get("/a", RateLimit(LimitProfile{Name: "prof-a", Max: 1, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendString("a")
	})
	app.Get("/b", RateLimit(LimitProfile{Name: "prof-b", Max: 1, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendString("b")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/a", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/a", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// profile b has its own window
	resp, err = app.Test(httptest.NewRequest("GET", "/b", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
