package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reservalo/booking-api/db"
	appredis "github.com/reservalo/booking-api/redis"
)

// HealthCheck reports liveness and dependency state.
func HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"
	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	cacheStatus := "disabled"
	if appredis.Client != nil {
		cacheStatus = "up"
		if err := appredis.Client.Ping(c.Context()).Err(); err != nil {
			cacheStatus = "down"
		}
	}

	status := fiber.StatusOK
	overall := "ok"
	if dbStatus == "down" {
		status = fiber.StatusInternalServerError
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   overall,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
