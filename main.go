package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/reservalo/booking-api/cache"
	"github.com/reservalo/booking-api/config"
	"github.com/reservalo/booking-api/controllers"
	"github.com/reservalo/booking-api/cron"
	"github.com/reservalo/booking-api/db"
	"github.com/reservalo/booking-api/middleware"
	appredis "github.com/reservalo/booking-api/redis"
	"github.com/reservalo/booking-api/routes"
)

func main() {
	cfg := config.Get()

	db.Init()
	db.Migrate()

	appredis.InitRedis()
	appCache := cache.New(appredis.Client)
	middleware.UseRedis(appredis.Client)
	controllers.Setup(appCache)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	routes.SetupAuthRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupCatalogRoutes(app)

	cron.StartCronJobs()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
