package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reservalo/booking-api/controllers"
)

// SetupCatalogRoutes configures reference-data and health endpoints.
func SetupCatalogRoutes(app *fiber.App) {
	app.Get("/api/health", controllers.HealthCheck)
	app.Get("/api/health-insurance", controllers.GetHealthInsurance)
	app.Get("/api/visit-types", controllers.GetVisitTypes)
	app.Get("/api/consult-types", controllers.GetConsultTypes)
	app.Get("/api/practice-types", controllers.GetPracticeTypes)
}
