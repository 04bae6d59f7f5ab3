package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reservalo/booking-api/controllers"
	"github.com/reservalo/booking-api/middleware"
)

// SetupAppointmentRoutes configures the public booking endpoints.
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/api/appointments")
	appointment.Post("/", middleware.RateLimit(middleware.BookingLimit), controllers.CreateAppointment)
	appointment.Get("/date/:date", controllers.GetAppointmentsByDate)
}
