package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reservalo/booking-api/controllers"
	"github.com/reservalo/booking-api/middleware"
)

// SetupProviderRoutes configures the public provider pages and the
// bearer-protected management routes.
func SetupProviderRoutes(app *fiber.App) {
	// public booking page
	public := app.Group("/api/provider")
	public.Get("/:username/info", controllers.GetProviderInfo)
	public.Get("/:username/availability", controllers.GetProviderAvailability)

	proveedor := app.Group("/api/proveedor", middleware.Protected())

	proveedor.Get("/work-schedule", controllers.GetWorkSchedule)
	proveedor.Put("/work-schedule", controllers.PutWorkSchedule)
	proveedor.Post("/work-schedule", controllers.WorkScheduleMethodNotAllowed)

	proveedor.Post("/available-slots", controllers.CreateAvailableSlot)
	proveedor.Get("/available-slots", controllers.ListAvailableSlots)
	proveedor.Delete("/available-slots/:id", controllers.DeleteAvailableSlot)

	proveedor.Post("/unavailable-days", controllers.CreateUnavailableDay)
	proveedor.Get("/unavailable-days", controllers.ListUnavailableDays)
	proveedor.Delete("/unavailable-days/:id", controllers.DeleteUnavailableDay)

	proveedor.Post("/unavailable-time-frames", controllers.CreateUnavailableTimeFrame)
	proveedor.Get("/unavailable-time-frames", controllers.ListUnavailableTimeFrames)
	proveedor.Delete("/unavailable-time-frames/:id", controllers.DeleteUnavailableTimeFrame)

	proveedor.Put("/profile", controllers.UpdateProfile)
	proveedor.Put("/profile/password", controllers.ChangePassword)
	proveedor.Post("/profile/picture", controllers.UploadProfilePicture)

	proveedor.Get("/appointments/date/:date", controllers.GetMyAppointmentsByDate)
	proveedor.Put("/appointments/:id/status", controllers.UpdateAppointmentStatus)
	proveedor.Delete("/appointments/:id", controllers.DeleteAppointment)
}
