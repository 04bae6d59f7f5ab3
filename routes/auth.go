package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reservalo/booking-api/controllers"
	"github.com/reservalo/booking-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", middleware.RateLimit(middleware.RegisterLimit), controllers.Register)
	auth.Post("/login", middleware.RateLimit(middleware.LoginLimit), controllers.Login)
	auth.Get("/verify", middleware.RateLimit(middleware.VerifyLimit), controllers.VerifyEmail)
	auth.Get("/verification-token", middleware.RateLimit(middleware.VerifyLimit), controllers.GetVerificationToken)
	auth.Post("/refresh", controllers.RefreshToken)
}
