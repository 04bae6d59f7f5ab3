package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/reservalo/booking-api/config"
	"github.com/reservalo/booking-api/db"
	"github.com/reservalo/booking-api/models"
	"github.com/reservalo/booking-api/utils"
)

// Protected guards provider-scoped routes: it verifies the bearer token,
// resolves the provider and requires a verified email. Every failure mode
// returns the same 401 so callers cannot probe which check tripped.
func Protected() fiber.Handler {
	secret := config.Get().JWTSecret

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return unauthorized(c)
			}

			var provider models.User
			if err := db.DB.First(&provider, userID).Error; err != nil {
				return unauthorized(c)
			}
			if !provider.EmailVerified {
				return unauthorized(c)
			}

			c.Locals("userID", userID)
			c.Locals("provider", &provider)

			return c.Next()
		},
	})
}

// extractUserID handles multiple potential formats of user ID in token
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return unauthorized(c)
}

func unauthorized(c *fiber.Ctx) error {
	return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
}
