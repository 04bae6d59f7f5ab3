package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/reservalo/booking-api/db"
	"github.com/reservalo/booking-api/models"
	"github.com/reservalo/booking-api/utils"
)

// GetProviderInfo returns the public booking-page profile for a username.
func GetProviderInfo(c *fiber.Ctx) error {
	username := c.Params("username")

	var provider models.User
	if err := db.DB.Preload("WorkSchedules.Slots", "is_available = ?", true).
		Where("username = ?", username).
		First(&provider).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Provider not found")
	}

	return c.JSON(fiber.Map{
		"id":              provider.ID,
		"username":        provider.Username,
		"name":            provider.Name,
		"specialty":       provider.Specialty,
		"address":         provider.Address,
		"phone_number":    provider.PhoneNumber,
		"profile_picture": provider.ProfilePicture,
		"work_schedules":  provider.WorkSchedules,
	})
}

// GetProviderAvailability returns the bookable slots for a provider and date.
func GetProviderAvailability(c *fiber.Ctx) error {
	username := c.Params("username")
	dateStr := c.Query("date")

	if _, err := utils.ParseDate(dateStr); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
	}

	var provider models.User
	if err := db.DB.Where("username = ?", username).First(&provider).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Provider not found")
	}

	slots, err := resolver.ResolveDay(c.Context(), provider.ID, dateStr)
	if err != nil {
		log.Printf("Error resolving availability for provider %d on %s: %v", provider.ID, dateStr, err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to resolve availability")
	}

	return c.JSON(fiber.Map{
		"provider": provider.Username,
		"date":     dateStr,
		"slots":    slots,
	})
}

// UpdateProfile updates the provider's mutable profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var provider models.User
	if err := db.DB.First(&provider, userID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Provider not found")
	}

	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	// identity and credential fields never change through this endpoint
	protected := []string{
		"id", "ID", "username", "email", "password",
		"email_verified", "verification_token", "token_expires_at",
	}
	for _, field := range protected {
		delete(updateData, field)
	}

	if err := db.DB.Model(&provider).Updates(updateData).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	if err := db.DB.First(&provider, userID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to retrieve updated profile")
	}

	provider.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": provider,
	})
}

// ChangePassword verifies the current password and persists a new one.
// Reusing the current password is rejected.
func ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type PasswordInput struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	input := new(PasswordInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Missing required fields")
	}

	var provider models.User
	if err := db.DB.First(&provider, userID).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Provider not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(provider.Password), []byte(input.CurrentPassword)); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	if input.NewPassword == input.CurrentPassword {
		return utils.Error(c, fiber.StatusBadRequest, "New password must be different from the current password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	if err := db.DB.Model(&provider).Update("password", string(hashed)).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return utils.Success(c, "Password updated successfully")
}

// UploadProfilePicture stores the provider's photo in Cloudinary and saves
// the returned URL.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Picture file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Failed to read picture file")
	}
	defer file.Close()

	url, err := utils.UploadToCloudinary(file, fmt.Sprintf("provider_%d", userID), "profiles")
	if err != nil {
		log.Printf("Cloudinary upload failed for provider %d: %v", userID, err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to upload picture")
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("profile_picture", url).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save picture URL")
	}

	return c.JSON(fiber.Map{
		"message":         "Profile picture updated",
		"profile_picture": url,
	})
}
