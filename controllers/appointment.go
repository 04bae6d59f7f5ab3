package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/reservalo/booking-api/availability"
	"github.com/reservalo/booking-api/db"
	"github.com/reservalo/booking-api/models"
	"github.com/reservalo/booking-api/utils"
)

var (
	errSlotTaken        = errors.New("slot is no longer available")
	errProviderNotFound = errors.New("provider not found")
)

// CreateAppointment books a slot for a client, no auth required. The client
// is upserted by phone number. The availability re-check and the insert run
// in one transaction holding a row lock on the provider, so two concurrent
// bookings for the same slot cannot both succeed.
func CreateAppointment(c *fiber.Ctx) error {
	type BookingInput struct {
		ProviderID     uint   `json:"provider_id"`
		ClientName     string `json:"client_name"`
		PhoneNumber    string `json:"phone_number"`
		Email          string `json:"email"`
		Date           string `json:"date"`
		StartTime      string `json:"start_time"`
		VisitTypeID    uint   `json:"visit_type_id"`
		ConsultTypeID  uint   `json:"consult_type_id"`
		PracticeTypeID uint   `json:"practice_type_id"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.ProviderID == 0 || input.ClientName == "" || input.PhoneNumber == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Missing required fields")
	}
	if input.VisitTypeID == 0 || input.ConsultTypeID == 0 || input.PracticeTypeID == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Visit, consult and practice types are required")
	}
	if _, err := utils.ParseDate(input.Date); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
	}
	start, err := utils.ParseClock(input.StartTime)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid start time, use HH:MM")
	}
	// normalize "9:00" to "09:00" so the slot comparison below lines up
	input.StartTime = utils.FormatClock(start)

	var appointment models.Appointment

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// lock the provider row to serialize bookings per provider
		var locked models.User
		if err := tx.Raw(
			`SELECT id FROM user_accounts WHERE id = ? FOR UPDATE`,
			input.ProviderID,
		).Scan(&locked).Error; err != nil {
			return err
		}
		if locked.ID == 0 {
			return errProviderNotFound
		}

		slots, err := availability.ResolveDay(tx, input.ProviderID, input.Date)
		if err != nil {
			return err
		}
		bookable := false
		for _, s := range slots {
			if s.StartTime == input.StartTime {
				bookable = true
				break
			}
		}
		if !bookable {
			return errSlotTaken
		}

		var client models.Client
		err = tx.Where("phone_number = ?", input.PhoneNumber).First(&client).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			client = models.Client{
				Name:        input.ClientName,
				PhoneNumber: input.PhoneNumber,
				Email:       input.Email,
				ProviderID:  &input.ProviderID,
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			updates := map[string]interface{}{"name": input.ClientName}
			if input.Email != "" {
				updates["email"] = input.Email
			}
			if err := tx.Model(&client).Updates(updates).Error; err != nil {
				return err
			}
		}

		appointment = models.Appointment{
			ProviderID:     input.ProviderID,
			ClientID:       client.ID,
			Date:           input.Date,
			StartTime:      input.StartTime,
			VisitTypeID:    input.VisitTypeID,
			ConsultTypeID:  input.ConsultTypeID,
			PracticeTypeID: input.PracticeTypeID,
			Status:         models.StatusScheduled,
		}
		return tx.Create(&appointment).Error
	})

	switch {
	case errors.Is(err, errProviderNotFound):
		return utils.Error(c, fiber.StatusNotFound, "Provider not found")
	case errors.Is(err, errSlotTaken):
		return utils.Error(c, fiber.StatusConflict, "The selected slot is no longer available")
	case err != nil:
		log.Printf("Error creating appointment: %v", err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create appointment")
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetAppointmentsByDate lists a provider's appointments for a date, joined
// with the client and catalog lookups. An empty day returns an empty list.
func GetAppointmentsByDate(c *fiber.Ctx) error {
	date := c.Params("date")
	if _, err := utils.ParseDate(date); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
	}

	providerID, err := strconv.ParseUint(c.Query("user_account_id"), 10, 64)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "user_account_id is required")
	}

	return listAppointments(c, uint(providerID), date)
}

// GetMyAppointmentsByDate is the provider-scoped listing for the dashboard.
func GetMyAppointmentsByDate(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	date := c.Params("date")
	if _, err := utils.ParseDate(date); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
	}

	return listAppointments(c, userID, date)
}

func listAppointments(c *fiber.Ctx, providerID uint, date string) error {
	appointments := make([]models.Appointment, 0)
	if err := db.DB.
		Preload("Client").
		Preload("VisitType").
		Preload("ConsultType").
		Preload("PracticeType").
		Where("provider_id = ? AND date = ?", providerID, date).
		Order("start_time").
		Find(&appointments).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	return c.JSON(appointments)
}

// UpdateAppointmentStatus moves an appointment through its state machine:
// scheduled to completed or cancelled, both terminal.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	type StatusInput struct {
		Status models.AppointmentStatus `json:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var appointment models.Appointment
	if err := db.DB.Where("id = ? AND provider_id = ?", id, userID).First(&appointment).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "Appointment not found")
	}

	if err := appointment.UpdateStatus(db.DB, input.Status); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(appointment)
}

// DeleteAppointment removes an appointment the provider owns.
func DeleteAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	res := db.DB.Where("id = ? AND provider_id = ?", id, userID).Delete(&models.Appointment{})
	if res.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete appointment")
	}
	if res.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Appointment not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
