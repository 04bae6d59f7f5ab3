package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/reservalo/booking-api/availability"
	"github.com/reservalo/booking-api/db"
	"github.com/reservalo/booking-api/models"
	"github.com/reservalo/booking-api/utils"
)

// GetWorkSchedule returns the provider's weekly schedule with its slots.
func GetWorkSchedule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var week []models.WorkSchedule
	if err := db.DB.Preload("Slots").
		Where("provider_id = ?", userID).
		Order("day_of_week").
		Find(&week).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch work schedule")
	}

	return c.JSON(week)
}

// PutWorkSchedule upserts the working flag per weekday.
func PutWorkSchedule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type DayInput struct {
		DayOfWeek    int  `json:"day_of_week"`
		IsWorkingDay bool `json:"is_working_day"`
	}

	var days []DayInput
	if err := c.BodyParser(&days); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if len(days) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "At least one day is required")
	}
	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return utils.Error(c, fiber.StatusBadRequest, "day_of_week must be between 0 and 6")
		}
	}

	for _, d := range days {
		var ws models.WorkSchedule
		err := db.DB.Where("provider_id = ? AND day_of_week = ?", userID, d.DayOfWeek).First(&ws).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ws = models.WorkSchedule{
				ProviderID:   userID,
				DayOfWeek:    models.DayOfWeek(d.DayOfWeek),
				IsWorkingDay: d.IsWorkingDay,
			}
			if err := db.DB.Create(&ws).Error; err != nil {
				return utils.Error(c, fiber.StatusInternalServerError, "Failed to save work schedule")
			}
		case err != nil:
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch work schedule")
		default:
			if err := db.DB.Model(&ws).Update("is_working_day", d.IsWorkingDay).Error; err != nil {
				return utils.Error(c, fiber.StatusInternalServerError, "Failed to save work schedule")
			}
		}
	}

	appCache.Invalidate(c.Context(), availability.ScheduleCacheKey(userID))

	return GetWorkSchedule(c)
}

// WorkScheduleMethodNotAllowed rejects verbs the schedule endpoint does not
// support.
func WorkScheduleMethodNotAllowed(c *fiber.Ctx) error {
	return utils.Error(c, fiber.StatusMethodNotAllowed, "method not allowed")
}

// CreateAvailableSlot adds a time range to a weekday of the schedule,
// creating the schedule row if the weekday has none yet.
func CreateAvailableSlot(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type SlotInput struct {
		DayOfWeek int    `json:"day_of_week"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}

	input := new(SlotInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return utils.Error(c, fiber.StatusBadRequest, "day_of_week must be between 0 and 6")
	}
	start, err := utils.ParseClock(input.StartTime)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}
	end, err := utils.ParseClock(input.EndTime)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if end <= start {
		return utils.Error(c, fiber.StatusBadRequest, "end_time must be after start_time")
	}
	// normalized form keeps the duplicate check and ordering exact
	input.StartTime = utils.FormatClock(start)
	input.EndTime = utils.FormatClock(end)

	var ws models.WorkSchedule
	err = db.DB.Where("provider_id = ? AND day_of_week = ?", userID, input.DayOfWeek).First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ws = models.WorkSchedule{
			ProviderID:   userID,
			DayOfWeek:    models.DayOfWeek(input.DayOfWeek),
			IsWorkingDay: true,
		}
		err = db.DB.Create(&ws).Error
	}
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch work schedule")
	}

	var existing int64
	db.DB.Model(&models.AvailableSlot{}).
		Where("work_schedule_id = ? AND start_time = ? AND end_time = ?", ws.ID, input.StartTime, input.EndTime).
		Count(&existing)
	if existing > 0 {
		return utils.Error(c, fiber.StatusConflict, "An identical slot already exists")
	}

	slot := models.AvailableSlot{
		WorkScheduleID: ws.ID,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		IsAvailable:    true,
	}
	if err := db.DB.Create(&slot).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create slot")
	}

	appCache.Invalidate(c.Context(), availability.ScheduleCacheKey(userID))

	return c.Status(fiber.StatusCreated).JSON(slot)
}

// ListAvailableSlots returns every configured slot across the provider's week.
func ListAvailableSlots(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var slots []models.AvailableSlot
	if err := db.DB.
		Joins("JOIN work_schedules ON work_schedules.id = available_slots.work_schedule_id").
		Where("work_schedules.provider_id = ?", userID).
		Order("available_slots.start_time").
		Find(&slots).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch slots")
	}

	return c.JSON(slots)
}

// DeleteAvailableSlot removes a slot the provider owns.
func DeleteAvailableSlot(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	res := db.DB.Where(
		"id = ? AND work_schedule_id IN (SELECT id FROM work_schedules WHERE provider_id = ?)",
		id, userID,
	).Delete(&models.AvailableSlot{})
	if res.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete slot")
	}
	if res.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Slot not found")
	}

	appCache.Invalidate(c.Context(), availability.ScheduleCacheKey(userID))

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateUnavailableDay blocks a whole calendar date.
func CreateUnavailableDay(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	day := new(models.UnavailableDay)
	if err := c.BodyParser(day); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	day.ID = 0
	day.ProviderID = userID

	if err := db.DB.Create(day).Error; err != nil {
		// BeforeCreate rejects malformed or past dates
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	appCache.Invalidate(c.Context(), availability.ScheduleCacheKey(userID))

	return c.Status(fiber.StatusCreated).JSON(day)
}

// ListUnavailableDays returns the provider's upcoming blocked dates.
func ListUnavailableDays(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var days []models.UnavailableDay
	if err := db.DB.Where("provider_id = ? AND date >= ?", userID, utils.Today()).
		Order("date").
		Find(&days).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch unavailable days")
	}

	return c.JSON(days)
}

// DeleteUnavailableDay removes a blocked date; the row must belong to the
// requesting provider or the call 404s without touching it.
func DeleteUnavailableDay(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	res := db.DB.Where("id = ? AND provider_id = ?", id, userID).Delete(&models.UnavailableDay{})
	if res.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete unavailable day")
	}
	if res.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Unavailable day not found")
	}

	appCache.Invalidate(c.Context(), availability.ScheduleCacheKey(userID))

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateUnavailableTimeFrame carves a partial block out of a working day.
func CreateUnavailableTimeFrame(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	frame := new(models.UnavailableTimeFrame)
	if err := c.BodyParser(frame); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	frame.ID = 0
	frame.ProviderID = userID

	if err := db.DB.Create(frame).Error; err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	appCache.Invalidate(c.Context(), availability.ScheduleCacheKey(userID))

	return c.Status(fiber.StatusCreated).JSON(frame)
}

// ListUnavailableTimeFrames returns the provider's upcoming partial blocks.
func ListUnavailableTimeFrames(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var frames []models.UnavailableTimeFrame
	if err := db.DB.Where("provider_id = ? AND date >= ?", userID, utils.Today()).
		Order("date, start_time").
		Find(&frames).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch unavailable time frames")
	}

	return c.JSON(frames)
}

// DeleteUnavailableTimeFrame removes a partial block, enforcing ownership.
func DeleteUnavailableTimeFrame(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	res := db.DB.Where("id = ? AND provider_id = ?", id, userID).Delete(&models.UnavailableTimeFrame{})
	if res.Error != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete unavailable time frame")
	}
	if res.RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Unavailable time frame not found")
	}

	appCache.Invalidate(c.Context(), availability.ScheduleCacheKey(userID))

	return c.SendStatus(fiber.StatusNoContent)
}
