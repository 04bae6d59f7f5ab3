package controllers

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/reservalo/booking-api/config"
	"github.com/reservalo/booking-api/db"
	"github.com/reservalo/booking-api/models"
	"github.com/reservalo/booking-api/utils"
)

// defaultVisitTypes keeps the booking form usable when the database is down.
var defaultVisitTypes = []models.VisitType{
	{ID: 1, Name: "Primera visita"},
	{ID: 2, Name: "Visita de seguimiento"},
	{ID: 3, Name: "Urgencia"},
}

const healthInsuranceCacheKey = "health-insurance"
const healthInsuranceTTL = time.Hour

// GetVisitTypes returns the visit-type catalog, degrading to a hardcoded
// list on database errors rather than failing the booking form.
func GetVisitTypes(c *fiber.Ctx) error {
	var types []models.VisitType
	if err := db.DB.Order("id").Find(&types).Error; err != nil {
		log.Printf("Error fetching visit types, serving fallback: %v", err)
		return c.JSON(defaultVisitTypes)
	}
	if len(types) == 0 {
		return c.JSON(defaultVisitTypes)
	}
	return c.JSON(types)
}

// GetConsultTypes returns the consult-type catalog.
func GetConsultTypes(c *fiber.Ctx) error {
	var types []models.ConsultType
	if err := db.DB.Order("id").Find(&types).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch consult types")
	}
	return c.JSON(types)
}

// GetPracticeTypes returns the practice-type catalog.
func GetPracticeTypes(c *fiber.Ctx) error {
	var types []models.PracticeType
	if err := db.DB.Order("id").Find(&types).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch practice types")
	}
	return c.JSON(types)
}

// GetHealthInsurance serves the health-insurance list from a static file,
// cached with a TTL so repeat calls skip the file read.
func GetHealthInsurance(c *fiber.Ctx) error {
	var list []models.HealthInsurance
	err := appCache.GetOrSet(c.Context(), healthInsuranceCacheKey, healthInsuranceTTL, &list, func() (interface{}, error) {
		return loadHealthInsurance(config.Get().HealthInsuranceFile)
	})
	if err != nil {
		log.Printf("Error loading health insurance list: %v", err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to load health insurance list")
	}

	return c.JSON(list)
}

func loadHealthInsurance(path string) ([]models.HealthInsurance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []models.HealthInsurance
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}
