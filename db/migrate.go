package db

import (
	"fmt"
	"log"

	"github.com/reservalo/booking-api/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.WorkSchedule{},
		&models.AvailableSlot{},
		&models.UnavailableDay{},
		&models.UnavailableTimeFrame{},
		&models.VisitType{},
		&models.ConsultType{},
		&models.PracticeType{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedCatalogs()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedCatalogs inserts the default lookup rows if they are missing.
func seedCatalogs() {
	visitTypes := []models.VisitType{
		{Name: "Primera visita"},
		{Name: "Visita de seguimiento"},
		{Name: "Urgencia"},
	}
	for _, vt := range visitTypes {
		var existing models.VisitType
		if DB.Where("name = ?", vt.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&vt)
		}
	}

	consultTypes := []models.ConsultType{
		{Name: "Presencial"},
		{Name: "Videoconsulta"},
	}
	for _, ct := range consultTypes {
		var existing models.ConsultType
		if DB.Where("name = ?", ct.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&ct)
		}
	}

	practiceTypes := []models.PracticeType{
		{Name: "Consulta general"},
		{Name: "Control"},
		{Name: "Estudio"},
	}
	for _, pt := range practiceTypes {
		var existing models.PracticeType
		if DB.Where("name = ?", pt.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&pt)
		}
	}
}
