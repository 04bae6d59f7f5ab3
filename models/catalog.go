package models

// Catalog tables are small reference lists attached to appointments.
// They are seeded at migration time and rarely change.

type VisitType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
}

type ConsultType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
}

type PracticeType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
}

// HealthInsurance entries come from a static JSON file, not the database.
type HealthInsurance struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
