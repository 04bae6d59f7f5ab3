package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// UnavailableDay marks a whole calendar date as not bookable for a provider.
type UnavailableDay struct {
	gorm.Model
	ProviderID uint   `json:"provider_id" gorm:"index;not null"`
	Date       string `json:"date" gorm:"index"` // YYYY-MM-DD
	Reason     string `json:"reason"`
}

// BeforeCreate rejects past dates; existing rows for past dates keep resolving.
func (d *UnavailableDay) BeforeCreate(tx *gorm.DB) error {
	return validateFutureDate(d.Date)
}

// UnavailableTimeFrame carves a partial block out of an otherwise working day.
type UnavailableTimeFrame struct {
	gorm.Model
	ProviderID uint   `json:"provider_id" gorm:"index;not null"`
	Date       string `json:"date" gorm:"index"` // YYYY-MM-DD
	StartTime  string `json:"start_time"`        // "HH:MM"
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason"`
}

func (f *UnavailableTimeFrame) BeforeCreate(tx *gorm.DB) error {
	if err := validateFutureDate(f.Date); err != nil {
		return err
	}
	return validateClockRange(f.StartTime, f.EndTime)
}

func validateFutureDate(date string) error {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if d.Before(today) {
		return fmt.Errorf("date %s is in the past", date)
	}
	return nil
}
