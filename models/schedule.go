package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WorkSchedule is the weekly working flag for a provider, one row per
// (provider, weekday). Time ranges live in the attached AvailableSlot rows.
type WorkSchedule struct {
	gorm.Model
	ProviderID   uint            `json:"provider_id" gorm:"uniqueIndex:idx_provider_weekday;not null"`
	DayOfWeek    DayOfWeek       `json:"day_of_week" gorm:"uniqueIndex:idx_provider_weekday"`
	IsWorkingDay bool            `json:"is_working_day" gorm:"default:true"`
	Slots        []AvailableSlot `json:"slots,omitempty" gorm:"foreignKey:WorkScheduleID;constraint:OnDelete:CASCADE"`
}

// AvailableSlot is a configured time range within a working day, "HH:MM" in
// 24h format. Exact (start,end) pairs are unique per schedule row; overlapping
// ranges are accepted and surface as configured.
type AvailableSlot struct {
	gorm.Model
	WorkScheduleID uint   `json:"work_schedule_id" gorm:"uniqueIndex:idx_schedule_range;not null"`
	StartTime      string `json:"start_time" gorm:"uniqueIndex:idx_schedule_range"`
	EndTime        string `json:"end_time" gorm:"uniqueIndex:idx_schedule_range"`
	IsAvailable    bool   `json:"is_available" gorm:"default:true"`
}

// BeforeSave validates the time range.
func (s *AvailableSlot) BeforeSave(tx *gorm.DB) error {
	return validateClockRange(s.StartTime, s.EndTime)
}

func validateClockRange(start, end string) error {
	st, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("invalid start time %q, expected HH:MM", start)
	}
	et, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("invalid end time %q, expected HH:MM", end)
	}
	if !et.After(st) {
		return fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return nil
}
