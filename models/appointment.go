package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booked slot: provider + client + date + start time.
// Creation goes through a transactional availability re-check, so a row only
// ever exists inside a slot that was bookable at booking time.
type Appointment struct {
	gorm.Model
	ProviderID uint   `json:"provider_id" gorm:"index;not null"`
	Provider   User   `json:"-" gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
	ClientID   uint   `json:"client_id" gorm:"not null"`
	Client     Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`

	Date      string `json:"date" gorm:"index"` // YYYY-MM-DD
	StartTime string `json:"start_time"`        // "HH:MM"

	VisitTypeID    uint         `json:"visit_type_id"`
	VisitType      VisitType    `json:"visit_type,omitempty" gorm:"foreignKey:VisitTypeID"`
	ConsultTypeID  uint         `json:"consult_type_id"`
	ConsultType    ConsultType  `json:"consult_type,omitempty" gorm:"foreignKey:ConsultTypeID"`
	PracticeTypeID uint         `json:"practice_type_id"`
	PracticeType   PracticeType `json:"practice_type,omitempty" gorm:"foreignKey:PracticeTypeID"`

	Status         AppointmentStatus `json:"status" gorm:"default:scheduled"`
	ReminderSentAt *time.Time        `json:"reminder_sent_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// CanTransition reports whether the status change is allowed:
// scheduled → completed | cancelled, both terminal.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	if s != StatusScheduled {
		return false
	}
	return to == StatusCompleted || to == StatusCancelled
}

// UpdateStatus applies the state machine and persists the new status.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if newStatus != StatusScheduled && newStatus != StatusCompleted && newStatus != StatusCancelled {
		return fmt.Errorf("unknown status %q", newStatus)
	}
	if !a.Status.CanTransition(newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
	}
	a.Status = newStatus
	return tx.Model(a).Update("status", newStatus).Error
}
