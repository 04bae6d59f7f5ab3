package models

import (
	"time"
)

// User is a registered provider account. Public booking pages are addressed
// by username; the email must be verified before provider routes open up.
type User struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	Username          string     `json:"username" gorm:"uniqueIndex;not null"`
	Name              string     `json:"name"`
	Email             string     `json:"email" gorm:"uniqueIndex;not null"`
	Password          string     `json:"password,omitempty"`
	Specialty         string     `json:"specialty"`
	Address           string     `json:"address"`
	PhoneNumber       string     `json:"phone_number"`
	ProfilePicture    string     `json:"profile_picture"`
	EmailVerified     bool       `json:"email_verified" gorm:"default:false"`
	VerificationToken string     `json:"-" gorm:"index"`
	TokenExpiresAt    *time.Time `json:"-"`

	WorkSchedules []WorkSchedule `json:"work_schedules,omitempty" gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
	Appointments  []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the historical table name for provider accounts.
func (User) TableName() string {
	return "user_accounts"
}
