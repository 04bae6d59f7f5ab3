package models

import (
	"gorm.io/gorm"
)

// Client is an end customer booking appointments. Clients never authenticate;
// the phone number is the identity, so repeat bookings reuse the same row.
// Clients outlive the provider they first booked with (ProviderID set null).
type Client struct {
	gorm.Model
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number" gorm:"uniqueIndex;not null"`
	Email       string `json:"email"`
	ProviderID  *uint  `json:"provider_id"`
	Provider    *User  `json:"provider,omitempty" gorm:"foreignKey:ProviderID;constraint:OnDelete:SET NULL"`
}
