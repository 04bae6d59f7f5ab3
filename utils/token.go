package utils

import (
	"github.com/google/uuid"
)

// GenerateVerificationToken returns an opaque token for email verification.
func GenerateVerificationToken() string {
	return uuid.NewString()
}
