package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new random (v4) identifier for users, items, bookings and token IDs
func GenerateID() string {
	return uuid.New().String()
}

// IsID reports whether s is in the canonical form GenerateID produces
func IsID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
