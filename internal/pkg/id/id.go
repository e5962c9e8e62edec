package id

import (
	"github.com/google/uuid"
)

// New generates a new UUID string
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id is a valid UUID
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
