package utils

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// NewULID returns a lexically time-ordered identifier for persisted entities
func NewULID() string {
	return ulid.Make().String()
}
