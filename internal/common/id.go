package common

import "github.com/google/uuid"

// NewID returns a random identifier for locally created records.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether s looks like an identifier produced by NewID.
func ValidID(s string) bool {
	return uuid.Validate(s) == nil
}
