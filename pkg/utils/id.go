package utils

import "github.com/google/uuid"

// IsValidUUID reports whether id parses as a UUID. Path parameters are
// checked with this before they reach a query.
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
