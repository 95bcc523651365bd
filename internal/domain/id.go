package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a UUIDv7 string for application-owned entities.
// UUIDv7 strings sort in creation order, which keeps feed tie-breaks stable.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// requireID returns a ValidationError when id is blank.
func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrValidation("%s is required", field)
	}
	return nil
}

// RequireIDs checks that every named identifier is present.
// Pairs are given as field, value, field, value, ...
func RequireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := requireID(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
