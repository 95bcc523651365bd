package domain

import (
	"net/mail"
	"strings"
	"time"
)

// User is the identity unit owned by the identity store.
// The core reads ID, Email and DisplayName and never touches credentials.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Active      bool
	Latitude    *float64
	Longitude   *float64
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// HasLocation reports whether both coordinates are known.
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// CreateUserRequest holds parameters for registering a user with the identity store.
type CreateUserRequest struct {
	Email       string
	DisplayName string
	Active      bool
}

// Validate checks that the request is well-formed and normalizes the email.
func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrValidation("email %q is not a valid address", r.Email)
	}
	if r.DisplayName == "" {
		return ErrValidation("display name is required")
	}
	return nil
}

// UpdateLocationRequest holds a user's new geo-coordinate pair.
type UpdateLocationRequest struct {
	Latitude  float64
	Longitude float64
}

// Validate checks that the coordinates are within range.
func (r *UpdateLocationRequest) Validate() error {
	if r.Latitude < -90 || r.Latitude > 90 {
		return ErrValidation("latitude must be within [-90, 90]")
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return ErrValidation("longitude must be within [-180, 180]")
	}
	return nil
}
