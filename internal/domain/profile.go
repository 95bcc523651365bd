package domain

import (
	"strings"
	"unicode/utf8"
)

// Profile is the viewer-facing summary of one user.
type Profile struct {
	UserID         string
	Email          string
	DisplayName    string
	AvatarInitials string
	Followers      int64
	Following      int64
	DaysActive     int
	TribeNames     []string
}

// Suggestion is a user the viewer might follow.
type Suggestion struct {
	UserID         string
	Email          string
	DisplayName    string
	AvatarInitials string
	Followers      int64
	TribeNames     []string
	IsFollowing    bool
	DistanceKm     float64
}

// Location is a user's stored coordinates and their distance from the viewer.
type Location struct {
	UserID     string
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}

// AvatarInitials returns up to the first two letters of name, upper-cased.
func AvatarInitials(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= 2 {
		return strings.ToUpper(name)
	}
	runes := []rune(name)
	return strings.ToUpper(string(runes[:2]))
}
