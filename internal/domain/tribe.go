package domain

import (
	"strings"
	"time"
)

// Tribe is a named group users can join.
type Tribe struct {
	ID          string
	Name        string
	Description string
	MemberCount int64
	CreatedAt   time.Time
}

// TribeMember is a user projected from the membership relation.
type TribeMember struct {
	UserID      string
	Email       string
	DisplayName string
	JoinedAt    time.Time
}

// TribeSeed describes a tribe created at bootstrap when missing.
type TribeSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Validate checks that the seed is well-formed.
func (s *TribeSeed) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return ErrValidation("tribe name is required")
	}
	return nil
}

// DefaultTribeSeeds is the catalogue installed when no tribe file is configured.
func DefaultTribeSeeds() []TribeSeed {
	return []TribeSeed{
		{Name: "Tribe Red", Description: "Red Tribe Description"},
		{Name: "Tribe Blue", Description: "Blue Tribe Description"},
	}
}
