package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleContributor = "CONTRIBUTOR"
	RoleModerator   = "MODERATOR"
)

type User struct {
	ID                uuid.UUID `json:"id"`
	FirstName         *string   `json:"firstname,omitempty"`
	LastName          *string   `json:"lastname,omitempty"`
	Username          *string   `json:"username,omitempty"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	Points            int       `json:"points"`
	IsDeleted         bool      `json:"is_deleted"`
	AuthProvider      string    `json:"auth_provider,omitempty"`
	IsVerified        bool      `json:"is_verified"`
	PreferredLanguage *string   `json:"preferred_language,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserStats summarises a user's reporting activity.
type UserStats struct {
	ActiveReports   int64 `json:"active_reports"`
	VerifiedReports int64 `json:"verified_reports"`
	Points          int   `json:"points"`
}
