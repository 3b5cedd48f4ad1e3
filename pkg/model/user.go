package model

import "time"

// Role represents the role of a user in the system.
type Role string

const (
	// RoleUser is a standard team member.
	RoleUser Role = "user"
	// RoleAdmin has access to the back-office pages.
	RoleAdmin Role = "admin"
)

// User is a platform account as listed in the admin back-office.
type User struct {
	ID         int        `json:"id" validate:"required,gt=0"`
	Email      string     `json:"email" validate:"required,email"`
	Name       string     `json:"name"`
	Role       Role       `json:"role" validate:"required,oneof=user admin"`
	Banned     bool       `json:"banned"`
	BanReason  string     `json:"ban_reason,omitempty"`
	TeamID     *int       `json:"team_id,omitempty" validate:"omitempty,gt=0"`
	TeamName   string     `json:"team_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at" validate:"required"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
