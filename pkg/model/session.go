package model

import "time"

// Session is the authenticated session returned by the backend's session
// endpoint. A nil *Session means the caller is not signed in.
type Session struct {
	User    SessionUser `json:"user" validate:"required"`
	Session SessionInfo `json:"session" validate:"required"`
}

// SessionUser is the signed-in user as seen by the auth service.
type SessionUser struct {
	ID        string    `json:"id" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role" validate:"required,oneof=user admin"`
	Banned    bool      `json:"banned"`
	TeamID    *int      `json:"team_id,omitempty" validate:"omitempty,gt=0"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionInfo carries the token metadata of a session.
type SessionInfo struct {
	Token     string    `json:"token" validate:"required"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.Session.ExpiresAt)
}

// IsAdmin reports whether the session has admin role.
func (s *Session) IsAdmin() bool {
	return s.User.Role == RoleAdmin
}

// HasRole reports whether the session satisfies a role requirement.
// An empty requirement is satisfied by any session.
func (s *Session) HasRole(role Role) bool {
	return role == "" || s.User.Role == role
}

// DisplayName returns the user's name, falling back to the email address.
func (s *Session) DisplayName() string {
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.Email
}

// SignInRequest is the body of an email sign-in call.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse is the auth service's answer to a successful sign-in. The
// session token itself travels in a Set-Cookie header.
type SignInResponse struct {
	Token string      `json:"token" validate:"required"`
	User  SessionUser `json:"user" validate:"required"`
}

// SignOutResponse acknowledges a sign-out.
type SignOutResponse struct {
	Success bool `json:"success"`
}
