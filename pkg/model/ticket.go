package model

import "time"

// Ticket is a support request opened by a team.
type Ticket struct {
	UUID      string          `json:"uuid" validate:"required,uuid"`
	Subject   string          `json:"subject" validate:"required"`
	Status    TicketStatus    `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	TeamID    int             `json:"team_id" validate:"gte=0"`
	TeamName  string          `json:"team_name,omitempty"`
	CreatedBy string          `json:"created_by" validate:"omitempty,email"`
	Messages  []TicketMessage `json:"messages,omitempty" validate:"omitempty,dive"`
	CreatedAt time.Time       `json:"created_at" validate:"required"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TicketMessage is one entry in a ticket's conversation.
type TicketMessage struct {
	ID        int       `json:"id" validate:"gte=0"`
	Author    string    `json:"author" validate:"required"`
	Body      string    `json:"body" validate:"required"`
	FromStaff bool      `json:"from_staff"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
}

// IsOpen returns true until the ticket is resolved or closed.
func (t Ticket) IsOpen() bool {
	return t.Status == TicketStatusOpen || t.Status == TicketStatusInProgress
}
