package schema

import (
	"time"

	"github.com/me/botdash/pkg/model"
)

// Page holds the cursor pagination parameters shared by every list. A nil
// Limit means the configured page size.
type Page struct {
	Cursor string `query:"cursor" validate:"omitempty,max=512"`
	Limit  *int   `query:"limit" validate:"omitempty,min=1,max=250"`
}

// BotFilters is the query surface of the bots list.
type BotFilters struct {
	Page
	Status          []model.BotStatus       `query:"status" validate:"omitempty,dive,oneof=queued joining in_call recording processing completed failed cancelled"`
	MeetingPlatform []model.MeetingPlatform `query:"meetingPlatform" validate:"omitempty,dive,oneof=zoom teams google_meet"`
	CreatedAfter    *time.Time              `query:"createdAfter"`
	CreatedBefore   *time.Time              `query:"createdBefore"`
	BotUUID         string                  `query:"botUuid" validate:"omitempty,uuid"`
}

// TranscriptFilters is the query surface of the transcripts list.
type TranscriptFilters struct {
	Page
	Platform      []model.MeetingPlatform `query:"platform" validate:"omitempty,dive,oneof=zoom teams google_meet"`
	CreatedAfter  *time.Time              `query:"createdAfter"`
	CreatedBefore *time.Time              `query:"createdBefore"`
}

// CalendarFilters is the query surface of the calendar events list.
// StartDate and EndDate are whole days; EndDate is inclusive.
type CalendarFilters struct {
	Page
	StartDate *time.Time `query:"startDate"`
	EndDate   *time.Time `query:"endDate"`
	Search    string     `query:"search" validate:"omitempty,max=200"`
}

// MemberFilters is the query surface of the team members list.
type MemberFilters struct {
	Page
}

// TicketFilters is the query surface of the support tickets list.
type TicketFilters struct {
	Page
	Status []model.TicketStatus `query:"status" validate:"omitempty,dive,oneof=open in_progress resolved closed"`
}

// AdminTeamFilters is the query surface of the admin teams list.
type AdminTeamFilters struct {
	Page
	Search string `query:"search" validate:"omitempty,max=200"`
}

// AdminUserFilters is the query surface of the admin users list.
type AdminUserFilters struct {
	Page
	Search string     `query:"search" validate:"omitempty,max=200"`
	Role   model.Role `query:"role" validate:"omitempty,oneof=user admin"`
}

// AdminBotFilters is the query surface of the admin bots list.
type AdminBotFilters struct {
	BotFilters
	TeamID *int `query:"teamId" validate:"omitempty,gt=0"`
}

// AdminTicketFilters is the query surface of the admin tickets list.
type AdminTicketFilters struct {
	TicketFilters
	TeamID *int `query:"teamId" validate:"omitempty,gt=0"`
}

// SignInForm is the sign-in page query and form post.
type SignInForm struct {
	Email      string `query:"email" validate:"required,email,max=320"`
	Password   string `query:"password" validate:"required,max=1024"`
	RedirectTo string `query:"redirectTo" validate:"omitempty,localpath"`
}

// SignInPage is the query of the sign-in page itself.
type SignInPage struct {
	RedirectTo string `query:"redirectTo" validate:"omitempty,localpath"`
	Error      string `query:"error" validate:"omitempty,max=200"`
}
