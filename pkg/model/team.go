package model

import "time"

// Team is a customer organisation that owns bots.
type Team struct {
	ID          int       `json:"id" validate:"required,gt=0"`
	Name        string    `json:"name" validate:"required"`
	Plan        string    `json:"plan" validate:"required"`
	OwnerEmail  string    `json:"owner_email,omitempty" validate:"omitempty,email"`
	MemberCount int       `json:"member_count" validate:"gte=0"`
	BotCount    int       `json:"bot_count" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at" validate:"required"`
}

// TeamMember is a user's membership in a team.
type TeamMember struct {
	UserID   int       `json:"user_id" validate:"required,gt=0"`
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name"`
	Role     string    `json:"role" validate:"required,oneof=owner admin member"`
	JoinedAt time.Time `json:"joined_at" validate:"required"`
}

// Usage is the team's metered consumption for the current billing period.
type Usage struct {
	Plan          string    `json:"plan" validate:"required"`
	BotHoursUsed  float64   `json:"bot_hours_used" validate:"gte=0"`
	BotHoursLimit float64   `json:"bot_hours_limit" validate:"gte=0"`
	PeriodStart   time.Time `json:"period_start" validate:"required"`
	PeriodEnd     time.Time `json:"period_end" validate:"required,gtfield=PeriodStart"`
}

// Percent returns the used share of the limit, capped at 100.
// A zero limit means unmetered and reports 0.
func (u Usage) Percent() int {
	if u.BotHoursLimit <= 0 {
		return 0
	}
	p := int(u.BotHoursUsed * 100 / u.BotHoursLimit)
	if p > 100 {
		return 100
	}
	return p
}
