package model

import "time"

// CalendarEvent is a meeting found on a connected calendar.
type CalendarEvent struct {
	UUID          string          `json:"uuid" validate:"required,uuid"`
	Name          string          `json:"name" validate:"required"`
	StartTime     time.Time       `json:"start_time" validate:"required"`
	EndTime       time.Time       `json:"end_time" validate:"required,gtefield=StartTime"`
	MeetingURL    string          `json:"meeting_url,omitempty" validate:"omitempty,url"`
	Platform      MeetingPlatform `json:"meeting_platform,omitempty" validate:"omitempty,oneof=zoom teams google_meet"`
	CalendarEmail string          `json:"calendar_email" validate:"omitempty,email"`
	BotScheduled  bool            `json:"bot_scheduled"`
	BotUUID       string          `json:"bot_uuid,omitempty" validate:"omitempty,uuid"`

	// AllDay is derived locally from the time range; the backend does not send it.
	AllDay bool `json:"-"`
}

// IsAllDay reports whether the event spans whole days: it starts at
// midnight UTC and lasts a non-zero multiple of 24 hours.
func (e CalendarEvent) IsAllDay() bool {
	start := e.StartTime.UTC()
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		return false
	}
	d := e.EndTime.Sub(e.StartTime)
	return d > 0 && d%(24*time.Hour) == 0
}
