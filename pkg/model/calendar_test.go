package model

import (
	"testing"
	"time"
)

func TestCalendarEvent_IsAllDay(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"single day", day, day.Add(24 * time.Hour), true},
		{"three days", day, day.Add(72 * time.Hour), true},
		{"one hour meeting", day.Add(9 * time.Hour), day.Add(10 * time.Hour), false},
		{"midnight start partial day", day, day.Add(23 * time.Hour), false},
		{"zero length", day, day, false},
		{"offset midnight is not utc midnight", time.Date(2026, 3, 14, 0, 0, 0, 0, time.FixedZone("CET", 3600)), time.Date(2026, 3, 15, 0, 0, 0, 0, time.FixedZone("CET", 3600)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CalendarEvent{StartTime: tt.start, EndTime: tt.end}
			if got := e.IsAllDay(); got != tt.want {
				t.Errorf("IsAllDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
