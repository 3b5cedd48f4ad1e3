package loaders

import (
	"context"
	"time"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

// dayRange widens whole-day filter bounds to the instants the backend
// compares against: the start of the first day and the last millisecond of
// the last day, both in UTC.
func dayRange(start, end *time.Time) (from, to *time.Time) {
	if start != nil {
		s := startOfDay(*start)
		from = &s
	}
	if end != nil {
		e := startOfDay(*end).Add(24*time.Hour - time.Millisecond)
		to = &e
	}
	return from, to
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ListCalendarEvents loads one page of calendar events in the filtered date
// range and marks the events that span whole days.
func (l *Loaders) ListCalendarEvents(ctx context.Context, cookie string, f *schema.CalendarFilters) (model.ListResponse[model.CalendarEvent], error) {
	if f == nil {
		f = &schema.CalendarFilters{}
	}
	from, to := dayRange(f.StartDate, f.EndDate)

	q := params{}
	q.page(f.Page, l.pageSize)
	q.setTime("start_date", from)
	q.setTime("end_date", to)
	q.set("search", f.Search)

	resp, err := backend.Fetch[model.ListResponse[model.CalendarEvent]](ctx, l.client, "/calendars/events", l.opts(cookie, "calendar", q))
	if err != nil {
		return resp, err
	}
	for i := range resp.Data {
		resp.Data[i].AllDay = resp.Data[i].IsAllDay()
	}
	return resp, nil
}
