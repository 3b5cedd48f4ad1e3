package ui

import (
	"net/http"

	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

var botFilterOptions = map[string]any{
	"Statuses":  model.BotStatuses,
	"Platforms": model.MeetingPlatforms,
}

// HandleBotList renders the bots list.
func (ui *UI) HandleBotList(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.BotFilters, model.Bot]{
		template: "bots/list",
		title:    "Bots",
		load:     (*loaders.Loaders).ListBots,
		extra:    botFilterOptions,
	})(w, r)
}

// HandleBotDetail renders one bot.
func (ui *UI) HandleBotDetail(w http.ResponseWriter, r *http.Request) {
	serveDetail(ui, detailPage[string, model.Bot]{
		template: "bots/detail",
		title:    "Bot",
		param:    "uuid",
		parseID:  schema.UUID,
		load:     (*loaders.Loaders).GetBot,
	})(w, r)
}

// HandleTranscriptList renders the bots that produced a transcript.
func (ui *UI) HandleTranscriptList(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.TranscriptFilters, model.Bot]{
		template: "transcripts/list",
		title:    "Transcripts",
		feature:  transcriptionEnabled,
		load:     (*loaders.Loaders).ListTranscripts,
		extra:    botFilterOptions,
	})(w, r)
}

// HandleCalendar renders the calendar events list.
func (ui *UI) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	serveList(ui, listPage[schema.CalendarFilters, model.CalendarEvent]{
		template: "calendar/list",
		title:    "Calendar",
		feature:  calendarEnabled,
		load:     (*loaders.Loaders).ListCalendarEvents,
	})(w, r)
}
