package cli

import (
	"fmt"
	"io"

	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
	"github.com/spf13/cobra"
)

var botHeaders = []string{"UUID", "NAME", "PLATFORM", "STATUS", "DURATION", "CREATED"}

func botRow(b model.Bot) []any {
	return []any{b.UUID, b.Name, b.Platform.Label(), b.Status, b.Duration(), ago(b.CreatedAt)}
}

var botFilterFlags = []queryFlag{
	{"status", "status", "Comma-separated bot statuses"},
	{"platform", "meetingPlatform", "Comma-separated meeting platforms (zoom, teams, google_meet)"},
	{"created-after", "createdAfter", "Only bots created on or after this date or timestamp"},
	{"created-before", "createdBefore", "Only bots created on or before this date or timestamp"},
	{"bot-uuid", "botUuid", "Only the bot with this UUID"},
}

func newBotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bots",
		Short: "List and inspect bots",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bots, newest first",
	}
	query := bindQuery(list, botFilterFlags...)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.BotFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.ListBots(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list bots: %w", err)
		}
		return printPage(out(cmd), resp, botHeaders, botRow)
	}

	get := &cobra.Command{
		Use:   "get <uuid>",
		Short: "Show one bot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := schema.UUID(args[0])
			if err := id.Err(); err != nil {
				return fmt.Errorf("invalid bot id: %w", err)
			}
			bot, err := ld.GetBot(cmd.Context(), cookie(), id.Value)
			if err != nil {
				return fmt.Errorf("get bot: %w", err)
			}
			return printBot(out(cmd), bot)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func printBot(w io.Writer, b model.Bot) error {
	if flagOutput == "json" {
		return printJSON(w, b)
	}
	if err := printFields(w,
		"UUID", b.UUID,
		"Name", b.Name,
		"Meeting", b.MeetingURL,
		"Platform", b.Platform.Label(),
		"Status", b.Status,
		"Duration", b.Duration(),
		"Created", ago(b.CreatedAt),
		"Ended", agoPtr(b.EndedAt),
		"Error", orDash(b.ErrorMessage),
	); err != nil {
		return err
	}
	if len(b.Artifacts) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nArtifacts:")
	t := newTable(w, "TYPE", "URL")
	for _, a := range b.Artifacts {
		t.row(a.Type, orDash(a.URL))
	}
	return t.flush()
}

func newTranscriptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcripts",
		Short: "List bots that produced a transcript",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List transcripts, newest first",
	}
	query := bindQuery(list,
		queryFlag{"platform", "platform", "Comma-separated meeting platforms"},
		queryFlag{"created-after", "createdAfter", "Only bots created on or after this date or timestamp"},
		queryFlag{"created-before", "createdBefore", "Only bots created on or before this date or timestamp"},
	)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.TranscriptFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.ListTranscripts(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list transcripts: %w", err)
		}
		return printPage(out(cmd), resp, []string{"UUID", "NAME", "PLATFORM", "DURATION", "TRANSCRIPT"}, func(b model.Bot) []any {
			url := "-"
			if a := b.Artifact(model.ArtifactTranscription); a != nil {
				url = orDash(a.URL)
			}
			return []any{b.UUID, b.Name, b.Platform.Label(), b.Duration(), url}
		})
	}
	cmd.AddCommand(list)
	return cmd
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List calendar events",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List calendar events in a date range",
	}
	query := bindQuery(list,
		queryFlag{"start-date", "startDate", "First day (YYYY-MM-DD)"},
		queryFlag{"end-date", "endDate", "Last day, inclusive (YYYY-MM-DD)"},
		queryFlag{"search", "search", "Match event names"},
	)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := parseFilters[schema.CalendarFilters](query())
		if err != nil {
			return err
		}
		resp, err := ld.ListCalendarEvents(cmd.Context(), cookie(), f)
		if err != nil {
			return fmt.Errorf("list calendar events: %w", err)
		}
		return printPage(out(cmd), resp, []string{"NAME", "START", "END", "PLATFORM", "BOT"}, func(e model.CalendarEvent) []any {
			start, end := e.StartTime.Format("2006-01-02 15:04"), e.EndTime.Format("2006-01-02 15:04")
			if e.AllDay {
				start, end = e.StartTime.Format("2006-01-02"), "all day"
			}
			bot := "-"
			if e.BotScheduled {
				bot = "scheduled"
			}
			return []any{e.Name, start, end, orDash(e.Platform.Label()), bot}
		})
	}
	cmd.AddCommand(list)
	return cmd
}
