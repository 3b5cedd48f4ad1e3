package devbackend

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"time"

	"github.com/me/botdash/pkg/model"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// DefaultSeed returns the embedded development fixtures.
func DefaultSeed() []byte {
	return defaultSeed
}

type seedFile struct {
	Teams    []seedTeam     `yaml:"teams"`
	Users    []seedUser     `yaml:"users"`
	Bots     []seedBot      `yaml:"bots"`
	Events   []seedEvent    `yaml:"events"`
	Tickets  []seedTicket   `yaml:"tickets"`
	Generate []seedGenerate `yaml:"generate"`
}

type seedTeam struct {
	ID         int      `yaml:"id"`
	Name       string   `yaml:"name"`
	Plan       string   `yaml:"plan"`
	OwnerEmail string   `yaml:"owner_email"`
	HoursLimit *float64 `yaml:"hours_limit"`
}

type seedUser struct {
	Email     string `yaml:"email"`
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	Password  string `yaml:"password"`
	Team      int    `yaml:"team"`
	TeamRole  string `yaml:"team_role"`
	Banned    bool   `yaml:"banned"`
	BanReason string `yaml:"ban_reason"`
}

type seedBot struct {
	Team       int           `yaml:"team"`
	Name       string        `yaml:"name"`
	MeetingURL string        `yaml:"meeting_url"`
	Platform   string        `yaml:"platform"`
	Status     string        `yaml:"status"`
	Duration   time.Duration `yaml:"duration"`
	Error      string        `yaml:"error"`
	Ago        time.Duration `yaml:"ago"`
	Artifacts  []string      `yaml:"artifacts"`
}

// seedEvent is either a timed meeting starting In from now, or an all-day
// event starting Day days from today and lasting Days days.
type seedEvent struct {
	Team          int           `yaml:"team"`
	Name          string        `yaml:"name"`
	In            time.Duration `yaml:"in"`
	Length        time.Duration `yaml:"length"`
	Day           int           `yaml:"day"`
	Days          int           `yaml:"days"`
	Platform      string        `yaml:"platform"`
	MeetingURL    string        `yaml:"meeting_url"`
	CalendarEmail string        `yaml:"calendar_email"`
	Scheduled     bool          `yaml:"scheduled"`
}

type seedTicket struct {
	Team      int           `yaml:"team"`
	Subject   string        `yaml:"subject"`
	Status    string        `yaml:"status"`
	CreatedBy string        `yaml:"created_by"`
	Ago       time.Duration `yaml:"ago"`
	Messages  []struct {
		Author string `yaml:"author"`
		Body   string `yaml:"body"`
		Staff  bool   `yaml:"staff"`
	} `yaml:"messages"`
}

type seedGenerate struct {
	Team  int           `yaml:"team"`
	Bots  int           `yaml:"bots"`
	Every time.Duration `yaml:"every"`
}

// Seed loads YAML fixtures into the store. Relative times are resolved
// against now.
func (s *Store) Seed(ctx context.Context, data []byte, now time.Time) error {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	now = now.UTC().Truncate(time.Millisecond)

	for _, t := range f.Teams {
		team := model.Team{ID: t.ID, Name: t.Name, Plan: t.Plan, OwnerEmail: t.OwnerEmail, CreatedAt: now.AddDate(0, -6, 0)}
		if err := s.CreateTeam(ctx, &team, t.HoursLimit); err != nil {
			return fmt.Errorf("seed team %q: %w", t.Name, err)
		}
	}

	for i, u := range f.Users {
		user := model.User{
			Email:     u.Email,
			Name:      u.Name,
			Role:      model.Role(u.Role),
			Banned:    u.Banned,
			BanReason: u.BanReason,
			CreatedAt: now.AddDate(0, -3, i),
		}
		if u.Team != 0 {
			team := u.Team
			user.TeamID = &team
		}
		if err := s.CreateUser(ctx, &user, u.Password, u.TeamRole); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Email, err)
		}
	}

	bots := make(map[string]string)
	for _, b := range f.Bots {
		bot := model.Bot{
			TeamID:          b.Team,
			Name:            b.Name,
			MeetingURL:      b.MeetingURL,
			Platform:        model.MeetingPlatform(b.Platform),
			Status:          model.BotStatus(b.Status),
			DurationSeconds: int(b.Duration.Seconds()),
			ErrorMessage:    b.Error,
			CreatedAt:       now.Add(-b.Ago),
		}
		if bot.Status.IsTerminal() {
			ended := bot.CreatedAt.Add(b.Duration)
			bot.EndedAt = &ended
		}
		for _, a := range b.Artifacts {
			bot.Artifacts = append(bot.Artifacts, model.BotArtifact{
				Type:      model.ArtifactType(a),
				URL:       fmt.Sprintf("https://cdn.botdash.test/%s/%s", a, url.PathEscape(b.Name)),
				CreatedAt: bot.CreatedAt.Add(b.Duration),
			})
		}
		if err := s.CreateBot(ctx, &bot); err != nil {
			return fmt.Errorf("seed bot %q: %w", b.Name, err)
		}
		bots[b.Name] = bot.UUID
	}

	for _, g := range f.Generate {
		if err := s.generateBots(ctx, g, now); err != nil {
			return err
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, e := range f.Events {
		ev := model.CalendarEvent{
			Name:          e.Name,
			MeetingURL:    e.MeetingURL,
			Platform:      model.MeetingPlatform(e.Platform),
			CalendarEmail: e.CalendarEmail,
		}
		if e.Days > 0 {
			ev.StartTime = today.AddDate(0, 0, e.Day)
			ev.EndTime = ev.StartTime.AddDate(0, 0, e.Days)
		} else {
			ev.StartTime = now.Add(e.In)
			ev.EndTime = ev.StartTime.Add(e.Length)
		}
		if e.Scheduled {
			ev.BotUUID = bots[e.Name]
		}
		if err := s.CreateEvent(ctx, e.Team, &ev); err != nil {
			return fmt.Errorf("seed event %q: %w", e.Name, err)
		}
	}

	for _, t := range f.Tickets {
		ticket := model.Ticket{
			TeamID:    t.Team,
			Subject:   t.Subject,
			Status:    model.TicketStatus(t.Status),
			CreatedBy: t.CreatedBy,
			CreatedAt: now.Add(-t.Ago),
		}
		for i, m := range t.Messages {
			ticket.Messages = append(ticket.Messages, model.TicketMessage{
				Author:    m.Author,
				Body:      m.Body,
				FromStaff: m.Staff,
				CreatedAt: ticket.CreatedAt.Add(time.Duration(i) * 10 * time.Minute),
			})
		}
		if err := s.CreateTicket(ctx, &ticket); err != nil {
			return fmt.Errorf("seed ticket %q: %w", t.Subject, err)
		}
	}

	s.logger.Info("seeded dev backend",
		"teams", len(f.Teams), "users", len(f.Users), "bots", len(bots), "events", len(f.Events), "tickets", len(f.Tickets))
	return nil
}

// generateBots inserts g.Bots completed bots spaced g.Every apart, cycling
// through the platforms. Every third bot has a transcript.
func (s *Store) generateBots(ctx context.Context, g seedGenerate, now time.Time) error {
	every := g.Every
	if every <= 0 {
		every = time.Hour
	}
	for i := 0; i < g.Bots; i++ {
		created := now.Add(-time.Duration(i+1) * every)
		ended := created.Add(30 * time.Minute)
		bot := model.Bot{
			TeamID:          g.Team,
			Name:            fmt.Sprintf("Recurring sync #%d", g.Bots-i),
			MeetingURL:      fmt.Sprintf("https://zoom.us/j/%d", 3000000000+i),
			Platform:        model.MeetingPlatforms[i%len(model.MeetingPlatforms)],
			Status:          model.BotStatusCompleted,
			DurationSeconds: 1800,
			CreatedAt:       created,
			EndedAt:         &ended,
		}
		if i%3 == 0 {
			bot.Artifacts = []model.BotArtifact{{
				Type:      model.ArtifactTranscription,
				URL:       fmt.Sprintf("https://cdn.botdash.test/transcription/%d", i),
				CreatedAt: ended,
			}}
		}
		if err := s.CreateBot(ctx, &bot); err != nil {
			return fmt.Errorf("generate bot %d: %w", i, err)
		}
	}
	return nil
}
