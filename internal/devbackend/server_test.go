package devbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/me/botdash/internal/backend"
	"github.com/me/botdash/internal/loaders"
	"github.com/me/botdash/internal/logging"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
)

func testBackend(t *testing.T, features model.FeatureConfig) (*httptest.Server, *loaders.Loaders) {
	t.Helper()
	st := testStore(t)
	if err := st.Seed(context.Background(), DefaultSeed(), time.Now()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	logger := logging.Discard()
	ts := httptest.NewServer(NewServer(st, Options{Features: features}, logger))
	t.Cleanup(ts.Close)
	l := loaders.New(backend.NewClient(backend.Config{BaseURL: ts.URL}, logger), 0, logger)
	return ts, l
}

func signIn(t *testing.T, l *loaders.Loaders, email string) string {
	t.Helper()
	resp, cookies, err := l.SignIn(context.Background(), email, "password")
	if err != nil {
		t.Fatalf("SignIn(%s): %v", email, err)
	}
	if resp.User.Email != email {
		t.Fatalf("signed in as %q", resp.User.Email)
	}
	for _, c := range cookies {
		if c.Name == SessionCookie {
			if !c.HttpOnly {
				t.Error("session cookie should be HttpOnly")
			}
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func TestConfig(t *testing.T) {
	_, l := testBackend(t, model.FeatureConfig{BillingEnabled: true, SupportEmail: "help@botdash.test"})
	cfg := l.FeatureConfig(context.Background(), "")
	if !cfg.BillingEnabled || cfg.CalendarEnabled || cfg.SupportEmail != "help@botdash.test" {
		t.Errorf("config = %+v", cfg)
	}
	if err := l.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestSession_Lifecycle(t *testing.T) {
	_, l := testBackend(t, model.FeatureConfig{})
	ctx := context.Background()

	if s, err := l.Session(ctx, ""); err != nil || s != nil {
		t.Fatalf("anonymous session = %v, %v", s, err)
	}

	cookie := signIn(t, l, "olivia@acme.test")
	s, err := l.Session(ctx, cookie)
	if err != nil || s == nil {
		t.Fatalf("Session = %v, %v", s, err)
	}
	if s.User.Email != "olivia@acme.test" || s.IsAdmin() || s.User.TeamID == nil {
		t.Errorf("session = %+v", s.User)
	}

	cleared, err := l.SignOut(ctx, cookie)
	if err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("sign-out cookies = %+v", cleared)
	}
	if s, err := l.Session(ctx, cookie); err != nil || s != nil {
		t.Errorf("session after sign-out = %v, %v", s, err)
	}
}

func TestSignIn_Refused(t *testing.T) {
	_, l := testBackend(t, model.FeatureConfig{})
	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"wrong password", "olivia@acme.test", "nope", http.StatusUnauthorized},
		{"unknown user", "ghost@acme.test", "password", http.StatusUnauthorized},
		{"banned user", "milton@initech.test", "password", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cookies, err := l.SignIn(context.Background(), tt.email, tt.password)
			var apiErr *backend.APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.status {
				t.Fatalf("err = %v, want HTTP %d", err, tt.status)
			}
			if !backend.IsUnauthorized(err) {
				t.Error("refusal should classify as unauthorized")
			}
			if len(cookies) != 0 {
				t.Errorf("refused sign-in set cookies: %v", cookies)
			}
		})
	}
}

func TestTeamResources(t *testing.T) {
	_, l := testBackend(t, model.FeatureConfig{})
	ctx := context.Background()
	cookie := signIn(t, l, "olivia@acme.test")

	bots, err := l.ListBots(ctx, cookie, nil)
	if err != nil {
		t.Fatalf("ListBots: %v", err)
	}
	if len(bots.Data) != loaders.DefaultPageSize || !bots.HasNext() || bots.HasPrev() {
		t.Errorf("first page: %d rows next=%v prev=%v", len(bots.Data), bots.HasNext(), bots.HasPrev())
	}

	next, err := l.ListBots(ctx, cookie, &schema.BotFilters{Page: schema.Page{Cursor: bots.NextCursor()}})
	if err != nil {
		t.Fatalf("ListBots next: %v", err)
	}
	if !next.HasPrev() || next.Data[0].UUID == bots.Data[0].UUID {
		t.Errorf("second page did not advance")
	}

	bot, err := l.GetBot(ctx, cookie, bots.Data[0].UUID)
	if err != nil {
		t.Fatalf("GetBot: %v", err)
	}
	if bot.UUID != bots.Data[0].UUID {
		t.Errorf("GetBot uuid = %s", bot.UUID)
	}

	failed, err := l.ListBots(ctx, cookie, &schema.BotFilters{Status: []model.BotStatus{model.BotStatusFailed}})
	if err != nil {
		t.Fatalf("ListBots failed: %v", err)
	}
	if len(failed.Data) != 1 || failed.Data[0].ErrorMessage == "" {
		t.Errorf("failed bots = %+v", failed.Data)
	}

	transcripts, err := l.ListTranscripts(ctx, cookie, nil)
	if err != nil {
		t.Fatalf("ListTranscripts: %v", err)
	}
	for _, b := range transcripts.Data {
		if !b.HasArtifact(model.ArtifactTranscription) {
			t.Errorf("transcript list holds bot without transcript: %s", b.Name)
		}
	}

	events, err := l.ListCalendarEvents(ctx, cookie, nil)
	if err != nil {
		t.Fatalf("ListCalendarEvents: %v", err)
	}
	var allDay int
	for _, e := range events.Data {
		if e.AllDay {
			allDay++
		}
	}
	if len(events.Data) != 3 || allDay != 1 {
		t.Errorf("events = %d, all-day = %d", len(events.Data), allDay)
	}

	team, err := l.GetTeam(ctx, cookie)
	if err != nil {
		t.Fatalf("GetTeam: %v", err)
	}
	if team.Name != "Acme Corp" || team.MemberCount != 2 {
		t.Errorf("team = %+v", team)
	}

	members, err := l.ListTeamMembers(ctx, cookie, nil)
	if err != nil {
		t.Fatalf("ListTeamMembers: %v", err)
	}
	if len(members.Data) != 2 {
		t.Errorf("members = %+v", members.Data)
	}

	usage, err := l.GetUsage(ctx, cookie)
	if err != nil {
		t.Fatalf("GetUsage: %v", err)
	}
	if usage.Plan != "pro" || usage.BotHoursLimit != 100 {
		t.Errorf("usage = %+v", usage)
	}

	tickets, err := l.ListTickets(ctx, cookie, nil)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets.Data) != 1 {
		t.Fatalf("tickets = %+v", tickets.Data)
	}
	ticket, err := l.GetTicket(ctx, cookie, tickets.Data[0].UUID)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if len(ticket.Messages) != 2 {
		t.Errorf("ticket messages = %+v", ticket.Messages)
	}
}

func TestTeamResources_NotVisibleAcrossTeams(t *testing.T) {
	_, l := testBackend(t, model.FeatureConfig{})
	ctx := context.Background()
	acme := signIn(t, l, "olivia@acme.test")
	globex := signIn(t, l, "hank@globex.test")

	bots, err := l.ListBots(ctx, globex, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(bots.Data) != 1 {
		t.Fatalf("globex bots = %d", len(bots.Data))
	}
	if _, err := l.GetBot(ctx, acme, bots.Data[0].UUID); !backend.IsNotFound(err) {
		t.Errorf("cross-team GetBot err = %v, want 404", err)
	}
}

func TestAdminResources(t *testing.T) {
	_, l := testBackend(t, model.FeatureConfig{})
	ctx := context.Background()
	admin := signIn(t, l, "admin@botdash.test")

	teams, err := l.AdminListTeams(ctx, admin, nil)
	if err != nil {
		t.Fatalf("AdminListTeams: %v", err)
	}
	if len(teams.Data) != 3 {
		t.Errorf("teams = %d", len(teams.Data))
	}
	team, err := l.AdminGetTeam(ctx, admin, 2)
	if err != nil || team.Name != "Globex" {
		t.Errorf("AdminGetTeam = %+v, %v", team, err)
	}

	users, err := l.AdminListUsers(ctx, admin, &schema.AdminUserFilters{Search: "initech"})
	if err != nil {
		t.Fatalf("AdminListUsers: %v", err)
	}
	if len(users.Data) != 2 {
		t.Fatalf("initech users = %+v", users.Data)
	}
	user, err := l.AdminGetUser(ctx, admin, users.Data[0].ID)
	if err != nil || user.Email != users.Data[0].Email {
		t.Errorf("AdminGetUser = %+v, %v", user, err)
	}

	teamID := 2
	bots, err := l.AdminListBots(ctx, admin, &schema.AdminBotFilters{TeamID: &teamID})
	if err != nil {
		t.Fatalf("AdminListBots: %v", err)
	}
	if len(bots.Data) != 1 || bots.Data[0].TeamID != 2 {
		t.Errorf("team 2 bots = %+v", bots.Data)
	}

	tickets, err := l.AdminListTickets(ctx, admin, nil)
	if err != nil {
		t.Fatalf("AdminListTickets: %v", err)
	}
	if len(tickets.Data) != 2 {
		t.Fatalf("all tickets = %d", len(tickets.Data))
	}
	if _, err := l.AdminGetTicket(ctx, admin, tickets.Data[0].UUID); err != nil {
		t.Errorf("AdminGetTicket: %v", err)
	}
}

func TestAdmin_ForbiddenForUsers(t *testing.T) {
	_, l := testBackend(t, model.FeatureConfig{})
	cookie := signIn(t, l, "olivia@acme.test")
	_, err := l.AdminListTeams(context.Background(), cookie, nil)
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("err = %v, want 403", err)
	}
}

func TestRawRequests(t *testing.T) {
	ts, l := testBackend(t, model.FeatureConfig{})
	cookie := signIn(t, l, "olivia@acme.test")

	tests := []struct {
		name   string
		path   string
		cookie string
		status int
		want   string
	}{
		{"no session", "/bots", "", http.StatusUnauthorized, "authentication required"},
		{"bad cursor", "/bots?cursor=garbage!", cookie, http.StatusBadRequest, "cursor"},
		{"bad limit", "/bots?limit=0", cookie, http.StatusBadRequest, "limit"},
		{"bad status", "/bots?status=sleeping", cookie, http.StatusBadRequest, "status"},
		{"bad time", "/bots?created_after=yesterday", cookie, http.StatusBadRequest, "created_after"},
		{"unknown bot", "/bots/6f1c2a8e-0000-4000-8000-000000000000", cookie, http.StatusNotFound, "not found"},
		{"unknown route", "/nope", cookie, http.StatusNotFound, "no such endpoint"},
		{"session null", "/auth/get-session", "", http.StatusOK, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", ts.URL+tt.path, nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			if !strings.Contains(string(body), tt.want) {
				t.Errorf("body %s does not contain %q", body, tt.want)
			}
		})
	}
}

func TestSignIn_BadBody(t *testing.T) {
	ts, _ := testBackend(t, model.FeatureConfig{})
	resp, err := http.Post(ts.URL+"/auth/sign-in/email", "application/json", bytes.NewBufferString("{"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var apiErr model.APIError
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != model.ErrValidation {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestListParams(t *testing.T) {
	ts, l := testBackend(t, model.FeatureConfig{})
	user := signIn(t, l, "olivia@acme.test")
	admin := signIn(t, l, "admin@botdash.test")

	fetch := func(t *testing.T, path, cookie string) (int, []byte) {
		t.Helper()
		req, _ := http.NewRequest("GET", ts.URL+path, nil)
		req.Header.Set("Cookie", cookie)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, body
	}

	t.Run("repeated and comma-joined lists agree", func(t *testing.T) {
		var counts []int
		for _, q := range []string{"status=completed,failed", "status=completed&status=failed", "status=failed&status=completed,failed"} {
			status, body := fetch(t, "/bots?"+q, user)
			if status != http.StatusOK {
				t.Fatalf("%s: status = %d (%s)", q, status, body)
			}
			var resp model.ListResponse[model.Bot]
			if err := json.Unmarshal(body, &resp); err != nil {
				t.Fatal(err)
			}
			for _, b := range resp.Data {
				if b.Status != model.BotStatusCompleted && b.Status != model.BotStatusFailed {
					t.Errorf("%s: unexpected status %q", q, b.Status)
				}
			}
			counts = append(counts, len(resp.Data))
		}
		if counts[0] != counts[1] || counts[1] != counts[2] {
			t.Errorf("counts = %v, want equal", counts)
		}
	})

	t.Run("every invalid field is reported", func(t *testing.T) {
		status, body := fetch(t, "/bots?limit=abc&meeting_platform=skype&bot_uuid=nope", user)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		var apiErr model.APIError
		if err := json.Unmarshal(body, &apiErr); err != nil {
			t.Fatal(err)
		}
		if apiErr.Code != model.ErrValidation {
			t.Errorf("code = %q", apiErr.Code)
		}
		// limit fails to decode, so validation of the rest never runs.
		if len(apiErr.Details) != 1 || apiErr.Details[0].Path != "limit" {
			t.Errorf("details = %+v, want one on limit", apiErr.Details)
		}

		status, body = fetch(t, "/bots?meeting_platform=skype&bot_uuid=nope", user)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		for _, want := range []string{"meeting_platform[0]", "bot_uuid"} {
			if !strings.Contains(string(body), want) {
				t.Errorf("body %s does not name %s", body, want)
			}
		}
	})

	t.Run("admin team filter", func(t *testing.T) {
		if status, body := fetch(t, "/admin/bots?team_id=0", admin); status != http.StatusBadRequest || !strings.Contains(string(body), "team_id") {
			t.Errorf("team_id=0: status = %d (%s)", status, body)
		}
		if status, body := fetch(t, "/admin/tickets?team_id=x", admin); status != http.StatusBadRequest || !strings.Contains(string(body), "team_id") {
			t.Errorf("team_id=x: status = %d (%s)", status, body)
		}
		if status, body := fetch(t, "/admin/users?role=admin,user", admin); status != http.StatusOK {
			t.Errorf("role list: status = %d (%s)", status, body)
		}
	})

	t.Run("team routes ignore admin-only keys", func(t *testing.T) {
		if status, body := fetch(t, "/bots?team_id=2", user); status != http.StatusOK {
			t.Errorf("status = %d (%s)", status, body)
		}
	})
}
