package devbackend

import (
	"context"
	"testing"
	"time"

	"github.com/me/botdash/internal/logging"
	"github.com/me/botdash/pkg/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return st
}

var base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func addTeam(t *testing.T, st *Store, id int, plan string) {
	t.Helper()
	team := model.Team{ID: id, Name: "Team " + itoa(id), Plan: plan, OwnerEmail: "owner@example.com", CreatedAt: base}
	if err := st.CreateTeam(context.Background(), &team, nil); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
}

// addBots inserts n bots for the team, the i-th created i minutes after base.
func addBots(t *testing.T, st *Store, team, n int) []model.Bot {
	t.Helper()
	var bots []model.Bot
	for i := 0; i < n; i++ {
		b := model.Bot{
			TeamID:     team,
			Name:       "bot " + itoa(i),
			MeetingURL: "https://zoom.us/j/1",
			Platform:   model.PlatformZoom,
			Status:     model.BotStatusCompleted,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.CreateBot(context.Background(), &b); err != nil {
			t.Fatalf("CreateBot: %v", err)
		}
		bots = append(bots, b)
	}
	return bots
}

func names(bots []model.Bot) []string {
	out := make([]string, len(bots))
	for i, b := range bots {
		out[i] = b.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMigrate_Idempotent(t *testing.T) {
	st := testStore(t)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestListBots_Pagination(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "pro")
	addBots(t, st, 1, 7)
	team := 1
	q := BotQuery{TeamID: &team}

	first, err := st.ListBots(ctx, q, Page{Limit: 3})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if got := names(first.Data); !equal(got, []string{"bot 6", "bot 5", "bot 4"}) {
		t.Fatalf("first page = %v", got)
	}
	if first.HasPrev() {
		t.Error("first page should have no previous cursor")
	}
	if !first.HasNext() {
		t.Fatal("first page should have a next cursor")
	}

	second, err := st.ListBots(ctx, q, Page{Cursor: first.NextCursor(), Limit: 3})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if got := names(second.Data); !equal(got, []string{"bot 3", "bot 2", "bot 1"}) {
		t.Fatalf("second page = %v", got)
	}
	if !second.HasPrev() || !second.HasNext() {
		t.Fatalf("second page cursors: prev=%v next=%v", second.PrevCursor, second.Cursor)
	}

	last, err := st.ListBots(ctx, q, Page{Cursor: second.NextCursor(), Limit: 3})
	if err != nil {
		t.Fatalf("last page: %v", err)
	}
	if got := names(last.Data); !equal(got, []string{"bot 0"}) {
		t.Fatalf("last page = %v", got)
	}
	if last.HasNext() {
		t.Error("last page should have no next cursor")
	}

	back, err := st.ListBots(ctx, q, Page{Cursor: last.PreviousCursor(), Limit: 3})
	if err != nil {
		t.Fatalf("back from last: %v", err)
	}
	if got := names(back.Data); !equal(got, names(second.Data)) {
		t.Errorf("previous of last = %v, want %v", got, names(second.Data))
	}

	top, err := st.ListBots(ctx, q, Page{Cursor: second.PreviousCursor(), Limit: 3})
	if err != nil {
		t.Fatalf("back from second: %v", err)
	}
	if got := names(top.Data); !equal(got, names(first.Data)) {
		t.Errorf("previous of second = %v, want %v", got, names(first.Data))
	}
}

func TestListBots_InvalidCursor(t *testing.T) {
	st := testStore(t)
	for _, cursor := range []string{"not base64!", "Zm9v", "YTpi"} {
		if _, err := st.ListBots(context.Background(), BotQuery{}, Page{Cursor: cursor, Limit: 10}); err != ErrInvalidCursor {
			t.Errorf("cursor %q: err = %v, want ErrInvalidCursor", cursor, err)
		}
	}
}

func TestListBots_Filters(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "pro")
	addTeam(t, st, 2, "free")
	bots := addBots(t, st, 1, 4)
	other := model.Bot{TeamID: 2, Name: "other", MeetingURL: "https://meet.google.com/x", Platform: model.PlatformGoogleMeet,
		Status: model.BotStatusFailed, CreatedAt: base}
	if err := st.CreateBot(ctx, &other); err != nil {
		t.Fatal(err)
	}
	team1 := 1
	after := base.Add(2 * time.Minute)

	tests := []struct {
		name string
		q    BotQuery
		want []string
	}{
		{"team scope", BotQuery{TeamID: &team1}, []string{"bot 3", "bot 2", "bot 1", "bot 0"}},
		{"all teams", BotQuery{}, []string{"bot 3", "bot 2", "bot 1", "other", "bot 0"}},
		{"status list", BotQuery{Status: []model.BotStatus{model.BotStatusFailed, model.BotStatusCancelled}}, []string{"other"}},
		{"platform", BotQuery{Platform: []model.MeetingPlatform{model.PlatformZoom}, TeamID: &team1}, []string{"bot 3", "bot 2", "bot 1", "bot 0"}},
		{"created after", BotQuery{TeamID: &team1, CreatedAfter: &after}, []string{"bot 3", "bot 2"}},
		{"created before", BotQuery{TeamID: &team1, CreatedBefore: &after}, []string{"bot 2", "bot 1", "bot 0"}},
		{"by uuid", BotQuery{BotUUID: bots[1].UUID}, []string{"bot 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := st.ListBots(ctx, tt.q, Page{Limit: 50})
			if err != nil {
				t.Fatal(err)
			}
			if got := names(resp.Data); !equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetBot_TeamScope(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "pro")
	addTeam(t, st, 2, "pro")
	bots := addBots(t, st, 1, 1)

	own, other := 1, 2
	if b, err := st.GetBot(ctx, &own, bots[0].UUID); err != nil || b == nil {
		t.Fatalf("own team GetBot = %v, %v", b, err)
	}
	if b, err := st.GetBot(ctx, &other, bots[0].UUID); err != nil || b != nil {
		t.Errorf("other team GetBot = %v, %v; want nil", b, err)
	}
	b, err := st.GetBot(ctx, nil, bots[0].UUID)
	if err != nil || b == nil {
		t.Fatalf("unscoped GetBot = %v, %v", b, err)
	}
	if !b.CreatedAt.Equal(bots[0].CreatedAt) || len(b.Artifacts) != 0 {
		t.Errorf("round trip mismatch: %+v", b)
	}
}

func TestUsage(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "free")
	limit := 42.0
	override := model.Team{ID: 2, Name: "Custom", Plan: "pro", CreatedAt: base}
	if err := st.CreateTeam(ctx, &override, &limit); err != nil {
		t.Fatal(err)
	}
	for _, b := range []model.Bot{
		{TeamID: 1, DurationSeconds: 5400, CreatedAt: base},
		{TeamID: 1, DurationSeconds: 1800, CreatedAt: base.AddDate(0, 0, -1)},
		{TeamID: 1, DurationSeconds: 9000, CreatedAt: base.AddDate(0, -1, 0)},
	} {
		b.Name, b.MeetingURL, b.Platform, b.Status = "b", "https://zoom.us/j/1", model.PlatformZoom, model.BotStatusCompleted
		if err := st.CreateBot(ctx, &b); err != nil {
			t.Fatal(err)
		}
	}

	u, err := st.Usage(ctx, 1, base)
	if err != nil {
		t.Fatal(err)
	}
	if u.BotHoursUsed != 2 {
		t.Errorf("BotHoursUsed = %v, want 2", u.BotHoursUsed)
	}
	if u.BotHoursLimit != 5 {
		t.Errorf("BotHoursLimit = %v, want 5", u.BotHoursLimit)
	}
	if want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC); !u.PeriodStart.Equal(want) {
		t.Errorf("PeriodStart = %v, want %v", u.PeriodStart, want)
	}

	u, err = st.Usage(ctx, 2, base)
	if err != nil {
		t.Fatal(err)
	}
	if u.BotHoursLimit != 42 {
		t.Errorf("override BotHoursLimit = %v, want 42", u.BotHoursLimit)
	}

	if u, err := st.Usage(ctx, 99, base); err != nil || u != nil {
		t.Errorf("unknown team usage = %v, %v", u, err)
	}
}

func TestAuthenticateAndSessions(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "pro")
	team := 1
	u := model.User{Email: "ann@example.com", Name: "Ann", TeamID: &team}
	if err := st.CreateUser(ctx, &u, "s3cret", "owner"); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Authenticate(ctx, "ann@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := st.Authenticate(ctx, "nobody@example.com", "s3cret"); err != ErrInvalidCredentials {
		t.Errorf("unknown email err = %v", err)
	}
	got, err := st.Authenticate(ctx, "ann@example.com", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if got.Role != model.RoleUser || got.TeamName != "Team 1" {
		t.Errorf("user = %+v", got)
	}

	info, err := st.CreateSession(ctx, got.ID, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	su, si, err := st.Session(ctx, info.Token)
	if err != nil || su == nil {
		t.Fatalf("Session = %v, %v", su, err)
	}
	if su.Email != "ann@example.com" || si.Token != info.Token || su.LastSeenAt == nil {
		t.Errorf("session user = %+v info = %+v", su, si)
	}

	if err := st.DeleteSession(ctx, info.Token); err != nil {
		t.Fatal(err)
	}
	if su, _, err := st.Session(ctx, info.Token); err != nil || su != nil {
		t.Errorf("deleted session = %v, %v", su, err)
	}

	expired, err := st.CreateSession(ctx, got.ID, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if su, _, _ := st.Session(ctx, expired.Token); su != nil {
		t.Error("expired session should not resolve")
	}
	if n, err := st.DeleteExpiredSessions(ctx); err != nil || n != 1 {
		t.Errorf("DeleteExpiredSessions = %d, %v", n, err)
	}
}

func TestListMembersAndTeamCounts(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "pro")
	team := 1
	for i, email := range []string{"a@example.com", "b@example.com"} {
		u := model.User{Email: email, TeamID: &team, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := st.CreateUser(ctx, &u, "pw", ""); err != nil {
			t.Fatal(err)
		}
	}
	addBots(t, st, 1, 3)

	members, err := st.ListMembers(ctx, 1, Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(members.Data) != 2 || members.Data[0].Email != "b@example.com" || members.Data[0].Role != "member" {
		t.Errorf("members = %+v", members.Data)
	}
	if !members.Data[0].JoinedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("JoinedAt = %v", members.Data[0].JoinedAt)
	}

	got, err := st.GetTeam(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.MemberCount != 2 || got.BotCount != 3 {
		t.Errorf("counts = %d members, %d bots", got.MemberCount, got.BotCount)
	}
}

func TestTickets(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "pro")
	addTeam(t, st, 2, "pro")
	open := model.Ticket{TeamID: 1, Subject: "Help", Status: model.TicketStatusOpen, CreatedBy: "a@example.com", CreatedAt: base,
		Messages: []model.TicketMessage{{Author: "a@example.com", Body: "first"}, {Author: "Support", Body: "second", FromStaff: true, CreatedAt: base.Add(time.Minute)}}}
	closed := model.Ticket{TeamID: 2, Subject: "Done", Status: model.TicketStatusClosed, CreatedAt: base.Add(time.Hour)}
	for _, tk := range []*model.Ticket{&open, &closed} {
		if err := st.CreateTicket(ctx, tk); err != nil {
			t.Fatal(err)
		}
	}

	team1 := 1
	list, err := st.ListTickets(ctx, TicketQuery{TeamID: &team1}, Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Data) != 1 || list.Data[0].Subject != "Help" || list.Data[0].TeamName != "Team 1" {
		t.Errorf("team tickets = %+v", list.Data)
	}

	list, err = st.ListTickets(ctx, TicketQuery{Status: []model.TicketStatus{model.TicketStatusClosed}}, Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Data) != 1 || list.Data[0].Subject != "Done" {
		t.Errorf("closed tickets = %+v", list.Data)
	}

	got, err := st.GetTicket(ctx, &team1, open.UUID)
	if err != nil || got == nil {
		t.Fatalf("GetTicket = %v, %v", got, err)
	}
	if len(got.Messages) != 2 || got.Messages[1].Body != "second" || !got.Messages[1].FromStaff {
		t.Errorf("messages = %+v", got.Messages)
	}
	if got, _ := st.GetTicket(ctx, &team1, closed.UUID); got != nil {
		t.Error("ticket of another team should not be visible")
	}
}

func TestSeed(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	if err := st.Seed(ctx, DefaultSeed(), base); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	teams, err := st.ListTeams(ctx, "acme", Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(teams.Data) != 1 || teams.Data[0].Name != "Acme Corp" {
		t.Fatalf("teams = %+v", teams.Data)
	}

	team := teams.Data[0].ID
	bots, err := st.ListBots(ctx, BotQuery{TeamID: &team}, Page{Limit: 50})
	if err != nil {
		t.Fatal(err)
	}
	if len(bots.Data) != 50 || !bots.HasNext() {
		t.Errorf("seeded bots should span several pages, got %d next=%v", len(bots.Data), bots.HasNext())
	}

	events, err := st.ListEvents(ctx, EventQuery{TeamID: team}, Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	var allDay int
	for _, e := range events.Data {
		if e.IsAllDay() {
			allDay++
		}
	}
	if len(events.Data) != 3 || allDay != 1 {
		t.Errorf("events = %d (all-day %d)", len(events.Data), allDay)
	}

	users, err := st.ListUsers(ctx, UserQuery{Role: []model.Role{model.RoleAdmin}}, Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(users.Data) != 1 || users.Data[0].TeamID != nil {
		t.Errorf("admins = %+v", users.Data)
	}

	if _, err := st.Authenticate(ctx, "olivia@acme.test", "password"); err != nil {
		t.Errorf("seeded password: %v", err)
	}
}

func TestListEvents_Range(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	addTeam(t, st, 1, "pro")
	for i, name := range []string{"monday", "tuesday", "wednesday"} {
		e := model.CalendarEvent{Name: name, StartTime: base.AddDate(0, 0, i), EndTime: base.AddDate(0, 0, i).Add(time.Hour)}
		if err := st.CreateEvent(ctx, 1, &e); err != nil {
			t.Fatal(err)
		}
	}
	start := base.AddDate(0, 0, 1)
	end := base.AddDate(0, 0, 1).Add(30 * time.Minute)

	resp, err := st.ListEvents(ctx, EventQuery{TeamID: 1, Start: &start, End: &end}, Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "tuesday" {
		t.Errorf("range events = %+v", resp.Data)
	}

	resp, err = st.ListEvents(ctx, EventQuery{TeamID: 1, Search: "day"}, Page{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 3 || resp.Data[0].Name != "wednesday" {
		t.Errorf("search events = %+v", resp.Data)
	}
}
