package devbackend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/me/botdash/pkg/model"
	"golang.org/x/crypto/bcrypt"

	_ "modernc.org/sqlite"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or a
// wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Store is the dev backend's SQLite persistence.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Page selects one keyset page.
type Page struct {
	Cursor string
	Limit  int
}

// BotQuery filters bot listings. Empty lists match everything. A nil TeamID
// lists every team.
type BotQuery struct {
	TeamID        *int
	Status        []model.BotStatus
	Platform      []model.MeetingPlatform
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	BotUUID       string
}

// EventQuery filters calendar events of one team.
type EventQuery struct {
	TeamID int
	Start  *time.Time
	End    *time.Time
	Search string
}

// TicketQuery filters support tickets. A nil TeamID lists every team.
type TicketQuery struct {
	TeamID *int
	Status []model.TicketStatus
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Search string
	Role   []model.Role
}

// NewStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// An in-memory database lives per connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "devbackend-store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func toMS(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMS(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullMS(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMS(*t), Valid: true}
}

func timePtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromMS(n.Int64)
	return &t
}

// --- Teams ---

// CreateTeam inserts a team. A zero ID is assigned by the database.
// hoursLimit overrides the plan's bot-hour allowance when set.
func (s *Store) CreateTeam(ctx context.Context, t *model.Team, hoursLimit *float64) error {
	s.logger.Debug("sql", "op", "insert", "table", "teams", "name", t.Name)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	var id any
	if t.ID != 0 {
		id = t.ID
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, plan, owner_email, created_at, hours_limit) VALUES (?, ?, ?, ?, ?, ?)`,
		id, t.Name, t.Plan, t.OwnerEmail, toMS(t.CreatedAt), hoursLimit)
	if err != nil {
		return err
	}
	if t.ID == 0 {
		n, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.ID = int(n)
	}
	return nil
}

const teamColumns = `t.id, t.name, t.plan, t.owner_email,
	(SELECT COUNT(*) FROM users u WHERE u.team_id = t.id),
	(SELECT COUNT(*) FROM bots b WHERE b.team_id = t.id),
	t.created_at`

func scanTeam(scan func(...any) error) (model.Team, error) {
	var t model.Team
	var created int64
	if err := scan(&t.ID, &t.Name, &t.Plan, &t.OwnerEmail, &t.MemberCount, &t.BotCount, &created); err != nil {
		return t, err
	}
	t.CreatedAt = fromMS(created)
	return t, nil
}

// GetTeam returns a team, or nil if it does not exist.
func (s *Store) GetTeam(ctx context.Context, id int) (*model.Team, error) {
	s.logger.Debug("sql", "op", "select", "table", "teams", "id", id)
	row := s.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.id = ?`, id)
	t, err := scanTeam(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTeams lists teams newest first, optionally filtered by name.
func (s *Store) ListTeams(ctx context.Context, search string, p Page) (model.ListResponse[model.Team], error) {
	q := listQuery{columns: teamColumns, from: "teams t", key: "t.created_at", id: "t.id"}
	if search != "" {
		q.filter("t.name LIKE ?", "%"+search+"%")
	}
	resp := model.ListResponse[model.Team]{Data: []model.Team{}}
	var err error
	resp.Cursor, resp.PrevCursor, err = s.page(ctx, q, p.Cursor, p.Limit, func(scan func(...any) error) error {
		t, err := scanTeam(scan)
		if err != nil {
			return err
		}
		resp.Data = append(resp.Data, t)
		return nil
	})
	return resp, err
}

// Usage computes the team's bot hours for the calendar month containing now.
func (s *Store) Usage(ctx context.Context, teamID int, now time.Time) (*model.Usage, error) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var plan string
	var override sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT plan, hours_limit FROM teams WHERE id = ?`, teamID).Scan(&plan, &override)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var seconds int64
	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration_seconds), 0) FROM bots WHERE team_id = ? AND created_at >= ? AND created_at < ?`,
		teamID, toMS(start), toMS(end)).Scan(&seconds)
	if err != nil {
		return nil, err
	}

	limit := planHours(plan)
	if override.Valid {
		limit = override.Float64
	}
	return &model.Usage{
		Plan:          plan,
		BotHoursUsed:  float64(seconds) / 3600,
		BotHoursLimit: limit,
		PeriodStart:   start,
		PeriodEnd:     end,
	}, nil
}

// planHours is the monthly bot-hour allowance of a plan; 0 is unmetered.
func planHours(plan string) float64 {
	switch plan {
	case "free":
		return 5
	case "pro":
		return 100
	default:
		return 0
	}
}

// --- Users ---

// CreateUser inserts a user with a bcrypt hash of password. teamRole is the
// membership role (owner, admin, member) when the user belongs to a team.
func (s *Store) CreateUser(ctx context.Context, u *model.User, password, teamRole string) error {
	s.logger.Debug("sql", "op", "insert", "table", "users", "email", u.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if teamRole == "" {
		teamRole = "member"
	}
	var id any
	if u.ID != 0 {
		id = u.ID
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, role, password_hash, banned, ban_reason, team_id, team_role, created_at, last_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, u.Email, u.Name, string(u.Role), string(hash), u.Banned, u.BanReason, u.TeamID, teamRole,
		toMS(u.CreatedAt), nullMS(u.LastSeenAt))
	if err != nil {
		return err
	}
	if u.ID == 0 {
		n, err := res.LastInsertId()
		if err != nil {
			return err
		}
		u.ID = int(n)
	}
	return nil
}

const userColumns = `u.id, u.email, u.name, u.role, u.banned, u.ban_reason, u.team_id, COALESCE(t.name, ''), u.created_at, u.last_seen_at`

func scanUser(scan func(...any) error) (model.User, error) {
	var u model.User
	var role string
	var teamID, lastSeen sql.NullInt64
	var created int64
	if err := scan(&u.ID, &u.Email, &u.Name, &role, &u.Banned, &u.BanReason, &teamID, &u.TeamName, &created, &lastSeen); err != nil {
		return u, err
	}
	u.Role = model.Role(role)
	if teamID.Valid {
		id := int(teamID.Int64)
		u.TeamID = &id
	}
	u.CreatedAt = fromMS(created)
	u.LastSeenAt = timePtr(lastSeen)
	return u, nil
}

// GetUser returns a user, or nil if it does not exist.
func (s *Store) GetUser(ctx context.Context, id int) (*model.User, error) {
	s.logger.Debug("sql", "op", "select", "table", "users", "id", id)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users u LEFT JOIN teams t ON t.id = u.team_id WHERE u.id = ?`, id)
	u, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers lists users newest first.
func (s *Store) ListUsers(ctx context.Context, uq UserQuery, p Page) (model.ListResponse[model.User], error) {
	q := listQuery{columns: userColumns, from: "users u LEFT JOIN teams t ON t.id = u.team_id", key: "u.created_at", id: "u.id"}
	if uq.Search != "" {
		like := "%" + uq.Search + "%"
		q.filter("(u.email LIKE ? OR u.name LIKE ?)", like, like)
	}
	filterIn(&q, "u.role", uq.Role)
	resp := model.ListResponse[model.User]{Data: []model.User{}}
	var err error
	resp.Cursor, resp.PrevCursor, err = s.page(ctx, q, p.Cursor, p.Limit, func(scan func(...any) error) error {
		u, err := scanUser(scan)
		if err != nil {
			return err
		}
		resp.Data = append(resp.Data, u)
		return nil
	})
	return resp, err
}

// ListMembers lists the members of a team, most recent joiners first.
func (s *Store) ListMembers(ctx context.Context, teamID int, p Page) (model.ListResponse[model.TeamMember], error) {
	q := listQuery{columns: "u.id, u.email, u.name, u.team_role, u.created_at", from: "users u", key: "u.created_at", id: "u.id"}
	q.filter("u.team_id = ?", teamID)
	resp := model.ListResponse[model.TeamMember]{Data: []model.TeamMember{}}
	var err error
	resp.Cursor, resp.PrevCursor, err = s.page(ctx, q, p.Cursor, p.Limit, func(scan func(...any) error) error {
		var m model.TeamMember
		var joined int64
		if err := scan(&m.UserID, &m.Email, &m.Name, &m.Role, &joined); err != nil {
			return err
		}
		m.JoinedAt = fromMS(joined)
		resp.Data = append(resp.Data, m)
		return nil
	})
	return resp, err
}

// --- Sessions ---

// Authenticate checks an email and password pair.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	var id int
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE email = ?`, email).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.GetUser(ctx, id)
}

// CreateSession opens a session for a user.
func (s *Store) CreateSession(ctx context.Context, userID int, ttl time.Duration) (model.SessionInfo, error) {
	now := time.Now().UTC()
	info := model.SessionInfo{
		Token:     uuid.NewString(),
		UserID:    fmt.Sprint(userID),
		ExpiresAt: now.Add(ttl).Truncate(time.Millisecond),
	}
	s.logger.Debug("sql", "op", "insert", "table", "sessions", "user_id", userID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		info.Token, userID, toMS(now), toMS(info.ExpiresAt))
	if err != nil {
		return info, err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE users SET last_seen_at = ? WHERE id = ?`, toMS(now), userID)
	return info, err
}

// Session returns the live session for a token with its user, or nil.
func (s *Store) Session(ctx context.Context, token string) (*model.User, *model.SessionInfo, error) {
	var userID int
	var expires int64
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM sessions WHERE token = ? AND expires_at > ?`,
		token, toMS(time.Now())).Scan(&userID, &expires)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	u, err := s.GetUser(ctx, userID)
	if err != nil || u == nil {
		return nil, nil, err
	}
	return u, &model.SessionInfo{Token: token, UserID: fmt.Sprint(userID), ExpiresAt: fromMS(expires)}, nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	s.logger.Debug("sql", "op", "delete", "table", "sessions")
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, toMS(time.Now()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Bots ---

// CreateBot inserts a bot. An empty UUID is generated.
func (s *Store) CreateBot(ctx context.Context, b *model.Bot) error {
	if b.UUID == "" {
		b.UUID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.Artifacts == nil {
		b.Artifacts = []model.BotArtifact{}
	}
	artifacts, err := json.Marshal(b.Artifacts)
	if err != nil {
		return fmt.Errorf("marshal artifacts: %w", err)
	}
	s.logger.Debug("sql", "op", "insert", "table", "bots", "uuid", b.UUID)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bots (uuid, team_id, bot_name, meeting_url, meeting_platform, status, duration_seconds, error_message, artifacts, created_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UUID, b.TeamID, b.Name, b.MeetingURL, string(b.Platform), string(b.Status), b.DurationSeconds,
		b.ErrorMessage, string(artifacts), toMS(b.CreatedAt), nullMS(b.EndedAt))
	return err
}

const botColumns = `b.uuid, b.team_id, b.bot_name, b.meeting_url, b.meeting_platform, b.status,
	b.duration_seconds, b.error_message, b.artifacts, b.ended_at, b.created_at`

func scanBot(scan func(...any) error) (model.Bot, error) {
	var b model.Bot
	var platform, status, artifacts string
	var ended sql.NullInt64
	var created int64
	if err := scan(&b.UUID, &b.TeamID, &b.Name, &b.MeetingURL, &platform, &status,
		&b.DurationSeconds, &b.ErrorMessage, &artifacts, &ended, &created); err != nil {
		return b, err
	}
	b.Platform = model.MeetingPlatform(platform)
	b.Status = model.BotStatus(status)
	if err := json.Unmarshal([]byte(artifacts), &b.Artifacts); err != nil {
		return b, fmt.Errorf("unmarshal artifacts: %w", err)
	}
	b.CreatedAt = fromMS(created)
	b.EndedAt = timePtr(ended)
	return b, nil
}

// GetBot returns a bot, or nil if it does not exist or belongs to another
// team. A nil teamID matches any team.
func (s *Store) GetBot(ctx context.Context, teamID *int, id string) (*model.Bot, error) {
	s.logger.Debug("sql", "op", "select", "table", "bots", "uuid", id)
	stmt := `SELECT ` + botColumns + ` FROM bots b WHERE b.uuid = ?`
	args := []any{id}
	if teamID != nil {
		stmt += ` AND b.team_id = ?`
		args = append(args, *teamID)
	}
	b, err := scanBot(s.db.QueryRowContext(ctx, stmt, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBots lists bots newest first.
func (s *Store) ListBots(ctx context.Context, bq BotQuery, p Page) (model.ListResponse[model.Bot], error) {
	q := listQuery{columns: botColumns, from: "bots b", key: "b.created_at", id: "b.id"}
	if bq.TeamID != nil {
		q.filter("b.team_id = ?", *bq.TeamID)
	}
	filterIn(&q, "b.status", bq.Status)
	filterIn(&q, "b.meeting_platform", bq.Platform)
	if bq.CreatedAfter != nil {
		q.filter("b.created_at >= ?", toMS(*bq.CreatedAfter))
	}
	if bq.CreatedBefore != nil {
		q.filter("b.created_at <= ?", toMS(*bq.CreatedBefore))
	}
	if bq.BotUUID != "" {
		q.filter("b.uuid = ?", bq.BotUUID)
	}

	resp := model.ListResponse[model.Bot]{Data: []model.Bot{}}
	var err error
	resp.Cursor, resp.PrevCursor, err = s.page(ctx, q, p.Cursor, p.Limit, func(scan func(...any) error) error {
		b, err := scanBot(scan)
		if err != nil {
			return err
		}
		resp.Data = append(resp.Data, b)
		return nil
	})
	return resp, err
}

// --- Calendar ---

// CreateEvent inserts a calendar event for a team.
func (s *Store) CreateEvent(ctx context.Context, teamID int, e *model.CalendarEvent) error {
	if e.UUID == "" {
		e.UUID = uuid.NewString()
	}
	s.logger.Debug("sql", "op", "insert", "table", "calendar_events", "uuid", e.UUID)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calendar_events (uuid, team_id, name, start_time, end_time, meeting_url, meeting_platform, calendar_email, bot_uuid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UUID, teamID, e.Name, toMS(e.StartTime), toMS(e.EndTime), e.MeetingURL, string(e.Platform), e.CalendarEmail, e.BotUUID)
	return err
}

// ListEvents lists a team's events overlapping the query range, latest start
// first.
func (s *Store) ListEvents(ctx context.Context, eq EventQuery, p Page) (model.ListResponse[model.CalendarEvent], error) {
	q := listQuery{
		columns: "e.uuid, e.name, e.start_time, e.end_time, e.meeting_url, e.meeting_platform, e.calendar_email, e.bot_uuid",
		from:    "calendar_events e",
		key:     "e.start_time",
		id:      "e.id",
	}
	q.filter("e.team_id = ?", eq.TeamID)
	if eq.Start != nil {
		q.filter("e.end_time >= ?", toMS(*eq.Start))
	}
	if eq.End != nil {
		q.filter("e.start_time <= ?", toMS(*eq.End))
	}
	if eq.Search != "" {
		q.filter("e.name LIKE ?", "%"+eq.Search+"%")
	}

	resp := model.ListResponse[model.CalendarEvent]{Data: []model.CalendarEvent{}}
	var err error
	resp.Cursor, resp.PrevCursor, err = s.page(ctx, q, p.Cursor, p.Limit, func(scan func(...any) error) error {
		var e model.CalendarEvent
		var platform string
		var start, end int64
		if err := scan(&e.UUID, &e.Name, &start, &end, &e.MeetingURL, &platform, &e.CalendarEmail, &e.BotUUID); err != nil {
			return err
		}
		e.Platform = model.MeetingPlatform(platform)
		e.StartTime = fromMS(start)
		e.EndTime = fromMS(end)
		e.BotScheduled = e.BotUUID != ""
		resp.Data = append(resp.Data, e)
		return nil
	})
	return resp, err
}

// --- Tickets ---

// CreateTicket inserts a ticket with its messages.
func (s *Store) CreateTicket(ctx context.Context, t *model.Ticket) error {
	if t.UUID == "" {
		t.UUID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	s.logger.Debug("sql", "op", "insert", "table", "tickets", "uuid", t.UUID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (uuid, team_id, subject, status, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.UUID, t.TeamID, t.Subject, string(t.Status), t.CreatedBy, toMS(t.CreatedAt), toMS(t.UpdatedAt))
	if err != nil {
		return err
	}
	ticketID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i := range t.Messages {
		m := &t.Messages[i]
		if m.CreatedAt.IsZero() {
			m.CreatedAt = t.CreatedAt
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO ticket_messages (ticket_id, author, body, from_staff, created_at) VALUES (?, ?, ?, ?, ?)`,
			ticketID, m.Author, m.Body, m.FromStaff, toMS(m.CreatedAt))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		m.ID = int(id)
	}
	return tx.Commit()
}

const ticketColumns = `k.uuid, k.subject, k.status, k.team_id, COALESCE(t.name, ''), k.created_by, k.updated_at, k.created_at`

func scanTicket(scan func(...any) error, extra ...any) (model.Ticket, error) {
	var k model.Ticket
	var status string
	var updated, created int64
	dest := []any{&k.UUID, &k.Subject, &status, &k.TeamID, &k.TeamName, &k.CreatedBy, &updated, &created}
	if err := scan(append(dest, extra...)...); err != nil {
		return k, err
	}
	k.Status = model.TicketStatus(status)
	k.CreatedAt = fromMS(created)
	k.UpdatedAt = fromMS(updated)
	return k, nil
}

// GetTicket returns a ticket with its conversation, or nil if it does not
// exist or belongs to another team. A nil teamID matches any team.
func (s *Store) GetTicket(ctx context.Context, teamID *int, id string) (*model.Ticket, error) {
	s.logger.Debug("sql", "op", "select", "table", "tickets", "uuid", id)
	stmt := `SELECT ` + ticketColumns + `, k.id FROM tickets k LEFT JOIN teams t ON t.id = k.team_id WHERE k.uuid = ?`
	args := []any{id}
	if teamID != nil {
		stmt += ` AND k.team_id = ?`
		args = append(args, *teamID)
	}
	var rowID int64
	k, err := scanTicket(s.db.QueryRowContext(ctx, stmt, args...).Scan, &rowID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author, body, from_staff, created_at FROM ticket_messages WHERE ticket_id = ? ORDER BY created_at, id`, rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	k.Messages = []model.TicketMessage{}
	for rows.Next() {
		var m model.TicketMessage
		var created int64
		if err := rows.Scan(&m.ID, &m.Author, &m.Body, &m.FromStaff, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = fromMS(created)
		k.Messages = append(k.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &k, nil
}

// ListTickets lists tickets newest first, without their conversations.
func (s *Store) ListTickets(ctx context.Context, tq TicketQuery, p Page) (model.ListResponse[model.Ticket], error) {
	q := listQuery{columns: ticketColumns, from: "tickets k LEFT JOIN teams t ON t.id = k.team_id", key: "k.created_at", id: "k.id"}
	if tq.TeamID != nil {
		q.filter("k.team_id = ?", *tq.TeamID)
	}
	filterIn(&q, "k.status", tq.Status)

	resp := model.ListResponse[model.Ticket]{Data: []model.Ticket{}}
	var err error
	resp.Cursor, resp.PrevCursor, err = s.page(ctx, q, p.Cursor, p.Limit, func(scan func(...any) error) error {
		k, err := scanTicket(scan)
		if err != nil {
			return err
		}
		resp.Data = append(resp.Data, k)
		return nil
	})
	return resp, err
}

// Empty reports whether the database holds no teams yet.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
