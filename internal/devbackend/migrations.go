package devbackend

import (
	"context"
	"database/sql"
	"strings"
)

// tableDDL contains the DDL for all dev backend tables.
// Each statement uses IF NOT EXISTS for idempotency. Timestamps are unix
// milliseconds so keyset comparisons are plain integer comparisons.
var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		plan        TEXT NOT NULL DEFAULT 'free',
		owner_email TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user',
		password_hash TEXT NOT NULL,
		banned        INTEGER NOT NULL DEFAULT 0,
		ban_reason    TEXT NOT NULL DEFAULT '',
		team_id       INTEGER REFERENCES teams(id),
		team_role     TEXT NOT NULL DEFAULT 'member',
		created_at    INTEGER NOT NULL,
		last_seen_at  INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_team_id ON users(team_id)`,

	`CREATE TABLE IF NOT EXISTS bots (
		id               INTEGER PRIMARY KEY,
		uuid             TEXT NOT NULL UNIQUE,
		team_id          INTEGER NOT NULL REFERENCES teams(id),
		bot_name         TEXT NOT NULL,
		meeting_url      TEXT NOT NULL,
		meeting_platform TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'queued',
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		error_message    TEXT NOT NULL DEFAULT '',
		artifacts        TEXT NOT NULL DEFAULT '[]',
		created_at       INTEGER NOT NULL,
		ended_at         INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bots_team_created ON bots(team_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_bots_status ON bots(status)`,

	`CREATE TABLE IF NOT EXISTS calendar_events (
		id               INTEGER PRIMARY KEY,
		uuid             TEXT NOT NULL UNIQUE,
		team_id          INTEGER NOT NULL REFERENCES teams(id),
		name             TEXT NOT NULL,
		start_time       INTEGER NOT NULL,
		end_time         INTEGER NOT NULL,
		meeting_url      TEXT NOT NULL DEFAULT '',
		meeting_platform TEXT NOT NULL DEFAULT '',
		calendar_email   TEXT NOT NULL DEFAULT '',
		bot_uuid         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_team_start ON calendar_events(team_id, start_time)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id         INTEGER PRIMARY KEY,
		uuid       TEXT NOT NULL UNIQUE,
		team_id    INTEGER NOT NULL REFERENCES teams(id),
		subject    TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'open',
		created_by TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_team_id ON tickets(team_id)`,

	`CREATE TABLE IF NOT EXISTS ticket_messages (
		id         INTEGER PRIMARY KEY,
		ticket_id  INTEGER NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
		author     TEXT NOT NULL,
		body       TEXT NOT NULL,
		from_staff INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticket_messages_ticket ON ticket_messages(ticket_id)`,

	// Sessions table for cookie authentication
	`CREATE TABLE IF NOT EXISTS sessions (
		token      TEXT PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
}

// alterStatements are column additions that need special handling since
// SQLite doesn't support IF NOT EXISTS for ALTER TABLE ADD COLUMN.
var alterStatements = []struct {
	table    string
	column   string
	alterSQL string
	indexSQL string // Optional index to create after column is added
}{
	{
		table:    "teams",
		column:   "hours_limit",
		alterSQL: "ALTER TABLE teams ADD COLUMN hours_limit REAL",
	},
}

// migrate executes all schema DDL statements and alter migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range tableDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// Execute ALTER TABLE statements idempotently.
	for _, alter := range alterStatements {
		if err := addColumnIfNotExists(ctx, db, alter.table, alter.column, alter.alterSQL); err != nil {
			return err
		}
		if alter.indexSQL != "" {
			if _, err := db.ExecContext(ctx, alter.indexSQL); err != nil {
				return err
			}
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, alterSQL string) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue *string
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			return nil // Column already exists
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = db.ExecContext(ctx, alterSQL)
	return err
}
