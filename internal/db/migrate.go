package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillJoinedAt(db); err != nil {
		return fmt.Errorf("backfilling joined_at: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL DEFAULT '',
		title           TEXT NOT NULL DEFAULT '',
		avatar          TEXT NOT NULL DEFAULT '',
		profile_picture TEXT NOT NULL DEFAULT '',
		limits          TEXT NOT NULL DEFAULT '',
		kinks           TEXT NOT NULL DEFAULT '',
		hierarchy       TEXT NOT NULL DEFAULT '',
		points          INTEGER NOT NULL DEFAULT 0,
		coins           INTEGER NOT NULL DEFAULT 0,
		kneel_count     INTEGER NOT NULL DEFAULT 0 CHECK(kneel_count >= 0),
		total_spent     INTEGER NOT NULL DEFAULT 0,
		completed_tasks INTEGER NOT NULL DEFAULT 0,
		routine_streak  INTEGER NOT NULL DEFAULT 0,
		last_kneel_at   TEXT,
		last_seen_at    TEXT,
		joined_at       TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_members_name ON members(name)`,

	`CREATE TABLE IF NOT EXISTS submissions (
		id           TEXT PRIMARY KEY,
		member_id    TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		kind         TEXT NOT NULL CHECK(kind IN ('routine','task')),
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','approve','reject','fail')),
		submitted_at TEXT NOT NULL,
		proof_url    TEXT NOT NULL DEFAULT '',
		note         TEXT NOT NULL DEFAULT '',
		reviewed_at  TEXT,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_submissions_member ON submissions(member_id, submitted_at)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status)`,

	// Routine name, shown next to the streak.
	`ALTER TABLE members ADD COLUMN routine TEXT NOT NULL DEFAULT ''`,

	// Kneel rewards are claimable once per kneel.
	`ALTER TABLE members ADD COLUMN last_reward_at TEXT`,

	`CREATE TABLE IF NOT EXISTS purchases (
		id         TEXT PRIMARY KEY,
		member_id  TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		item       TEXT NOT NULL,
		cost       INTEGER NOT NULL CHECK(cost > 0),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_purchases_member ON purchases(member_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		member_id     TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		text          TEXT NOT NULL,
		category      TEXT NOT NULL DEFAULT 'general'
		              CHECK(category IN ('general','redemption')),
		status        TEXT NOT NULL DEFAULT 'active'
		              CHECK(status IN ('active','submitted','failed','atoned')),
		fail_reason   TEXT NOT NULL DEFAULT '',
		submission_id TEXT NOT NULL DEFAULT '',
		assigned_at   TEXT NOT NULL,
		deadline      TEXT NOT NULL,
		closed_at     TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_member ON tasks(member_id, assigned_at)`,
	// One active task per member.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_active ON tasks(member_id) WHERE status = 'active'`,

	`CREATE TABLE IF NOT EXISTS task_queue (
		id         TEXT PRIMARY KEY,
		member_id  TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_queue_member ON task_queue(member_id, position)`,
}

// migrateBackfillJoinedAt fills joined_at for rows written before the column
// was populated on insert.
func migrateBackfillJoinedAt(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`UPDATE members SET joined_at = created_at WHERE joined_at = ''`)
	return err
}
