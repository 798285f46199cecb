package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sprints (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL,
		name             TEXT NOT NULL,
		goal             TEXT NOT NULL DEFAULT '',
		start_date       TEXT NOT NULL,
		end_date         TEXT NOT NULL,
		capacity         INTEGER NOT NULL,
		committed_points INTEGER NOT NULL DEFAULT 0,
		completed_points INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'planning'
		                 CHECK(status IN ('planning','active','completed','archived')),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                  TEXT PRIMARY KEY,
		project_id          TEXT NOT NULL,
		title               TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		type                TEXT NOT NULL
		                    CHECK(type IN ('story','task','bug','epic','spike')),
		priority            TEXT NOT NULL
		                    CHECK(priority IN ('critical','high','medium','low')),
		status              TEXT NOT NULL DEFAULT 'backlog'
		                    CHECK(status IN ('backlog','todo','in_progress','in_review',
		                                     'in_testing','done','blocked','cancelled','archived')),
		story_points        INTEGER,
		reporter_id         TEXT NOT NULL,
		sprint_id           TEXT REFERENCES sprints(id) ON DELETE SET NULL,
		parent_id           TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		assignees           TEXT NOT NULL DEFAULT '[]',
		tags                TEXT NOT NULL DEFAULT '[]',
		acceptance_criteria TEXT NOT NULL DEFAULT '[]',
		due_date            TEXT,
		estimated_hours     REAL,
		actual_hours        REAL,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL,
		started_at          TEXT,
		completed_at        TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS retro_sessions (
		id               TEXT PRIMARY KEY,
		sprint_id        TEXT NOT NULL UNIQUE REFERENCES sprints(id) ON DELETE CASCADE,
		format           TEXT NOT NULL
		                 CHECK(format IN ('mad-sad-glad','what-went-well','start-stop-continue','4ls')),
		phase            TEXT NOT NULL DEFAULT 'brainstorm'
		                 CHECK(phase IN ('brainstorm','voting','discussion','closed')),
		facilitator_id   TEXT NOT NULL,
		allow_anonymous  INTEGER NOT NULL DEFAULT 1,
		votes_per_person INTEGER NOT NULL DEFAULT 3,
		timer_minutes    INTEGER,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS retro_cards (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES retro_sessions(id) ON DELETE CASCADE,
		column_name  TEXT NOT NULL,
		content      TEXT NOT NULL,
		author_id    TEXT NOT NULL,
		is_anonymous INTEGER NOT NULL DEFAULT 0,
		card_order   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS retro_card_votes (
		card_id    TEXT NOT NULL REFERENCES retro_cards(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (card_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS retro_actions (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES retro_sessions(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		assignee_id TEXT,
		status      TEXT NOT NULL DEFAULT 'todo'
		            CHECK(status IN ('todo','in_progress','done')),
		due_date    TEXT,
		card_ids    TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_sprint ON tasks(sprint_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_project ON sprints(project_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_retro_cards_session ON retro_cards(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_retro_actions_session ON retro_actions(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_retro_votes_user ON retro_card_votes(user_id)`,
}
