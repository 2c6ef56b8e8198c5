// Package sqlite provides SQLite-based persistent storage for Memoir.
// Uses WAL mode for concurrent reads and crash-safe writes. Every table
// is scoped by user_id so one database can hold multiple profiles.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/memoir.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "memoir.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Completed study sessions, append-only.
		`CREATE TABLE IF NOT EXISTS sessions (
			id               TEXT PRIMARY KEY,
			user_id          TEXT NOT NULL,
			date             TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			subject          TEXT NOT NULL,
			note             TEXT NOT NULL DEFAULT '',
			pause_count      INTEGER NOT NULL DEFAULT 0,
			inactive_count   INTEGER NOT NULL DEFAULT 0,
			focus_score      INTEGER NOT NULL DEFAULT 0,
			productivity     TEXT NOT NULL,
			created_at       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ts ON sessions(user_id, timestamp)`,

		// Earned badges, unique per user. INSERT OR IGNORE keeps unlocks
		// idempotent.
		`CREATE TABLE IF NOT EXISTS badges (
			user_id   TEXT NOT NULL,
			id        TEXT NOT NULL,
			earned_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, id)
		)`,

		// Subjects with per-subject hour goals.
		`CREATE TABLE IF NOT EXISTS subjects (
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL,
			goal_hours REAL NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, name)
		)`,

		// Key-value preferences (goal_daily, goal_weekly, ...).
		`CREATE TABLE IF NOT EXISTS prefs (
			user_id TEXT NOT NULL,
			key     TEXT NOT NULL,
			value   TEXT NOT NULL,
			PRIMARY KEY (user_id, key)
		)`,

		// Notification log (badge unlocks, celebrations, reminders).
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_user ON notifications(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Preferences ────────────────────────────────────────────────────────────

// SetPref stores a preference key-value pair for a user.
func (d *DB) SetPref(userID, key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO prefs (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, key) DO UPDATE SET value=excluded.value`,
		userID, key, value,
	)
	return err
}

// GetPref retrieves a preference value. Returns "" if not set.
func (d *DB) GetPref(userID, key string) (string, error) {
	var value string
	err := d.db.QueryRow(
		`SELECT value FROM prefs WHERE user_id = ? AND key = ?`, userID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
