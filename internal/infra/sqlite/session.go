package sqlite

import (
	"database/sql"

	"github.com/memoir-app/memoir/internal/domain"
)

// ─── Sessions ───────────────────────────────────────────────────────────────

// InsertSession stores a completed session. The store is append-only;
// a duplicate ID is an error.
func (d *DB) InsertSession(userID string, s domain.Session) error {
	_, err := d.db.Exec(
		`INSERT INTO sessions (id, user_id, date, timestamp, duration_seconds, subject,
			note, pause_count, inactive_count, focus_score, productivity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, userID, s.Date, s.Timestamp, s.DurationSeconds, s.Subject,
		s.Note, s.PauseCount, s.InactiveCount, s.FocusScore, string(s.Productivity), s.CreatedAt,
	)
	return err
}

// GetSession retrieves one session by ID.
func (d *DB) GetSession(userID, id string) (*domain.Session, error) {
	row := d.db.QueryRow(
		`SELECT id, date, timestamp, duration_seconds, subject, note,
			pause_count, inactive_count, focus_score, productivity, created_at
		 FROM sessions WHERE user_id = ? AND id = ?`, userID, id,
	)
	return scanSession(row)
}

// ListSessions returns all of a user's sessions ordered oldest first.
func (d *DB) ListSessions(userID string) ([]domain.Session, error) {
	rows, err := d.db.Query(
		`SELECT id, date, timestamp, duration_seconds, subject, note,
			pause_count, inactive_count, focus_score, productivity, created_at
		 FROM sessions WHERE user_id = ? ORDER BY timestamp ASC, created_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// ListRecentSessions returns the newest sessions, newest first.
func (d *DB) ListRecentSessions(userID string, limit int) ([]domain.Session, error) {
	rows, err := d.db.Query(
		`SELECT id, date, timestamp, duration_seconds, subject, note,
			pause_count, inactive_count, focus_score, productivity, created_at
		 FROM sessions WHERE user_id = ?
		 ORDER BY timestamp DESC, created_at DESC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// DeleteSession removes one session.
func (d *DB) DeleteSession(userID, id string) error {
	result, err := d.db.Exec(
		`DELETE FROM sessions WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func scanSession(s scanner) (*domain.Session, error) {
	var sess domain.Session
	var productivity string

	err := s.Scan(&sess.ID, &sess.Date, &sess.Timestamp, &sess.DurationSeconds,
		&sess.Subject, &sess.Note, &sess.PauseCount, &sess.InactiveCount,
		&sess.FocusScore, &productivity, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	sess.Productivity = domain.Productivity(productivity)
	return &sess, nil
}
