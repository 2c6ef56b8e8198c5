package sqlite

import (
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// ─── Subjects ───────────────────────────────────────────────────────────────

// UpsertSubject inserts a subject or updates its goal hours.
func (d *DB) UpsertSubject(userID string, s domain.Subject) error {
	_, err := d.db.Exec(
		`INSERT INTO subjects (user_id, name, goal_hours, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, name) DO UPDATE SET goal_hours=excluded.goal_hours`,
		userID, s.Name, s.GoalHours, s.CreatedAt.Unix(),
	)
	return err
}

// EnsureSubject inserts a subject if it does not exist yet, leaving an
// existing row untouched. Returns true when the row was created.
func (d *DB) EnsureSubject(userID string, s domain.Subject) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO subjects (user_id, name, goal_hours, created_at)
		 VALUES (?, ?, ?, ?)`,
		userID, s.Name, s.GoalHours, s.CreatedAt.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListSubjects returns all subjects ordered by creation time.
func (d *DB) ListSubjects(userID string) ([]domain.Subject, error) {
	rows, err := d.db.Query(
		`SELECT name, goal_hours, created_at FROM subjects
		 WHERE user_id = ? ORDER BY created_at ASC, name ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		var createdAt int64
		if err := rows.Scan(&s.Name, &s.GoalHours, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt = time.Unix(createdAt, 0)
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// DeleteSubject removes a subject. Sessions referencing it are kept.
func (d *DB) DeleteSubject(userID, name string) error {
	_, err := d.db.Exec(
		`DELETE FROM subjects WHERE user_id = ? AND name = ?`, userID, name,
	)
	return err
}
