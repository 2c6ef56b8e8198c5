package sqlite

import (
	"time"

	"github.com/memoir-app/memoir/internal/domain"
)

// ─── Badges ─────────────────────────────────────────────────────────────────

// UnlockBadge records a badge as earned. Returns false if already
// earned (idempotent).
func (d *DB) UnlockBadge(userID, id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO badges (user_id, id, earned_at) VALUES (?, ?, ?)`,
		userID, id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly earned
}

// IsBadgeEarned checks whether a badge has been earned.
func (d *DB) IsBadgeEarned(userID, id string) (bool, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM badges WHERE user_id = ? AND id = ?`, userID, id,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListEarnedBadges returns all earned badges, newest first.
func (d *DB) ListEarnedBadges(userID string) ([]domain.EarnedBadge, error) {
	rows, err := d.db.Query(
		`SELECT id, earned_at FROM badges WHERE user_id = ? ORDER BY earned_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.EarnedBadge
	for rows.Next() {
		var b domain.EarnedBadge
		var earnedAt int64
		if err := rows.Scan(&b.ID, &earnedAt); err != nil {
			return nil, err
		}
		b.EarnedAt = time.Unix(earnedAt, 0)
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// EarnedBadgeCount returns the total number of earned badges.
func (d *DB) EarnedBadgeCount(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM badges WHERE user_id = ?`, userID,
	).Scan(&count)
	return count, err
}
