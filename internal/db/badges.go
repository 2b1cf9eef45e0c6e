package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type EarnedBadge struct {
	UserID   string
	Level    int
	EarnedAt time.Time
}

// AwardBadge inserts a ledger row for (user, level) unless one exists.
// Returns true only when the row is new; re-earning a level never touches
// the original earned_at.
func (d *DB) AwardBadge(userID string, level int) (bool, error) {
	res, err := d.conn.Exec(`
		INSERT INTO user_badges (user_id, badge_level)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_level) DO NOTHING
	`, userID, level)
	if err != nil {
		return false, fmt.Errorf("awarding badge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("awarding badge: %w", err)
	}
	return n > 0, nil
}

func (d *DB) GetUserBadges(userID string) ([]EarnedBadge, error) {
	rows, err := d.conn.Query(`
		SELECT badge_level, earned_at FROM user_badges
		WHERE user_id = $1 ORDER BY badge_level
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("getting badges: %w", err)
	}
	defer rows.Close()

	var badges []EarnedBadge
	for rows.Next() {
		b := EarnedBadge{UserID: userID}
		if err := rows.Scan(&b.Level, &b.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// GetBadgeEarnedAt returns nil without error when the level was never earned.
func (d *DB) GetBadgeEarnedAt(userID string, level int) (*time.Time, error) {
	var earnedAt time.Time
	err := d.conn.QueryRow(`
		SELECT earned_at FROM user_badges WHERE user_id = $1 AND badge_level = $2
	`, userID, level).Scan(&earnedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting badge earned_at: %w", err)
	}
	return &earnedAt, nil
}
