package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UserStatsRecord mirrors the user_stats row. A missing row reads as zero
// stats; new accounts are never an error.
type UserStatsRecord struct {
	UserID            string
	AverageWPM        float64
	AverageAccuracy   float64
	LessonsCompleted  int
	LessonsAbove80    int
	LessonsAbove85    int
	LessonsAbove90    int
	LessonsAbove95    int
	LessonsAbove98    int
	CurrentBadgeLevel int
	UpdatedAt         time.Time
}

func (d *DB) UpsertUserStats(s UserStatsRecord) error {
	_, err := d.conn.Exec(`
		INSERT INTO user_stats (
			user_id, average_wpm, average_accuracy, lessons_completed,
			lessons_above_80, lessons_above_85, lessons_above_90,
			lessons_above_95, lessons_above_98, current_badge_level, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		ON CONFLICT (user_id) DO UPDATE SET
			average_wpm = $2, average_accuracy = $3, lessons_completed = $4,
			lessons_above_80 = $5, lessons_above_85 = $6, lessons_above_90 = $7,
			lessons_above_95 = $8, lessons_above_98 = $9,
			current_badge_level = $10, updated_at = now()
	`, s.UserID, s.AverageWPM, s.AverageAccuracy, s.LessonsCompleted,
		s.LessonsAbove80, s.LessonsAbove85, s.LessonsAbove90,
		s.LessonsAbove95, s.LessonsAbove98, s.CurrentBadgeLevel)
	if err != nil {
		return fmt.Errorf("upserting user stats: %w", err)
	}
	return nil
}

func (d *DB) GetUserStats(userID string) (UserStatsRecord, error) {
	s := UserStatsRecord{UserID: userID}
	err := d.conn.QueryRow(`
		SELECT average_wpm, average_accuracy, lessons_completed,
			lessons_above_80, lessons_above_85, lessons_above_90,
			lessons_above_95, lessons_above_98, current_badge_level, updated_at
		FROM user_stats WHERE user_id = $1
	`, userID).Scan(&s.AverageWPM, &s.AverageAccuracy, &s.LessonsCompleted,
		&s.LessonsAbove80, &s.LessonsAbove85, &s.LessonsAbove90,
		&s.LessonsAbove95, &s.LessonsAbove98, &s.CurrentBadgeLevel, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return UserStatsRecord{UserID: userID}, nil
	}
	if err != nil {
		return s, fmt.Errorf("getting user stats: %w", err)
	}
	return s, nil
}
