package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PracticeAttempt is one entry in the append-only practice log. UserID is
// nil for anonymous attempts; those never feed stats or badges.
type PracticeAttempt struct {
	ID          string
	UserID      *string
	LessonID    string
	WPM         float64
	Accuracy    float64
	Completed   bool
	IsAnonymous bool
	OccurredAt  time.Time
}

func (d *DB) RecordAttempt(a PracticeAttempt) (string, error) {
	var id string
	err := d.conn.QueryRow(`
		INSERT INTO practice_attempts (user_id, lesson_id, wpm, accuracy, completed, is_anonymous, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, a.UserID, a.LessonID, a.WPM, a.Accuracy, a.Completed, a.IsAnonymous, a.OccurredAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("recording attempt: %w", err)
	}
	return id, nil
}

// BatchRecordAttempts writes buffered anonymous attempts in one transaction.
func (d *DB) BatchRecordAttempts(attempts []PracticeAttempt) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO practice_attempts (id, user_id, lesson_id, wpm, accuracy, completed, is_anonymous, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range attempts {
		id := a.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.Exec(id, a.UserID, a.LessonID, a.WPM, a.Accuracy, a.Completed, a.IsAnonymous, a.OccurredAt); err != nil {
			return fmt.Errorf("recording attempt in batch: %w", err)
		}
	}

	return tx.Commit()
}

func (d *DB) ListUserAttempts(userID string, limit int) ([]PracticeAttempt, error) {
	rows, err := d.conn.Query(`
		SELECT id, user_id, lesson_id, wpm, accuracy, completed, is_anonymous, occurred_at
		FROM practice_attempts
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	defer rows.Close()

	var attempts []PracticeAttempt
	for rows.Next() {
		var a PracticeAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.LessonID, &a.WPM, &a.Accuracy, &a.Completed, &a.IsAnonymous, &a.OccurredAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
