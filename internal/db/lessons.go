package db

import (
	"fmt"
	"time"
)

type LessonRecord struct {
	ID        string
	Title     string
	Level     int
	Body      string
	CreatedAt time.Time
}

func (d *DB) ListLessons() ([]LessonRecord, error) {
	rows, err := d.conn.Query(`
		SELECT id, title, level, body, created_at FROM lessons ORDER BY level, title
	`)
	if err != nil {
		return nil, fmt.Errorf("listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []LessonRecord
	for rows.Next() {
		var l LessonRecord
		if err := rows.Scan(&l.ID, &l.Title, &l.Level, &l.Body, &l.CreatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (d *DB) GetLesson(id string) (*LessonRecord, error) {
	var l LessonRecord
	err := d.conn.QueryRow(`
		SELECT id, title, level, body, created_at FROM lessons WHERE id = $1
	`, id).Scan(&l.ID, &l.Title, &l.Level, &l.Body, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting lesson: %w", err)
	}
	return &l, nil
}

func (d *DB) CreateLesson(title string, level int, body string) (string, error) {
	var id string
	err := d.conn.QueryRow(`
		INSERT INTO lessons (title, level, body)
		VALUES ($1, $2, $3)
		RETURNING id
	`, title, level, body).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating lesson: %w", err)
	}
	return id, nil
}
