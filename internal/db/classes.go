package db

import (
	"fmt"
	"time"
)

type ClassRecord struct {
	ID        string
	Name      string
	Code      string
	TeacherID string
	CreatedAt time.Time
}

// RosterEntry is one student row on the teacher dashboard, joined with the
// member's current rollup (zero stats when the member has not practiced).
type RosterEntry struct {
	UserID           string
	Name             string
	AverageWPM       float64
	AverageAccuracy  float64
	LessonsCompleted int
	BadgeLevel       int
	JoinedAt         time.Time
}

func (d *DB) CreateClass(name, code, teacherID string) (*ClassRecord, error) {
	c := ClassRecord{Name: name, Code: code, TeacherID: teacherID}
	err := d.conn.QueryRow(`
		INSERT INTO classes (name, code, teacher_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, name, code, teacherID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating class: %w", err)
	}
	return &c, nil
}

func (d *DB) GetClass(id string) (*ClassRecord, error) {
	var c ClassRecord
	err := d.conn.QueryRow(`
		SELECT id, name, code, teacher_id, created_at FROM classes WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting class: %w", err)
	}
	return &c, nil
}

func (d *DB) GetClassByCode(code string) (*ClassRecord, error) {
	var c ClassRecord
	err := d.conn.QueryRow(`
		SELECT id, name, code, teacher_id, created_at FROM classes WHERE code = $1
	`, code).Scan(&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting class by code: %w", err)
	}
	return &c, nil
}

func (d *DB) ListClassesByTeacher(teacherID string) ([]ClassRecord, error) {
	rows, err := d.conn.Query(`
		SELECT id, name, code, teacher_id, created_at FROM classes
		WHERE teacher_id = $1 ORDER BY created_at
	`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	defer rows.Close()

	var classes []ClassRecord
	for rows.Next() {
		var c ClassRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.TeacherID, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// AddClassMember is insert-or-ignore; joining twice is a no-op.
func (d *DB) AddClassMember(classID, userID string) (bool, error) {
	res, err := d.conn.Exec(`
		INSERT INTO class_members (class_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (class_id, user_id) DO NOTHING
	`, classID, userID)
	if err != nil {
		return false, fmt.Errorf("adding class member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adding class member: %w", err)
	}
	return n > 0, nil
}

func (d *DB) GetClassRoster(classID string) ([]RosterEntry, error) {
	rows, err := d.conn.Query(`
		SELECT u.id, u.name,
			COALESCE(s.average_wpm, 0),
			COALESCE(s.average_accuracy, 0),
			COALESCE(s.lessons_completed, 0),
			COALESCE(s.current_badge_level, 0),
			cm.joined_at
		FROM class_members cm
		JOIN users u ON u.id = cm.user_id
		LEFT JOIN user_stats s ON s.user_id = cm.user_id
		WHERE cm.class_id = $1
		ORDER BY u.name
	`, classID)
	if err != nil {
		return nil, fmt.Errorf("getting class roster: %w", err)
	}
	defer rows.Close()

	var roster []RosterEntry
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.AverageWPM, &e.AverageAccuracy,
			&e.LessonsCompleted, &e.BadgeLevel, &e.JoinedAt); err != nil {
			return nil, err
		}
		roster = append(roster, e)
	}
	return roster, rows.Err()
}
