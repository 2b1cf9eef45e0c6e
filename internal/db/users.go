package db

import (
	"fmt"
	"time"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type UserRecord struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

func (d *DB) CreateUser(email, name, passwordHash, role string) (string, error) {
	var id string
	err := d.conn.QueryRow(`
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, email, name, passwordHash, role).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}
	return id, nil
}

func (d *DB) GetUser(id string) (*UserRecord, error) {
	var u UserRecord
	err := d.conn.QueryRow(`
		SELECT id, email, name, password_hash, role, created_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &u, nil
}

func (d *DB) GetUserByEmail(email string) (*UserRecord, error) {
	var u UserRecord
	err := d.conn.QueryRow(`
		SELECT id, email, name, password_hash, role, created_at FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return &u, nil
}
