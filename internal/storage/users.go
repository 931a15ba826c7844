package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/flowstate/api/internal/models"
)

func (s *Store) CreateUser(user models.User) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO users (id, email, password_hash, name, avatar, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		user.ID, user.Email, user.PasswordHash, user.Name, user.Avatar, user.Bio,
		user.CreatedAt.Format(time.RFC3339), user.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(s.rebind(`
		SELECT id, email, password_hash, name, avatar, bio, created_at, updated_at
		FROM users WHERE id = ?`), id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(s.rebind(`
		SELECT id, email, password_hash, name, avatar, bio, created_at, updated_at
		FROM users WHERE email = ?`), email)
	return scanUser(row)
}

func (s *Store) CountUsers() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var createdAt, updatedAt string

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Avatar, &u.Bio, &createdAt, &updatedAt)
	if err != nil {
		return models.User{}, err
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	u.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return u, nil
}
