package store

import (
	"context"
	"database/sql"
	"fmt"

	"autoparts-service/internal/models"

	"github.com/google/uuid"
)

// GetUserByUsername retrieves a staff account by username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a staff account. Fails on duplicate username.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.New().String()

	query := `
		INSERT INTO users (id, username, password_hash, role, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	row := s.db.QueryRowxContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Role, user.Active)
	return row.Scan(&user.CreatedAt)
}

// CountUsers returns the number of staff accounts
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users")
	return count, err
}
