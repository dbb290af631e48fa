package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"drugdex/m/domain"
)

// CreateUser inserts an operator account and sets its ID.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?)`,
		user.Username, user.Email, user.Password, user.Role)
	if err != nil {
		return fmt.Errorf("inserting user %q: %w", user.Email, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetUserByEmail returns the account for a login attempt, password included.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, username, email, password, role, created_at FROM users WHERE email = ?`,
		email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("loading user %q: %w", email, err)
	}
	return user, nil
}
