package store

import (
	"context"
	"fmt"

	"github.com/m3rciful/petshop/internal/model"
)

// UpsertUser records a user on first contact. Later calls for the same id change nothing.
func (s *Store) UpsertUser(ctx context.Context, u model.User) error {
	_, err := s.db.ExecContext(ctx,
		s.q(`INSERT INTO users (id, username, first_name, last_name) VALUES (?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`),
		u.ID, u.Username, u.FirstName, u.LastName,
	)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", u.ID, err)
	}
	return nil
}

// GetUser returns the user or nil when unknown.
func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	ok, err := s.getOne(ctx, &u, `SELECT id, username, first_name, last_name, joined_at FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// CountUsers returns the number of known users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.q(`SELECT COUNT(*) FROM users`)); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
