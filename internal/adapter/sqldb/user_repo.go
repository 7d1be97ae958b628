package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthhub/internal/domain"
)

var ErrDuplicateUser = errors.New("user already exists")

type userRow struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	err := d.db.GetContext(ctx, &row,
		"SELECT id, username, created_at FROM users WHERE username = $1", username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: row.ID, Username: row.Username, CreatedAt: row.CreatedAt}, nil
}

// Create creates a new user, seeding the demo data set when enabled.
func (d *DB) Create(ctx context.Context, username string) (*domain.User, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	u := &domain.User{Username: username, CreatedAt: time.Now().UTC()}
	err = tx.QueryRowxContext(ctx,
		"INSERT INTO users (username, created_at) VALUES ($1, $2) RETURNING id",
		username, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		// Works for both SQLite and PostgreSQL.
		msg := err.Error()
		if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	if d.seed {
		if err := seedUser(ctx, tx, u.ID, domain.DemoDataSet()); err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return u, nil
}
