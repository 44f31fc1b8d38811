package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/diet-tracker/internal/apperror"
	"github.com/sakif/diet-tracker/internal/model"
	"github.com/sakif/diet-tracker/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user.
//
// The caller (UserService) is responsible for generating the session token;
// this method only generates the record ID and timestamp. Users are written
// exactly once — there is no update or delete path for accounts.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, session_token, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.SessionToken,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, session_token, created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID,
		&u.Username,
		&u.SessionToken,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}

// GetBySessionToken resolves a session token to the user who owns it.
//
// This is the authentication lookup: the middleware calls it with the raw
// cookie value on every protected request. A token that matches no row means
// the request is unauthenticated — reported as apperror.Unauthorized, NOT as
// NotFound, because the two must stay distinguishable (401 vs 404) all the
// way up to the HTTP layer.
//
// The result is never cached: each request pays for its own lookup so that
// an identity can't leak from one request into another.
func (db *DB) GetBySessionToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperror.Unauthorized("valid session required")
	}

	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, session_token, created_at
		 FROM users WHERE session_token = ?`,
		token,
	).Scan(
		&u.ID,
		&u.Username,
		&u.SessionToken,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.Unauthorized("valid session required")
		}
		return nil, fmt.Errorf("sqlite: resolving session token: %w", err)
	}

	return &u, nil
}
