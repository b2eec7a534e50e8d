package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, created_at`

// CreateUser inserts a user; a taken username yields ErrDuplicateUsername
func (r *SQLRepo) CreateUser(ctx context.Context, user model.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		user.UserID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("repository: create user %s: %w", user.Username, auctionerrors.ErrDuplicateUsername)
		}
		return fmt.Errorf("repository: create user %s: %w", user.Username, err)
	}
	return nil
}

func (r *SQLRepo) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	return r.getUser(ctx, "id", userID)
}

func (r *SQLRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getUser(ctx, "username", username)
}

func (r *SQLRepo) getUser(ctx context.Context, column, value string) (model.User, error) {
	var user model.User
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`)
	err := r.db.GetContext(ctx, &user, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("repository: get user by %s %s: %w", column, value, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("repository: get user by %s %s: %w", column, value, err)
	}
	return user, nil
}

// ListUsers returns every account ordered by username
func (r *SQLRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("repository: list users: %w", err)
	}
	return users, nil
}

func (r *SQLRepo) CreateSession(ctx context.Context, session model.Session) error {
	query := r.db.Rebind(`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, session.SessionID, session.UserID, session.CreatedAt, session.ExpiresAt); err != nil {
		return fmt.Errorf("repository: create session for user %s: %w", session.UserID, err)
	}
	return nil
}

func (r *SQLRepo) GetSession(ctx context.Context, sessionID string) (model.Session, error) {
	var session model.Session
	query := r.db.Rebind(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`)
	err := r.db.GetContext(ctx, &session, query, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, fmt.Errorf("repository: get session: %w", auctionerrors.ErrSessionNotFound)
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("repository: get session: %w", err)
	}
	return session, nil
}

// RevokeSession marks a session as revoked; revoking twice keeps the first timestamp
func (r *SQLRepo) RevokeSession(ctx context.Context, sessionID string) error {
	query := r.db.Rebind(`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`)
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), sessionID); err != nil {
		return fmt.Errorf("repository: revoke session: %w", err)
	}
	return nil
}
