package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRepository persists login sessions in SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a session repository backed by the given database.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create opens a new session for a user and returns it.
func (r *SessionRepository) Create(ctx context.Context, username string) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, username, created_at)
		VALUES (?, ?, ?)`,
		session.ID, session.Username, session.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}

	return session, nil
}

// Get retrieves a session by id.
// Returns ErrSessionInvalid if the session does not exist.
func (r *SessionRepository) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	var createdAt string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, created_at
		FROM sessions WHERE id = ?`, id).
		Scan(&session.ID, &session.Username, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		session.CreatedAt = t
	}

	return &session, nil
}

// Delete removes a session, logging the user out. Deleting a session
// that no longer exists is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteForUser removes all sessions belonging to a user.
func (r *SessionRepository) DeleteForUser(ctx context.Context, username string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE username = ?", username); err != nil {
		return fmt.Errorf("deleting user sessions: %w", err)
	}
	return nil
}
