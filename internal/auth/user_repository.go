package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// UserRepository persists user accounts in SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user repository backed by the given database.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user with a hashed password.
//
// Parameters:
//   - ctx: Context for cancellation
//   - username: Unique username (1-20 characters)
//   - password: Plain-text password, hashed before storage
//   - role: Account role (user or admin)
//
// Returns:
//   - *User: The created user with generated ID
//   - error: ErrUsernameExists if the username is taken, validation errors otherwise
func (r *UserRepository) Create(ctx context.Context, username, password string, role Role) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, string(user.Role),
		user.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username.
// Returns ErrUserNotFound if no such user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, username, password, role, created_at
		FROM users WHERE username = ?`, username))
}

// List returns all users ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, password, role, created_at
		FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// Authenticate verifies a username/password pair.
// Returns ErrInvalidCredentials for both unknown usernames and wrong
// passwords so callers cannot distinguish the two.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// UpdatePassword replaces a user's password hash.
//
// Returns:
//   - error: ErrUserNotFound if the user does not exist
func (r *UserRepository) UpdatePassword(ctx context.Context, username, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET password = ? WHERE username = ?", hash, username)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user account. Accounts holding the admin role are
// protected and cannot be deleted, whatever their username.
//
// Returns:
//   - error: ErrAdminUndeletable for admin-role accounts,
//     ErrUserNotFound if no such user exists
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.Role == RoleAdmin {
		return ErrAdminUndeletable
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CountByRole returns the number of users holding the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role Role) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role = ?", string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanOne(row *sql.Row) (*User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row rowScanner) (*User, error) {
	var user User
	var role, createdAt string

	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &role, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	user.Role = Role(role)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		user.CreatedAt = t
	}

	return &user, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
