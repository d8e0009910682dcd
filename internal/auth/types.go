package auth

import (
	"errors"
	"fmt"
	"time"
)

// Role determines what a user is allowed to do.
type Role string

const (
	// RoleUser can control the LED and view history.
	RoleUser Role = "user"
	// RoleAdmin can additionally manage user accounts.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account that can sign in to LED Hub.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is a server-side login session. The browser holds a signed
// token carrying the session id; the row here is the source of truth.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

const (
	minUsernameLength = 1
	maxUsernameLength = 20
	minPasswordLength = 1
)

// Sentinel errors for authentication and account management.
var (
	// ErrInvalidCredentials is returned when a username/password pair does
	// not match. Callers must not reveal which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when creating a user with a taken username.
	ErrUsernameExists = errors.New("username already exists")

	// ErrAdminUndeletable is returned when attempting to delete the
	// built-in admin account.
	ErrAdminUndeletable = errors.New("admin account cannot be deleted")

	// ErrSessionInvalid is returned when a session token is missing,
	// malformed, or no longer backed by a session row.
	ErrSessionInvalid = errors.New("session invalid")
)

// ValidateUsername checks username length constraints.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters",
			minUsernameLength, maxUsernameLength)
	}
	return nil
}

// ValidatePassword checks that a password is present.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must not be empty")
	}
	return nil
}
