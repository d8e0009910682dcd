package auth

import (
	"context"
	"fmt"
)

// Default admin credentials created on first start. The password is
// intentionally weak so operators are forced to change it; a warning is
// logged every time the account is created.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "12345678"
)

// SeedDefaultAdmin creates the default admin account when no admin-role
// user exists yet. It is safe to call on every startup.
//
// Returns:
//   - bool: true if the account was created this call
//   - error: If the check or insert fails
func SeedDefaultAdmin(ctx context.Context, users *UserRepository) (bool, error) {
	count, err := users.CountByRole(ctx, RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("counting admin users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := users.Create(ctx, DefaultAdminUsername, DefaultAdminPassword, RoleAdmin); err != nil {
		return false, fmt.Errorf("creating default admin: %w", err)
	}

	return true, nil
}
