package api

import (
	"errors"
	"net/http"

	"github.com/ledhub/ledhub-core/internal/auth"
)

// userRow feeds the manage users template.
type userRow struct {
	Username string
	Role     string
}

// handleManageUsersPage renders the user administration page.
func (s *Server) handleManageUsersPage(w http.ResponseWriter, r *http.Request) {
	s.renderUserList(w, r)
}

// handleManageUsers dispatches the add/delete/update form actions.
func (s *Server) handleManageUsers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	switch r.PostFormValue("action") {
	case "add":
		s.addUser(w, r)
	case "delete":
		s.deleteUser(w, r)
	case "update":
		s.updateUserPassword(w, r)
	default:
		setFlash(w, "Unknown action")
	}

	http.Redirect(w, r, "/manage-users", http.StatusSeeOther)
}

// addUser creates a regular account. New accounts always get the user
// role; there is exactly one admin.
func (s *Server) addUser(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if _, err := s.users.Create(r.Context(), username, password, auth.RoleUser); err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			setFlash(w, "Username already exists")
			return
		}
		s.logger.Error("adding user", "username", username, "error", err)
		setFlash(w, "Could not add user: "+err.Error())
		return
	}

	s.logger.Info("user added", "username", username)
	setFlash(w, "User added successfully")
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")

	if err := s.users.Delete(r.Context(), username); err != nil {
		switch {
		case errors.Is(err, auth.ErrAdminUndeletable):
			setFlash(w, "The admin account cannot be deleted")
		case errors.Is(err, auth.ErrUserNotFound):
			setFlash(w, "User does not exist")
		default:
			s.logger.Error("deleting user", "username", username, "error", err)
			setFlash(w, "Could not delete user")
		}
		return
	}

	// Sessions cascade with the user row, so a deleted account is also
	// logged out everywhere.
	s.logger.Info("user deleted", "username", username)
	setFlash(w, "User deleted successfully")
}

func (s *Server) updateUserPassword(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if err := s.users.UpdatePassword(r.Context(), username, password); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			setFlash(w, "User does not exist")
			return
		}
		s.logger.Error("updating user password", "username", username, "error", err)
		setFlash(w, "Could not update password")
		return
	}

	s.logger.Info("user password reset", "username", username)
	setFlash(w, "Password updated successfully")
}

// renderUserList renders the manage users page with all accounts.
func (s *Server) renderUserList(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{Username: u.Username, Role: string(u.Role)})
	}

	s.renderPage(w, r, "manage_users", "Manage Users", rows)
}
