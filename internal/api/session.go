package api

import (
	"errors"
	"net/http"

	"github.com/ledhub/ledhub-core/internal/auth"
	"github.com/ledhub/ledhub-core/internal/webui"
)

const sessionCookieName = "ledhub_session"

// loginFailedMessage is shown for both unknown usernames and wrong
// passwords so the form never reveals which accounts exist.
const loginFailedMessage = "Invalid username or password"

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// handleLoginPage renders the login form. Users with a live session are
// sent straight to the home page.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, _, err := s.currentUser(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.renderLogin(w, r, takeFlash(w, r))
}

// handleLogin processes the login form.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := s.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Info("login rejected", "username", username)
			s.renderLogin(w, r, loginFailedMessage)
			return
		}
		s.writeServerError(w, r, err)
		return
	}

	session, err := s.sessions.Create(r.Context(), user.Username)
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}

	token, err := s.signer.Sign(session.ID)
	if err != nil {
		s.writeServerError(w, r, err)
		return
	}

	setSessionCookie(w, token)
	s.logger.Info("user logged in", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout ends the session if one exists and always lands on the
// login page.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if session, _, err := s.currentUser(r); err == nil {
		if err := s.sessions.Delete(r.Context(), session.ID); err != nil {
			s.logger.Error("deleting session", "error", err)
		}
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleChangePasswordPage renders the password change form.
func (s *Server) handleChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "change_password", "Change Password", nil)
}

// handleChangePassword processes the password change form.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user := sessionUser(r)
	oldPassword := r.PostFormValue("old_password")
	newPassword := r.PostFormValue("new_password")
	confirmPassword := r.PostFormValue("confirm_password")

	if newPassword != confirmPassword {
		setFlash(w, "New password and confirmation do not match")
		http.Redirect(w, r, "/change-password", http.StatusSeeOther)
		return
	}

	if _, err := s.users.Authenticate(r.Context(), user.Username, oldPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			setFlash(w, "Current password is incorrect")
			http.Redirect(w, r, "/change-password", http.StatusSeeOther)
			return
		}
		s.writeServerError(w, r, err)
		return
	}

	if err := s.users.UpdatePassword(r.Context(), user.Username, newPassword); err != nil {
		s.writeServerError(w, r, err)
		return
	}

	s.logger.Info("password changed", "username", user.Username)
	setFlash(w, "Password changed successfully")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderLogin renders the login page with an optional flash message.
func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, flash string) {
	data := webui.PageData{Title: "Login", Flash: flash}
	if err := s.renderer.Render(w, "login", data); err != nil {
		s.writeServerError(w, r, err)
	}
}

// renderPage renders a session-gated page with the signed-in user's
// navigation and any pending flash message.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	user := sessionUser(r)

	pd := webui.PageData{
		Title: title,
		Flash: takeFlash(w, r),
		Data:  data,
	}
	if user != nil {
		pd.Username = user.Username
		pd.IsAdmin = user.IsAdmin()
	}

	if err := s.renderer.Render(w, page, pd); err != nil {
		s.writeServerError(w, r, err)
	}
}
