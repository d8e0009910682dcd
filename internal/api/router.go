package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter wires all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(bodySizeLimitMiddleware)

	// Device endpoints: the microcontroller polls these, no session.
	r.Get("/set-command/{cmd}", s.handleSetCommand)
	r.Get("/get-command", s.handleGetCommand)
	r.Post("/report-status", s.handleReportStatus)
	r.Get("/get-real-status", s.handleGetRealStatus)

	r.Get("/healthz", s.handleHealthz)

	// Login and logout live outside the session gate.
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)

	// Pages behind the session gate.
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/", s.handleIndex)
		r.Get("/history", s.handleHistory)
		r.Get("/change-password", s.handleChangePasswordPage)
		r.Post("/change-password", s.handleChangePassword)

		// Admin-only user management.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/manage-users", s.handleManageUsersPage)
			r.Post("/manage-users", s.handleManageUsers)
		})
	})

	return r
}
