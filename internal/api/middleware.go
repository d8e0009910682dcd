package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ledhub/ledhub-core/internal/auth"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	sessionKey   contextKey = "session"
	userKey      contextKey = "user"
)

// maxBodySize caps request bodies. Forms and device reports are tiny;
// anything larger is abuse.
const maxBodySize = 64 * 1024

// requestIDMiddleware assigns each request a UUID for log correlation.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// loggingMiddleware logs each request with method, path, status, and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", r.Context().Value(requestIDKey))
	})
}

// recoveryMiddleware converts handler panics into 500 responses.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic",
					"path", r.URL.Path,
					"panic", rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// bodySizeLimitMiddleware rejects oversized request bodies.
func bodySizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		next.ServeHTTP(w, r)
	})
}

// requireSession resolves the session cookie to a user and stores both
// on the request context. Requests without a valid session are
// redirected to the login page.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, user, err := s.currentUser(r)
		if err != nil {
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		ctx = context.WithValue(ctx, userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin allows only admin-role users through. Non-admins get a
// flash message and a redirect to the home page. Must run after
// requireSession.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := sessionUser(r)
		if user == nil || !user.IsAdmin() {
			setFlash(w, "Only admins can access this page")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser resolves the session cookie to its session row and user.
func (s *Server) currentUser(r *http.Request) (*auth.Session, *auth.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, nil, auth.ErrSessionInvalid
	}

	sid, err := s.signer.Verify(cookie.Value)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Get(r.Context(), sid)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByUsername(r.Context(), session.Username)
	if err != nil {
		return nil, nil, auth.ErrSessionInvalid
	}

	return session, user, nil
}

// sessionUser returns the authenticated user stored by requireSession,
// nil when absent.
func sessionUser(r *http.Request) *auth.User {
	user, _ := r.Context().Value(userKey).(*auth.User)
	return user
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
