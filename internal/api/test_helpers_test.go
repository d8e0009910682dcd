package api

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ledhub/ledhub-core/internal/auth"
	"github.com/ledhub/ledhub-core/internal/device"
	"github.com/ledhub/ledhub-core/internal/infrastructure/config"
	"github.com/ledhub/ledhub-core/internal/infrastructure/logging"
	"github.com/ledhub/ledhub-core/internal/webui"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testServer bundles a fully wired Server with direct repository access
// for test setup.
type testServer struct {
	srv      *Server
	handler  http.Handler
	users    *auth.UserRepository
	sessions *auth.SessionRepository
	history  *device.SQLiteHistoryRepository
	tracker  *device.Tracker
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api_test.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			id          TEXT PRIMARY KEY,
			username    TEXT NOT NULL UNIQUE,
			password    TEXT NOT NULL,
			role        TEXT NOT NULL DEFAULT 'user'
			            CHECK (role IN ('user', 'admin')),
			created_at  TEXT NOT NULL DEFAULT (datetime('now'))
		);
		CREATE TABLE sessions (
			id          TEXT PRIMARY KEY,
			username    TEXT NOT NULL,
			created_at  TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
		);
		CREATE TABLE led_history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   TEXT NOT NULL,
			status      TEXT NOT NULL CHECK (status IN ('ON', 'OFF'))
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	cfg := &config.Config{
		API: config.APIConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Timeouts: config.APITimeoutConfig{
				Read: 5, Write: 5, Idle: 10,
			},
		},
		Logging:  config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"},
		Security: config.SecurityConfig{SessionSecret: testSecret},
	}

	users := auth.NewUserRepository(db)
	sessions := auth.NewSessionRepository(db)
	history := device.NewSQLiteHistoryRepository(db)
	tracker := device.NewTracker(history)

	renderer, err := webui.NewRenderer()
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}

	srv, err := New(Deps{
		Config:   cfg,
		Logger:   logging.New(cfg.Logging, "test"),
		Users:    users,
		Sessions: sessions,
		Signer:   auth.NewTokenSigner(cfg.Security.SessionSecret),
		Tracker:  tracker,
		History:  history,
		Renderer: renderer,
	})
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	return &testServer{
		srv:      srv,
		handler:  srv.buildRouter(),
		users:    users,
		sessions: sessions,
		history:  history,
		tracker:  tracker,
	}
}

// createUser adds an account directly through the repository.
func (ts *testServer) createUser(t *testing.T, username, password string, role auth.Role) {
	t.Helper()
	if _, err := ts.users.Create(context.Background(), username, password, role); err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
}

// login performs the login form POST and returns the session cookie.
func (ts *testServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	ts.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login for %s: status %d, want %d", username, rec.Code, http.StatusSeeOther)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("login for %s set no session cookie", username)
	return nil
}

// get issues a GET request with optional cookies.
func (ts *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// postForm issues a form POST with optional cookies.
func (ts *testServer) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// postJSON issues a JSON POST.
func (ts *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// flashCookie extracts the flash cookie from a response, nil when absent.
func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}
