package auth

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the auth schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "auth_test.db")
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
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	return db
}

// mustCreateUser creates a user or fails the test.
func mustCreateUser(t *testing.T, repo *UserRepository, username, password string, role Role) *User {
	t.Helper()

	user, err := repo.Create(context.Background(), username, password, role)
	if err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return user
}
