package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/ledhub/ledhub-core/internal/infrastructure/config"
)

// DB wraps the SQLite connection pool with LED Hub specific helpers.
type DB struct {
	conn *sql.DB
	cfg  config.DatabaseConfig
}

// Open creates a new database connection with the configured settings.
//
// The DSN may be a plain file path, a driver-qualified "file:" URI, or a
// legacy "sqlite://" / "sqlite3://" URL; the legacy schemes are rewritten
// to the driver-qualified form before opening. The parent directory is
// created if it does not exist.
//
// Parameters:
//   - cfg: Database configuration (DSN, WAL mode, busy timeout)
//
// Returns:
//   - *DB: Database handle ready for queries
//   - error: If the path is invalid or the connection cannot be established
func Open(cfg config.DatabaseConfig) (*DB, error) {
	path, err := normalizeDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("normalizing dsn: %w", err)
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Build connection string with pragmas
	connStr := buildConnString(path, cfg)

	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under concurrent handlers.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn, cfg: cfg}

	// Verify the connection actually works
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.HealthCheck(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	return db, nil
}

// normalizeDSN converts the configured DSN into a filesystem path for the
// sqlite3 driver. Legacy "sqlite://" and "sqlite3://" schemes are accepted
// so older deployment configs keep working.
func normalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("empty dsn")
	}

	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "sqlite3://"):
		dsn = strings.TrimPrefix(dsn, "sqlite3://")
	case strings.HasPrefix(dsn, "file:"):
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parsing file uri: %w", err)
		}
		if u.Opaque != "" {
			dsn = u.Opaque
		} else {
			dsn = u.Path
		}
	}

	if dsn == "" {
		return "", fmt.Errorf("dsn resolves to empty path")
	}
	return dsn, nil
}

// buildConnString appends driver pragmas to the database path.
func buildConnString(path string, cfg config.DatabaseConfig) string {
	params := []string{
		"_foreign_keys=on",
		fmt.Sprintf("_busy_timeout=%d", cfg.BusyTimeout*1000),
	}
	if cfg.WALMode {
		params = append(params, "_journal_mode=WAL")
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&"))
}

// Conn returns the underlying sql.DB for use by repositories.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// HealthCheck verifies the database is reachable and responsive.
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	var result int
	if err := db.conn.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("executing test query: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}
