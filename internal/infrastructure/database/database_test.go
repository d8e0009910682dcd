package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ledhub/ledhub-core/internal/infrastructure/config"
)

func testConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		DSN:         filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "plain path", dsn: "/var/lib/ledhub/hub.db", want: "/var/lib/ledhub/hub.db"},
		{name: "relative path", dsn: "./data/hub.db", want: "./data/hub.db"},
		{name: "sqlite scheme", dsn: "sqlite:///var/lib/ledhub/hub.db", want: "/var/lib/ledhub/hub.db"},
		{name: "sqlite3 scheme", dsn: "sqlite3:///tmp/hub.db", want: "/tmp/hub.db"},
		{name: "file uri", dsn: "file:/tmp/hub.db", want: "/tmp/hub.db"},
		{name: "empty", dsn: "", wantErr: true},
		{name: "scheme only", dsn: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeDSN(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Errorf("normalizeDSN(%q) = %q, want error", tt.dsn, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeDSN(%q): %v", tt.dsn, err)
			}
			if got != tt.want {
				t.Errorf("normalizeDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestOpen_CreatesDatabase(t *testing.T) {
	db, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
}

func TestOpen_LegacyScheme(t *testing.T) {
	cfg := config.DatabaseConfig{
		DSN:         "sqlite://" + filepath.Join(t.TempDir(), "legacy.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open with legacy scheme: %v", err)
	}
	defer db.Close()
}

