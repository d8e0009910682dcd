package device

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// historyCap is the maximum number of retained history entries.
const historyCap = 100

// SQLiteHistoryRepository stores LED status history in SQLite.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteHistoryRepository creates a history repository backed by the
// given database.
func NewSQLiteHistoryRepository(db *sql.DB) *SQLiteHistoryRepository {
	return &SQLiteHistoryRepository{db: db}
}

// Record inserts a status change and evicts the oldest entries beyond
// the cap, both inside a single transaction. Eviction removes the
// entries with the earliest timestamps, oldest insertion first among
// ties, so the log keeps the most recent 100 changes.
func (r *SQLiteHistoryRepository) Record(ctx context.Context, at time.Time, status Status) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO led_history (timestamp, status) VALUES (?, ?)",
		FormatHistoryTime(at), string(status))
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM led_history WHERE id IN (
			SELECT id FROM led_history
			ORDER BY timestamp ASC, id ASC
			LIMIT max(0, (SELECT COUNT(*) FROM led_history) - ?)
		)`, historyCap)
	if err != nil {
		return fmt.Errorf("evicting old history entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history transaction: %w", err)
	}
	return nil
}

// Recent returns all retained entries, newest first.
func (r *SQLiteHistoryRepository) Recent(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, status FROM led_history
		ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var status string
		if err := rows.Scan(&e.ID, &e.Timestamp, &status); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Status = Status(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}
