package device

import (
	"context"
	"time"
)

// historyTimeLayout is the display format stored for each entry.
const historyTimeLayout = "2006-01-02 15:04:05"

// historyZone is the timezone history timestamps are rendered in.
// Defaults to Asia/Ho_Chi_Minh, falling back to UTC when tzdata is
// unavailable on the host.
var historyZone = loadHistoryZone()

func loadHistoryZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatHistoryTime renders a timestamp the way history entries store it.
func FormatHistoryTime(t time.Time) string {
	return t.In(historyZone).Format(historyTimeLayout)
}

// HistoryEntry is one confirmed LED status change.
type HistoryEntry struct {
	ID int64
	// Timestamp is the pre-rendered local time string, second precision.
	Timestamp string
	Status    Status
}

// HistoryRepository records and retrieves LED status changes.
type HistoryRepository interface {
	// Record appends a status change, evicting the oldest entries so the
	// log never exceeds its cap.
	Record(ctx context.Context, at time.Time, status Status) error

	// Recent returns all retained entries, newest first.
	Recent(ctx context.Context) ([]HistoryEntry, error)
}
