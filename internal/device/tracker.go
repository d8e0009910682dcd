package device

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Tracker holds the in-memory LED state: the command set through the web
// UI and the state last reported by the microcontroller. A single mutex
// guards both so concurrent handlers always see a consistent pair.
type Tracker struct {
	mu        sync.Mutex
	commanded Status
	reported  Status
	history   HistoryRepository
	now       func() time.Time
}

// NewTracker creates a tracker with the LED commanded off and the
// reported state unknown until the microcontroller first checks in.
func NewTracker(history HistoryRepository) *Tracker {
	return &Tracker{
		commanded: StatusOff,
		reported:  StatusUnknown,
		history:   history,
		now:       time.Now,
	}
}

// Command returns the currently commanded state.
func (t *Tracker) Command() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.commanded
}

// Reported returns the state last confirmed by the microcontroller,
// StatusUnknown if it has never reported.
func (t *Tracker) Reported() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reported
}

// SetCommand updates the commanded state from a raw web UI value.
// Commands are case-insensitive; the stored value is normalized.
//
// Returns:
//   - Status: The normalized command
//   - error: ErrInvalidCommand if the value is not on/off
func (t *Tracker) SetCommand(raw string) (Status, error) {
	status, err := ParseCommand(raw)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	t.commanded = status
	t.mu.Unlock()

	return status, nil
}

// Report processes a status report from the microcontroller. When the
// report differs from the last reported state the change is written to
// history first; the in-memory state only advances after the write
// succeeds, so a storage failure leaves the change pending and the next
// identical report retries it.
//
// Returns:
//   - Status: The accepted report
//   - error: ErrInvalidStatus for malformed reports, storage errors otherwise
func (t *Tracker) Report(ctx context.Context, raw string) (Status, error) {
	status, err := ParseReport(raw)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if status == t.reported {
		return status, nil
	}

	if err := t.history.Record(ctx, t.now(), status); err != nil {
		return "", fmt.Errorf("recording status change: %w", err)
	}
	t.reported = status

	return status, nil
}
