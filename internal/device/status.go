package device

import "strings"

// Status is an LED state value.
type Status string

const (
	// StatusOn means the LED is (or should be) lit.
	StatusOn Status = "ON"
	// StatusOff means the LED is (or should be) dark.
	StatusOff Status = "OFF"
	// StatusUnknown is the reported state before the microcontroller has
	// confirmed anything. It never appears in commands or history.
	StatusUnknown Status = "UNKNOWN"
)

// ParseCommand normalizes a command from the web UI. Commands are
// case-insensitive: "on", "On", and "ON" all set the LED on.
//
// Returns:
//   - Status: StatusOn or StatusOff
//   - error: ErrInvalidCommand for anything else
func ParseCommand(raw string) (Status, error) {
	switch Status(strings.ToUpper(raw)) {
	case StatusOn:
		return StatusOn, nil
	case StatusOff:
		return StatusOff, nil
	default:
		return "", ErrInvalidCommand
	}
}

// ParseReport validates a status reported by the microcontroller.
// Reports are strict: only the exact strings "ON" and "OFF" are accepted.
//
// Returns:
//   - Status: StatusOn or StatusOff
//   - error: ErrInvalidStatus for anything else
func ParseReport(raw string) (Status, error) {
	switch Status(raw) {
	case StatusOn:
		return StatusOn, nil
	case StatusOff:
		return StatusOff, nil
	default:
		return "", ErrInvalidStatus
	}
}
