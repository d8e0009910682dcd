package device

import "errors"

var (
	// ErrInvalidCommand is returned when a command is neither ON nor OFF
	// (after case normalization).
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidStatus is returned when a reported status is not exactly
	// ON or OFF.
	ErrInvalidStatus = errors.New("invalid status")
)
