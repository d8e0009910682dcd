// Package logging provides structured logging for LED Hub.
//
// It wraps the standard library's log/slog with configuration-driven
// level filtering, output format selection, and default service fields.
package logging
