package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ledhub/ledhub-core/internal/infrastructure/config"
)

// Logger wraps slog.Logger for LED Hub. Every record carries the service
// name and build version; subsystems tag themselves with With so log
// lines from the API, device tracker, and storage are distinguishable.
//
// Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// serviceName appears on every log record.
const serviceName = "ledhub"

// New builds a logger from the logging section of the configuration.
//
// Parameters:
//   - cfg: Logging configuration (level, format, output)
//   - version: Build version, stamped on every record
//
// Returns:
//   - *Logger: Configured logger
func New(cfg config.LoggingConfig, version string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	out := selectOutput(cfg.Output)

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
		slog.String("version", version),
	})

	return &Logger{Logger: slog.New(handler)}
}

func selectOutput(output string) io.Writer {
	if strings.EqualFold(output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

// parseLevel maps a config level string to slog.Level, defaulting to
// info for anything unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger carrying additional default attributes,
// typically a component tag:
//
//	apiLogger := logger.With("component", "api")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default returns a bootstrap logger for the window before configuration
// is loaded: JSON to stdout at info level.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
