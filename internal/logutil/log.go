// Package logutil installs the process-wide debug logger. Without
// --debug, logging is a discard handler so the hot draw/speech path
// never pays for string formatting; with --debug, it writes structured
// JSON lines to tdsr.log.
package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Init installs the debug logger, appending to path (tdsr.log when path is
// ""), when enabled is true; otherwise logging is discarded. Modeled on
// majorcontext-moat/internal/log/log.go's handler-selection pattern,
// simplified to a single file handler since tdsr is a one-shot foreground
// process rather than a long-lived multi-run daemon.
func Init(enabled bool, path string) error {
	if !enabled {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}
	if path == "" {
		path = "tdsr.log"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logutil: open log file: %w", err)
	}
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

func Debug(msg string, args ...any) { logger.Debug(msg, args...) }
func Info(msg string, args ...any)  { logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func Error(msg string, args ...any) { logger.Error(msg, args...) }
