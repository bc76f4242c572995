package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	once      sync.Once
	appLogger *slog.Logger
)

// GetLogger returns the process-wide logger. ENV_MODE=production switches
// the output to JSON, anything else writes human-readable text.
func GetLogger() *slog.Logger {
	once.Do(func() {
		level := slog.LevelInfo
		if os.Getenv("LOG_LEVEL") == "debug" {
			level = slog.LevelDebug
		}

		options := &slog.HandlerOptions{Level: level}

		var handler slog.Handler
		if os.Getenv("ENV_MODE") == "production" {
			handler = slog.NewJSONHandler(os.Stdout, options)
		} else {
			handler = slog.NewTextHandler(os.Stdout, options)
		}

		appLogger = slog.New(handler)
	})

	return appLogger
}
