package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the global logger. It falls back to slog's default until Setup runs.
var Log = slog.Default()

// Setup initializes the global logger: JSON in production, text elsewhere
func Setup(env string) {
	SetupWriter(env, os.Stdout)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(env string, w io.Writer) {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// ForWorker returns a logger tagged with the acting worker
func ForWorker(workerID string) *slog.Logger {
	return Log.With(slog.String("user_id", workerID))
}

// Info logs an info message
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}
