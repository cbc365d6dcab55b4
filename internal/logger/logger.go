package logger

import (
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init sets up the process-wide logger. Debug output is enabled by
// DEBUG=true or by the debug flag.
func Init(debug bool) {
	InitWithWriter(os.Stdout, debug || os.Getenv("DEBUG") == "true")
}

func InitWithWriter(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(Logger)
}

// Default returns l, or the process-wide logger when l is nil.
func Default(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return Logger
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
