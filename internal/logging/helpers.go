package logging

import (
	"context"
	"log/slog"
)

// The helpers below tolerate a nil logger so optional dependencies can be
// left unset in constructors and tests.

func Debug(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelDebug, msg, args)
}

func Info(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelInfo, msg, args)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	logAt(logger, slog.LevelWarn, msg, args)
}

// Error logs at error level with err under FieldError. A nil err is omitted.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any(FieldError, err))
	}
	logAt(logger, slog.LevelError, msg, args)
}

func logAt(logger *slog.Logger, level slog.Level, msg string, args []any) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, msg, args...)
}
