package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin wrapper around slog that carries the domain and the
// current function as structured attributes. The Err/Error helpers log and
// return the error in one step so call sites can `return log.Err(...)`.
type Logger struct {
	logger *slog.Logger
}

func New(domain string) Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return Logger{
		logger: slog.New(handler).With("domain", domain),
	}
}

func (l Logger) Function(function string) Logger {
	return Logger{logger: l.logger.With("function", function)}
}

func (l Logger) File(file string) Logger {
	return Logger{logger: l.logger.With("file", file)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{logger: l.logger.With(args...)}
}

func (l Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Er logs an error without returning it, for call sites that handle the
// failure themselves.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Err logs the error with context and returns it wrapped with the message,
// preserving the original error chain for errors.Is checks upstream.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from the message alone.
func (l Logger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l Logger) ErrMsg(msg string) error {
	l.logger.Error(msg)
	return fmt.Errorf("%s", msg)
}
