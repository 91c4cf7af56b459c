package logging

import (
	"log/slog"
)

// Logger is the logging interface injected into collaborators that should
// not depend on a concrete logger, such as the bridge client. The args
// follow the slog convention of alternating key-value pairs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// SlogAdapter satisfies Logger on top of an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps the given slog.Logger; nil means slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Debug(msg string, args ...interface{}) {
	a.logger.Debug(msg, args...)
}

func (a *SlogAdapter) Info(msg string, args ...interface{}) {
	a.logger.Info(msg, args...)
}

func (a *SlogAdapter) Warn(msg string, args ...interface{}) {
	a.logger.Warn(msg, args...)
}

func (a *SlogAdapter) Error(msg string, args ...interface{}) {
	a.logger.Error(msg, args...)
}

// Logger exposes the underlying slog.Logger for callers that need the
// full slog API.
func (a *SlogAdapter) Logger() *slog.Logger {
	return a.logger
}

// DefaultLogger adapts the process-wide default slog logger. Used as the
// fallback when no logger is injected.
func DefaultLogger() *SlogAdapter {
	return NewSlogAdapter(slog.Default())
}
