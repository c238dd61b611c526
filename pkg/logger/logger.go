// Package logger provides structured logging built on zap.
// All application components log through this wrapper so that log
// level and output encoding are controlled in one place.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with a key-value convenience API
type Logger struct {
	zap     *zap.Logger
	sugared *zap.SugaredLogger
}

// New creates a logger configured for the given level and environment.
// Production uses JSON encoding; everything else uses the console encoder.
func New(level, environment string) (*Logger, error) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if parsed, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return NewLogger(zapLogger), nil
}

// NewLogger wraps an existing zap logger
func NewLogger(zapLogger *zap.Logger) *Logger {
	return &Logger{
		zap:     zapLogger,
		sugared: zapLogger.Sugar(),
	}
}

// Zap returns the underlying zap logger for components that want the
// strongly typed field API.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// With returns a logger with additional persistent key-value context
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	sugared := l.sugared.With(keysAndValues...)
	return &Logger{
		zap:     sugared.Desugar(),
		sugared: sugared,
	}
}

// ForRequest returns a sugared logger scoped to a single HTTP request
func (l *Logger) ForRequest(requestID, method, path string) *zap.SugaredLogger {
	return l.sugared.With(
		"request_id", requestID,
		"method", method,
		"path", path,
	)
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugared.Debugw(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugared.Infow(msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugared.Warnw(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugared.Errorw(msg, keysAndValues...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	l.sugared.Fatalw(msg, keysAndValues...)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
