// Package log provides structured logging for sgdkit training and model
// operations, backed by zerolog.
//
// The Logger interface is deliberately small: leveled methods with key-value
// fields, plus With for building contextual loggers. Training code logs
// through it so applications can swap the backend or silence the library
// entirely.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is the structured logging interface used throughout sgdkit.
// Fields are alternating key-value pairs, as in log/slog.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a logger whose events all carry the given fields.
	With(fields ...any) Logger
}

// Common field keys used by the training loops.
const (
	ModelNameKey = "model"
	OperationKey = "operation"
	EpochKey     = "epoch"
	IterationKey = "iteration"
	LossKey      = "loss"
	SamplesKey   = "samples"
	FeaturesKey  = "features"
	OutputsKey   = "outputs"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = NewZerologLogger(os.Stderr, zerolog.WarnLevel)
)

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the process-wide default logger.
func SetLogger(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// NopLogger discards all log events.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

func (n NopLogger) With(...any) Logger { return n }

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger writing JSON events to w at the
// given minimum level.
func NewZerologLogger(w io.Writer, level zerolog.Level) *ZerologLogger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{logger: zl}
}

// Debug logs a debug-level event.
func (z *ZerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.logger.Debug(), msg, fields)
}

// Info logs an info-level event.
func (z *ZerologLogger) Info(msg string, fields ...any) {
	z.emit(z.logger.Info(), msg, fields)
}

// Warn logs a warn-level event.
func (z *ZerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.logger.Warn(), msg, fields)
}

// Error logs an error-level event.
func (z *ZerologLogger) Error(msg string, fields ...any) {
	z.emit(z.logger.Error(), msg, fields)
}

// With returns a logger with the given fields attached to every event.
func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &ZerologLogger{logger: ctx.Logger()}
}

func (z *ZerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case error:
			if marshaler, isMarshaler := v.(zerolog.LogObjectMarshaler); isMarshaler {
				event = event.Object(key, marshaler)
			} else {
				event = event.AnErr(key, v)
			}
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}
