// Package audit provides the structured, non-fatal logging used to
// surface conditions that the numeric core deliberately does not treat
// as errors: a faulted Merkle transition, a vanishing-gradient warning.
// These are observability signals, not control flow; every caller path
// that can reach one also has a fault flag, an error kind, or a returned
// report (backward.Health) carrying the authoritative outcome.
package audit

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger. A nil *Logger is legal and discards
// every event: packages that accept a *Logger never need a nil check
// before calling Warn.
type Logger struct {
	zl       zerolog.Logger
	disabled bool
}

// New builds a Logger writing JSON lines to out at the given level. A
// nil out defaults to os.Stdout.
func New(out io.Writer, level zerolog.Level) *Logger {
	if out == nil {
		out = os.Stdout
	}
	zl := zerolog.New(out).With().Timestamp().Logger().Level(level)
	return &Logger{zl: zl}
}

// Disabled returns a Logger that discards every event. Used as the
// default in contexts (unit tests, library callers that don't want
// output) where audit events are not needed.
func Disabled() *Logger {
	return &Logger{disabled: true}
}

func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	if l == nil || l.disabled {
		return nil
	}
	switch level {
	case zerolog.WarnLevel:
		return l.zl.Warn()
	case zerolog.ErrorLevel:
		return l.zl.Error()
	case zerolog.DebugLevel:
		return l.zl.Debug()
	default:
		return l.zl.Info()
	}
}

// Info logs an informational event with the given key/value fields
// (fields must come in string-key, value pairs).
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log(zerolog.InfoLevel, msg, fields...)
}

// Warn logs a warning event: used for the chain's faulted transition
// and the backward pass's vanishing-gradient report.
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log(zerolog.WarnLevel, msg, fields...)
}

// Debug logs a debug event.
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log(zerolog.DebugLevel, msg, fields...)
}

func (l *Logger) log(level zerolog.Level, msg string, fields ...interface{}) {
	ev := l.event(level)
	if ev == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, fields[i+1])
	}
	ev.Msg(msg)
}
