package logging

import (
	"fmt"
	"log"
	"os"
)

func init() {
	// Route the global logger to standard error so that diagnostic output
	// doesn't interleave with command output on standard output.
	log.SetOutput(os.Stderr)
}

// Logger is a leveled logger with an optional subcomponent prefix. A nil
// Logger is valid and discards all messages.
type Logger struct {
	// level is the maximum level that the logger will emit.
	level Level
	// prefix is the subcomponent prefix for messages, if any.
	prefix string
}

// NewLogger creates a new logger emitting messages at or below the
// specified level.
func NewLogger(level Level) *Logger {
	return &Logger{level: level}
}

// Sublogger creates a new logger with the same level and the specified
// subcomponent name appended to its prefix.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger is as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the sublogger.
	return &Logger{level: l.level, prefix: prefix}
}

// output writes a single formatted message to the underlying logger.
func (l *Logger) output(level Level, message string) {
	if l == nil || level > l.level {
		return
	}
	if l.prefix != "" {
		log.Printf("[%s] %s: %s", level, l.prefix, message)
	} else {
		log.Printf("[%s] %s", level, message)
	}
}

// Error logs an error message.
func (l *Logger) Error(arguments ...interface{}) {
	l.output(LevelError, fmt.Sprint(arguments...))
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, arguments ...interface{}) {
	l.output(LevelError, fmt.Sprintf(format, arguments...))
}

// Warn logs a warning message.
func (l *Logger) Warn(arguments ...interface{}) {
	l.output(LevelWarn, fmt.Sprint(arguments...))
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, arguments ...interface{}) {
	l.output(LevelWarn, fmt.Sprintf(format, arguments...))
}

// Info logs an informational message.
func (l *Logger) Info(arguments ...interface{}) {
	l.output(LevelInfo, fmt.Sprint(arguments...))
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, arguments ...interface{}) {
	l.output(LevelInfo, fmt.Sprintf(format, arguments...))
}

// Debug logs a debugging message.
func (l *Logger) Debug(arguments ...interface{}) {
	l.output(LevelDebug, fmt.Sprint(arguments...))
}

// Debugf logs a formatted debugging message.
func (l *Logger) Debugf(format string, arguments ...interface{}) {
	l.output(LevelDebug, fmt.Sprintf(format, arguments...))
}
