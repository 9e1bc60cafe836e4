// Package logger provides structured logging with consistent formatting
// for the web and data layers.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger writes leveled, prefixed log lines through the standard logger.
// Trailing arguments are alternating key, value pairs appended to the
// line as key=value.
type Logger struct {
	prefix string
	debug  bool
}

// NewLogger creates a logger with an optional prefix. Debug output is
// enabled when PASSBOOK_ENV is "development".
func NewLogger(prefix string) *Logger {
	return &Logger{
		prefix: prefix,
		debug:  os.Getenv("PASSBOOK_ENV") == "development",
	}
}

// formatMessage prepends the level marker and prefix.
func (l *Logger) formatMessage(marker, msg string) string {
	prefix := ""
	if l.prefix != "" {
		prefix = "[" + l.prefix + "] "
	}
	return marker + " " + prefix + msg
}

// formatKV renders alternating key, value pairs. A dangling value is
// appended as-is rather than dropped.
func formatKV(args []interface{}) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, (len(args)+1)/2)
	for i := 0; i+1 < len(args); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", args[i], args[i+1]))
	}
	if len(args)%2 != 0 {
		parts = append(parts, fmt.Sprintf("%v", args[len(args)-1]))
	}
	return " - " + strings.Join(parts, " ")
}

func (l *Logger) emit(marker, msg string, args ...interface{}) {
	log.Print(l.formatMessage(marker, msg) + formatKV(args))
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.emit("ℹ️", msg, args...)
}

// Success logs a success message.
func (l *Logger) Success(msg string, args ...interface{}) {
	l.emit("✅", msg, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string, args ...interface{}) {
	l.emit("⚠️", msg, args...)
}

// Debug logs a development-only message. No-op outside development.
func (l *Logger) Debug(msg string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.emit("🔍", msg, args...)
}

// Error logs an error message with an optional error object appended.
func (l *Logger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		args = append(args, "error", err)
	}
	l.emit("❌", msg, args...)
}

// Security logs a security-relevant event.
func (l *Logger) Security(event string, args ...interface{}) {
	l.emit("🔐", "SECURITY: "+event, args...)
}

// Fatal logs a fatal error and exits.
func (l *Logger) Fatal(msg string, err error, args ...interface{}) {
	if err != nil {
		args = append(args, "error", err)
	}
	log.Fatal(l.formatMessage("💀", msg) + formatKV(args))
}

// Default logger instance.
var Default = NewLogger("")

// Convenience functions for the default logger.
func Info(msg string, args ...interface{})             { Default.Info(msg, args...) }
func Success(msg string, args ...interface{})          { Default.Success(msg, args...) }
func Warning(msg string, args ...interface{})          { Default.Warning(msg, args...) }
func Debug(msg string, args ...interface{})            { Default.Debug(msg, args...) }
func Error(msg string, err error, args ...interface{}) { Default.Error(msg, err, args...) }
func Security(event string, args ...interface{})       { Default.Security(event, args...) }
func Fatal(msg string, err error, args ...interface{}) { Default.Fatal(msg, err, args...) }
