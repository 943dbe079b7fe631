// Package logger provides the shared application logger.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the process-wide logger instance. Commands configure it once at
// startup; everything else logs through the package-level helpers.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// Configure sets the logging level. Verbose enables debug output; otherwise
// only warnings and errors are shown, keeping command output clean.
func Configure(verbose bool) {
	if verbose {
		Logger.SetLevel(log.DebugLevel)
	} else {
		Logger.SetLevel(log.WarnLevel)
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an informational message with optional key-value pairs.
func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, keyvals ...any) {
	Logger.Error(msg, keyvals...)
}
