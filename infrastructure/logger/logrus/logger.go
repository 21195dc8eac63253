// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Adapts logrus to the core Logger interface with field support

package logrus

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger implements the core Logger interface using logrus
type Logger struct {
	log *logrus.Logger
}

// New creates a JSON-formatted logger writing to stdout at the given level.
// Unknown level strings fall back to info.
func New(level string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return &Logger{log: log}
}

// Debug logs a debug message with structured fields
func (l *Logger) Debug(message string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(message)
}

// Info logs an info message with structured fields
func (l *Logger) Info(message string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(message)
}

// Warn logs a warning message with structured fields
func (l *Logger) Warn(message string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(message)
}

// Error logs an error message with structured fields
func (l *Logger) Error(message string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Error(message)
}
