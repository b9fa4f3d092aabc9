package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger with proper configuration
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	return initLogger(logLevel, isDevelopment, os.Stderr)
}

func initLogger(logLevel string, isDevelopment bool, out io.Writer) *logrus.Logger {
	log := logrus.New()
	// stdout belongs to the report
	log.SetOutput(out)
	log.SetFormatter(newFormatter(isDevelopment))

	level, err := resolveLevel(logLevel, isDevelopment)
	log.SetLevel(level)
	if err != nil {
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	Logger = log
	return log
}

// resolveLevel falls back to LOG_LEVEL, then to debug in development and
// info elsewhere
func resolveLevel(logLevel string, isDevelopment bool) (logrus.Level, error) {
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel == "" {
		if isDevelopment {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return logrus.InfoLevel, err
	}
	return level, nil
}

func newFormatter(isDevelopment bool) logrus.Formatter {
	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     true,
	}
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", false)
	}
	return Logger
}

// WithRunID creates a logger carrying the run identifier
func WithRunID(runID string) *logrus.Entry {
	return GetLogger().WithField("run_id", runID)
}

// WithRunContext creates a logger with full generation run context
func WithRunContext(runID, preset string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"run_id": runID,
		"preset": preset,
	})
}

// WithComponent tags log lines with the emitting component
func WithComponent(entry *logrus.Entry, component string) *logrus.Entry {
	if entry == nil {
		entry = logrus.NewEntry(GetLogger())
	}
	return entry.WithField("component", component)
}
