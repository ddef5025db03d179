package config

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/apflab/batchplan/internal/logging"
)

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logMu protects concurrent access to Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// InitLogger initializes the package-level Logger with the specified log level.
// It writes to stderr; the command logger built by the CLI owns the log file.
func InitLogger(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(logging.ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// SetLogLevel sets the global Logger's level; unknown levels mean info.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()
	Logger = Logger.Level(logging.ParseLevel(level))
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

//nolint:gochecknoinits // intentional: package-level logger must be initialized before use
func init() {
	InitLogger("info")
}

// ToLoggingConfig converts the logging section into a logging.Config.
// A configured file switches the output to that file; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
