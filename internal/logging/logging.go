// Package logging provides file logging for the camtrap CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLogDir returns the default log directory following the XDG
// Base Directory Spec: $XDG_STATE_HOME/camtrap/logs, defaulting to
// ~/.local/state/camtrap/logs.
func DefaultLogDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "camtrap", "logs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "camtrap", "logs")
	}
	return filepath.Join(home, ".local", "state", "camtrap", "logs")
}

// level represents the logging level.
type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

// parseLevel maps a CLI log_level value to a level, defaulting to info
// on an unrecognized string.
func parseLevel(s string) level {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Logger wraps the standard logger with level filtering and file output.
type Logger struct {
	level    level
	logger   *log.Logger
	file     *os.File
	filePath string
}

// Setup creates a new logger that writes to a timestamped log file
// under logDir, or to logFile directly if logFile is non-empty.
// cmdArgs should be os.Args, logged as the command that was run.
func Setup(logDir, logFile, levelName string, cmdArgs []string) (*Logger, error) {
	filePath := logFile
	if filePath == "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filePath = filepath.Join(logDir, fmt.Sprintf("camtrap_run_%s.log", timestamp))
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	l := &Logger{
		level:    parseLevel(levelName),
		logger:   log.New(file, "", 0),
		file:     file,
		filePath: filePath,
	}

	l.Info("Command: %s", strings.Join(cmdArgs, " "))
	l.Info("camtrap starting")
	l.Info("Log file: %s", filePath)

	return l, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) printf(lvl level, tag, format string, args ...any) {
	if l == nil || lvl < l.level {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("%s ["+tag+"] "+format, append([]any{timestamp}, args...)...)
}

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, args ...any) { l.printf(levelDebug, "DEBUG", format, args...) }

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) { l.printf(levelInfo, "INFO", format, args...) }

// Warn logs a warning-level message.
func (l *Logger) Warn(format string, args ...any) { l.printf(levelWarn, "WARN", format, args...) }

// Error logs an error-level message.
func (l *Logger) Error(format string, args ...any) { l.printf(levelError, "ERROR", format, args...) }

// Writer returns an io.Writer that writes to the log file. Useful for
// redirecting the RPC bridge's status-code logging through one sink.
func (l *Logger) Writer() io.Writer {
	if l == nil || l.file == nil {
		return io.Discard
	}
	return l.file
}
