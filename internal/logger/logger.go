package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls which messages are emitted.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.RWMutex
	level    = LevelInfo
	out      io.Writer = os.Stderr
	logFile  *os.File
	std      = log.New(os.Stderr, "", log.LstdFlags)
)

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// SetLevel sets the global log level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetFile mirrors log output to the given file in addition to stderr.
func SetFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	out = io.MultiWriter(os.Stderr, f)
	std.SetOutput(out)
	return nil
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func Debug(format string, args ...any) {
	if enabled(LevelDebug) {
		std.Printf("[DEBUG] "+format, args...)
	}
}

func Info(format string, args ...any) {
	if enabled(LevelInfo) {
		std.Printf("[INFO] "+format, args...)
	}
}

func Warn(format string, args ...any) {
	if enabled(LevelWarn) {
		std.Printf("[WARN] "+format, args...)
	}
}

func Error(format string, args ...any) {
	if enabled(LevelError) {
		std.Printf("[ERROR] "+format, args...)
	}
}
