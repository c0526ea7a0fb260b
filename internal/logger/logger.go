package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Process-wide leveled logging on top of the standard logger.

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

var current atomic.Int32

var std = log.New(os.Stderr, "", log.LstdFlags)

func init() { current.Store(int32(LevelInfo)) }

// ParseLevel maps a config string to a Level; unknown values are info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(s string) { current.Store(int32(ParseLevel(s))) }

func CurrentLevel() Level { return Level(current.Load()) }

// SetOutput redirects all log lines, mainly for tests.
func SetOutput(w io.Writer) { std.SetOutput(w) }

func enabled(l Level) bool { return Level(current.Load()) <= l }

func Debugf(format string, v ...any) {
	if enabled(LevelDebug) {
		std.Printf("[DEBUG] "+format, v...)
	}
}
func Infof(format string, v ...any) {
	if enabled(LevelInfo) {
		std.Printf("[INFO] "+format, v...)
	}
}
func Warnf(format string, v ...any) {
	if enabled(LevelWarn) {
		std.Printf("[WARN] "+format, v...)
	}
}
func Errorf(format string, v ...any) {
	if enabled(LevelError) {
		std.Printf("[ERROR] "+format, v...)
	}
}
