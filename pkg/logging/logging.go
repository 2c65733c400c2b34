// Package logging constructs the *log.Logger instances handed to
// every other package by constructor injection, with an optional
// rotating file sink via lumberjack in place of a bare os.Stderr.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gridedge/gsub/pkg/geptypes"
)

// Level is a log severity, ordered low to high.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to LevelInfo
// for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger wraps a *log.Logger with level gating, matching the severity
// tag conventions (`[ERROR]`, `[WARN]`, ...) used by the pack's
// similar logging helpers.
type Logger struct {
	min    Level
	logger *log.Logger
}

// New builds a Logger from cfg: if cfg.FilePath is set, output rotates
// through lumberjack; otherwise it goes to stderr.
func New(cfg geptypes.LoggingConfig) *Logger {
	var w io.Writer = os.Stderr
	if cfg.FilePath != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    maxOrDefault(cfg.MaxSizeMB, 100),
			MaxBackups: cfg.MaxBackups,
			MaxAge:     maxOrDefault(cfg.MaxAgeDays, 28),
		}
	}
	return &Logger{
		min:    ParseLevel(cfg.Level),
		logger: log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func maxOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, "DEBUG", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, "INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, "WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, "ERROR", format, args...) }

func (l *Logger) logf(level Level, tag, format string, args ...any) {
	if level < l.min {
		return
	}
	l.logger.Printf("["+tag+"] "+format, args...)
}
